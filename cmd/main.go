package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/recipe-api/internal/handlers"
	"github.com/sbilibin2017/recipe-api/internal/jwt"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/media"
	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisUserTTL      time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExp       time.Duration

	MediaRoot string
	MediaURL  string

	RateLimit      float64
	RateLimitBurst int
}

// @title recipe-api
// @version 1.0.0
// @description Multi-tenant recipe management API
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application configuration. A missing file is not an error.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var err error
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var v int
		if v, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("invalid %s: %w", key, err)
		}
		return v
	}

	cfg := &config{
		// Application config
		AppHost:  getEnv("APP_HOST", "localhost"),
		AppPort:  getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("APP_LOG_LEVEL", "info"),

		// PostgreSQL config
		PGHost:         getEnv("POSTGRES_HOST", "localhost"),
		PGPort:         getInt("POSTGRES_PORT", "5432"),
		PGUser:         getEnv("POSTGRES_USER", "user"),
		PGPassword:     getEnv("POSTGRES_PASSWORD", "password"),
		PGDB:           getEnv("POSTGRES_DB", "database"),
		PGMaxOpenConns: getInt("POSTGRES_MAX_OPEN_CONNS", "16"),
		PGMaxIdleConns: getInt("POSTGRES_MAX_IDLE_CONNS", "8"),

		// Redis config
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getInt("REDIS_PORT", "6379"),
		RedisDB:           getInt("REDIS_DB", "0"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisPoolSize:     getInt("REDIS_POOL_SIZE", "10"),
		RedisMinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", "2"),
		RedisUserTTL:      time.Duration(getInt("REDIS_USER_TTL_SECOND", "300")) * time.Second,

		// Kafka config
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "recipe-events"),

		// JWT config
		JWTSecretKey: getEnv("JWT_SECRET_KEY", "my_super_secret_key"),
		JWTExp:       time.Duration(getInt("JWT_EXP_SECOND", "0")) * time.Second,

		// Media config
		MediaRoot: getEnv("MEDIA_ROOT", "media"),
		MediaURL:  getEnv("MEDIA_URL", "/media/"),

		// Rate limit config
		RateLimitBurst: getInt("RATE_LIMIT_BURST", "20"),
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit, err = strconv.ParseFloat(getEnv("RATE_LIMIT", "10"), 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}

	return cfg, nil
}

// splitList splits a comma separated list, dropping blank items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// app holds the wired dependencies served by the router.
type app struct {
	db          *sqlx.DB
	tokens      *jwt.JWT
	auth        *services.AuthService
	recipes     *services.RecipeService
	tags        *services.AttributeService
	ingredients *services.AttributeService
	media       *media.Storage
}

// newApp builds repositories and services on top of the given connections.
// kafkaWriter may be nil, in which case recipe events are skipped.
func newApp(cfg *config, db *sqlx.DB, rdb *redis.Client, kafkaWriter services.KafkaWriter) (*app, error) {
	storage, err := media.NewStorage(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		return nil, err
	}

	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(cfg.JWTExp),
	)

	userReader := repositories.NewUserReadRepository(db)
	userWriter := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	userCache := repositories.NewUserCacheRepository(rdb, cfg.RedisUserTTL)
	tagRepo := repositories.NewAttributeRepository(db, middlewares.GetTxFromContext, repositories.TagTable)
	ingredientRepo := repositories.NewAttributeRepository(db, middlewares.GetTxFromContext, repositories.IngredientTable)
	recipeRepo := repositories.NewRecipeRepository(db, middlewares.GetTxFromContext)

	return &app{
		db:     db,
		tokens: tokens,
		auth:   services.NewAuthService(userReader, userWriter, userCache, tokens),
		recipes: services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, storage, kafkaWriter,
			services.WithAfterCommit(middlewares.AfterCommit),
		),
		tags:        services.NewAttributeService(tagRepo, "Tag"),
		ingredients: services.NewAttributeService(ingredientRepo, "Ingredient"),
		media:       storage,
	}, nil
}

// newRouter mounts the API, media, metrics and swagger routes.
func newRouter(a *app, rateLimit float64, rateLimitBurst int) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware)

	tx := middlewares.TxMiddleware(a.db)
	auth := middlewares.AuthMiddleware(a.tokens, a.auth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewares.RateLimitMiddleware(rateLimit, rateLimitBurst))

		r.Post("/users", handlers.NewRegisterHandler(a.auth))
		r.Post("/users/token", handlers.NewTokenHandler(a.auth))

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/users/me", handlers.NewGetProfileHandler())
			r.With(tx).Patch("/users/me", handlers.NewUpdateProfileHandler(a.auth))

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", handlers.NewListRecipesHandler(a.recipes))
				r.With(tx).Post("/", handlers.NewCreateRecipeHandler(a.recipes, a.media))
				r.Get("/{id}", handlers.NewGetRecipeHandler(a.recipes, a.media))
				r.With(tx).Put("/{id}", handlers.NewUpdateRecipeHandler(a.recipes, a.media, true))
				r.With(tx).Patch("/{id}", handlers.NewUpdateRecipeHandler(a.recipes, a.media, false))
				r.With(tx).Delete("/{id}", handlers.NewDeleteRecipeHandler(a.recipes))
				r.With(tx).Post("/{id}/upload-image", handlers.NewUploadRecipeImageHandler(a.recipes, a.media))
			})

			r.Route("/tags", attributeRoutes(a.tags, tx))
			r.Route("/ingredients", attributeRoutes(a.ingredients, tx))
		})
	})

	mediaURL := a.media.URL("")
	r.Get(mediaURL+"*", http.StripPrefix(mediaURL, mediaFileServer(a.media.Root())).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// attributeRoutes mounts the CRUD routes of one attribute kind.
func attributeRoutes(svc *services.AttributeService, tx func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", handlers.NewListAttributesHandler(svc))
		r.With(tx).Post("/", handlers.NewCreateAttributeHandler(svc))
		r.Get("/{id}", handlers.NewGetAttributeHandler(svc))
		r.With(tx).Put("/{id}", handlers.NewUpdateAttributeHandler(svc))
		r.With(tx).Patch("/{id}", handlers.NewUpdateAttributeHandler(svc))
		r.With(tx).Delete("/{id}", handlers.NewDeleteAttributeHandler(svc))
	}
}

// mediaFileServer serves stored files without directory listings.
func mediaFileServer(root string) http.Handler {
	fs := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

// kafkaBatchTimeout bounds how long a write waits to fill a batch. Events are
// published one at a time from request handling.
const kafkaBatchTimeout = 10 * time.Millisecond

// newKafkaWriter creates the recipe event writer.
func newKafkaWriter(cfg *config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           kafkaBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// run initializes the logger, database, Redis, Kafka writer, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	// --- Postgres ---
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB,
	)
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	// --- Kafka ---
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := newKafkaWriter(cfg)
		defer w.Close()
		kafkaWriter = w
	} else {
		logger.Log.Warn("KAFKA_BROKERS is empty, recipe events are disabled")
	}

	a, err := newApp(cfg, db, rdb, kafkaWriter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: newRouter(a, cfg.RateLimit, cfg.RateLimitBurst),
	}

	// --- Graceful shutdown ---
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Log.Infow("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("shutting down HTTP server")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	logger.Log.Info("server stopped gracefully")
	return nil
}
