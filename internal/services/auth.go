package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 5

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)  // Returns sql.ErrNoRows when absent
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) // Returns sql.ErrNoRows when absent
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.User) error   // Returns repositories.ErrAlreadyExists on duplicate email
	Update(ctx context.Context, user *models.User) error // Writes name and password hash
}

// UserCache caches resolved users.
type UserCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.User, error) // Returns repositories.ErrCacheMiss when absent
	Set(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// TokenManager issues and parses access tokens.
type TokenManager interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthService handles registration, token issue and token resolution.
type AuthService struct {
	reader UserReader
	writer UserWriter
	cache  UserCache
	tokens TokenManager
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, cache UserCache, tokens TokenManager) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		cache:  cache,
		tokens: tokens,
	}
}

// NormalizeEmail lowercases the domain part of an email address.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	i := strings.LastIndex(email, "@")
	if i < 0 {
		return email
	}
	return email[:i] + strings.ToLower(email[i:])
}

// Register creates a new active user.
func (svc *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user := &models.User{
		Email:        NormalizeEmail(email),
		Name:         name,
		PasswordHash: string(hashedPassword),
	}

	if err := svc.writer.Save(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			logger.Log.Infow("user already exists", "email", user.Email)
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates a user by email and password and returns a token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := svc.reader.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		logger.Log.Infow("user does not exist", "email", email)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		logger.Log.Infow("inactive user", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Resolve returns the active user a token was issued to.
func (svc *AuthService) Resolve(ctx context.Context, token string) (*models.User, error) {
	userID, err := svc.tokens.GetUserID(ctx, token)
	if err != nil {
		logger.Log.Infow("invalid token", "err", err)
		return nil, ErrUnauthenticated
	}

	user, err := svc.cache.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			logger.Log.Warnw("user cache read failed", "userID", userID, "err", err)
		}

		user, err = svc.reader.GetByID(ctx, userID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
			}
			return nil, ErrUnauthenticated
		}

		if err := svc.cache.Set(ctx, user); err != nil {
			logger.Log.Warnw("user cache write failed", "userID", userID, "err", err)
		}
	}

	if !user.IsActive {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// UpdateProfile changes the user's name and/or password. Nil arguments are left unchanged.
func (svc *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, password *string) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		if err := checkPassword(*password); err != nil {
			return nil, err
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return nil, err
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := svc.writer.Update(ctx, user); err != nil {
		logger.Log.Errorw("failed to update user", "userID", userID, "err", err)
		return nil, err
	}

	if err := svc.cache.Delete(ctx, userID); err != nil {
		logger.Log.Warnw("user cache eviction failed", "userID", userID, "err", err)
	}

	return user, nil
}

func checkPassword(password string) error {
	if len(password) < MinPasswordLength {
		return validation.NewError("password", "Ensure this field has at least 5 characters.")
	}
	return nil
}
