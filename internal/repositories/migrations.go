package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/logger"
)

// migrations create the schema. Each statement is idempotent and they run in order
// on every startup.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_staff BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS tags (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		UNIQUE (user_id, name)
	);`,
	`CREATE TABLE IF NOT EXISTS ingredients (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		UNIQUE (user_id, name)
	);`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		time_minutes INTEGER NOT NULL CHECK (time_minutes > 0),
		price NUMERIC(5,2) NOT NULL CHECK (price >= 0),
		link VARCHAR(255) NOT NULL DEFAULT '',
		image VARCHAR(255) NOT NULL DEFAULT '',
		image_blurhash VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS recipe_tags (
		recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (recipe_id, tag_id)
	);`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
		PRIMARY KEY (recipe_id, ingredient_id)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_user_id ON recipes(user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag_id ON recipe_tags(tag_id);`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_ingredient_id ON recipe_ingredients(ingredient_id);`,
}

// Migrate applies the schema to db.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	logger.Log.Infow("database schema is up to date", "migrations", len(migrations))
	return nil
}
