package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe represents a recipe row with its tag and ingredient associations.
type Recipe struct {
	ID            int64           `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	TimeMinutes   int             `db:"time_minutes"`
	Price         decimal.Decimal `db:"price"`
	Link          string          `db:"link"`
	Image         string          `db:"image"` // Media path relative to the media root, empty when unset
	ImageBlurHash string          `db:"image_blurhash"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`

	Tags        []Attribute `db:"-"`
	Ingredients []Attribute `db:"-"`
}

// RecipeInput carries the fields of a new recipe.
// Tags and Ingredients are names resolved per owner.
type RecipeInput struct {
	Title       string
	Description string
	TimeMinutes int
	Price       decimal.Decimal
	Link        string
	Tags        []string
	Ingredients []string
}

// RecipePatch carries the fields of a recipe update. Nil fields are left unchanged;
// non-nil Tags or Ingredients replace the current set.
type RecipePatch struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeFilter restricts a recipe listing. A recipe must link to at least one of
// TagIDs (when set) and at least one of IngredientIDs (when set).
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// Image is a stored recipe image.
type Image struct {
	Path     string
	BlurHash string
}
