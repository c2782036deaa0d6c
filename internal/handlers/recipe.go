package handlers

//go:generate mockgen -source=recipe.go -destination=mock_recipe.go -package=handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/shopspring/decimal"
)

// RecipeLister lists the owner's recipes.
type RecipeLister interface {
	List(ctx context.Context, userID uuid.UUID, filter models.RecipeFilter) ([]models.Recipe, error)
}

// RecipeGetter retrieves one of the owner's recipes.
type RecipeGetter interface {
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error)
}

// RecipeCreator creates recipes.
type RecipeCreator interface {
	Create(ctx context.Context, userID uuid.UUID, in models.RecipeInput) (*models.Recipe, error)
}

// RecipeUpdater updates recipes.
type RecipeUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, id int64, patch models.RecipePatch) (*models.Recipe, error)
}

// RecipeDeleter deletes recipes.
type RecipeDeleter interface {
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// RecipeImageUploader attaches images to recipes.
type RecipeImageUploader interface {
	UploadImage(ctx context.Context, userID uuid.UUID, id int64, data []byte, filename string) (*models.Recipe, error)
}

// ImageURLer builds public URLs for stored images.
type ImageURLer interface {
	URL(rel string) string
}

// AttributeRequest names a tag or ingredient
// swagger:model AttributeRequest
type AttributeRequest struct {
	// Name
	// required: true
	// default: Vegan
	Name string `json:"name" validate:"required,max=255"`
}

// RecipeRequest represents the JSON body for creating or updating a recipe.
// Price accepts a string ("5.40") or a number.
// swagger:model RecipeRequest
type RecipeRequest struct {
	// Title
	// default: Apple Crumble
	Title *string `json:"title" validate:"omitempty,max=255"`

	// Description
	Description *string `json:"description"`

	// Preparation time in minutes
	// default: 10
	TimeMinutes *int `json:"time_minutes"`

	// Price with two decimals
	// default: 5.40
	Price any `json:"price" swaggertype:"string"`

	// Link
	Link *string `json:"link" validate:"omitempty,max=255"`

	// Tags, replacing the current set
	Tags *[]AttributeRequest `json:"tags" validate:"omitempty,dive"`

	// Ingredients, replacing the current set
	Ingredients *[]AttributeRequest `json:"ingredients" validate:"omitempty,dive"`

	// Owner, never writable
	User json.RawMessage `json:"user,omitempty" swaggerignore:"true"`
}

// RecipeResponse is a recipe in list responses
// swagger:model RecipeResponse
type RecipeResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	TimeMinutes int                `json:"time_minutes"`
	Price       string             `json:"price"`
	Link        string             `json:"link"`
	Tags        []models.Attribute `json:"tags"`
	Ingredients []models.Attribute `json:"ingredients"`
}

// RecipeDetailResponse is a single recipe with its description and image
// swagger:model RecipeDetailResponse
type RecipeDetailResponse struct {
	RecipeResponse
	Description   string  `json:"description"`
	Image         *string `json:"image"`
	ImageBlurHash string  `json:"image_blurhash"`
}

// RecipeImageResponse is the result of an image upload
// swagger:model RecipeImageResponse
type RecipeImageResponse struct {
	ID            int64   `json:"id"`
	Image         *string `json:"image"`
	ImageBlurHash string  `json:"image_blurhash"`
}

func newRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        nonNil(r.Tags),
		Ingredients: nonNil(r.Ingredients),
	}
}

func newRecipeDetailResponse(r *models.Recipe, urls ImageURLer) RecipeDetailResponse {
	return RecipeDetailResponse{
		RecipeResponse: newRecipeResponse(r),
		Description:    r.Description,
		Image:          imageURL(r.Image, urls),
		ImageBlurHash:  r.ImageBlurHash,
	}
}

func imageURL(rel string, urls ImageURLer) *string {
	if rel == "" {
		return nil
	}
	u := urls.URL(rel)
	return &u
}

func nonNil(attrs []models.Attribute) []models.Attribute {
	if attrs == nil {
		return []models.Attribute{}
	}
	return attrs
}

func attributeNames(attrs *[]AttributeRequest) *[]string {
	if attrs == nil {
		return nil
	}
	names := make([]string, len(*attrs))
	for i, a := range *attrs {
		names[i] = a.Name
	}
	return &names
}

// trimAttributeNames trims nested tag and ingredient names so blank names fail validation.
func (req *RecipeRequest) trimAttributeNames() {
	for _, attrs := range []*[]AttributeRequest{req.Tags, req.Ingredients} {
		if attrs == nil {
			continue
		}
		for i := range *attrs {
			(*attrs)[i].Name = strings.TrimSpace((*attrs)[i].Name)
		}
	}
}

// parsePrice converts a decoded JSON price (string or json.Number) to a decimal.
func parsePrice(v any) (decimal.Decimal, error) {
	switch p := v.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(p))
	case json.Number:
		return decimal.NewFromString(p.String())
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported price type %T", v)
	}
}

// toPatch converts a request to a patch. With full set, title, time_minutes and
// price are required.
func (req *RecipeRequest) toPatch(full bool) (models.RecipePatch, map[string]string) {
	fields := map[string]string{}

	if full {
		if req.Title == nil {
			fields["title"] = msgRequired
		}
		if req.TimeMinutes == nil {
			fields["time_minutes"] = msgRequired
		}
		if req.Price == nil {
			fields["price"] = msgRequired
		}
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		fields["title"] = msgBlank
	}

	patch := models.RecipePatch{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Link:        req.Link,
		Tags:        attributeNames(req.Tags),
		Ingredients: attributeNames(req.Ingredients),
	}

	if req.Price != nil {
		price, err := parsePrice(req.Price)
		if err != nil {
			fields["price"] = "A valid number is required."
		} else {
			patch.Price = &price
		}
	}

	if len(fields) > 0 {
		return patch, fields
	}
	return patch, nil
}

// toInput converts a complete request to a recipe input.
func (req *RecipeRequest) toInput() (models.RecipeInput, map[string]string) {
	patch, fields := req.toPatch(true)
	if fields != nil {
		return models.RecipeInput{}, fields
	}

	in := models.RecipeInput{
		Title:       *patch.Title,
		TimeMinutes: *patch.TimeMinutes,
		Price:       *patch.Price,
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.Link != nil {
		in.Link = *patch.Link
	}
	if patch.Tags != nil {
		in.Tags = *patch.Tags
	}
	if patch.Ingredients != nil {
		in.Ingredients = *patch.Ingredients
	}
	return in, nil
}

// parseIDList parses a comma-separated id list such as "1,2,3".
func parseIDList(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
