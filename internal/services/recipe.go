package services

//go:generate mockgen -source=recipe.go -destination=mock_recipe.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/media"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"github.com/shopspring/decimal"
)

// maxPrice is the exclusive upper bound of a NUMERIC(5,2) price.
var maxPrice = decimal.NewFromInt(1000)

// RecipeRepository stores recipes and their attribute links.
type RecipeRepository interface {
	List(ctx context.Context, userID uuid.UUID, filter models.RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) // Returns sql.ErrNoRows when absent or foreign
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
	SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error
	SetIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error
}

// AttributeResolver finds or creates an attribute by name for an owner.
type AttributeResolver interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*models.Attribute, bool, error)
}

// ImageStore persists recipe images.
type ImageStore interface {
	Save(ctx context.Context, recipeID int64, data []byte, filename string) (*models.Image, error) // Returns media.ErrInvalidImage for undecodable data
	Delete(rel string) error
}

// RecipeService handles recipe operations and event publishing.
type RecipeService struct {
	recipes     RecipeRepository
	tags        AttributeResolver
	ingredients AttributeResolver
	images      ImageStore
	kafkaWriter KafkaWriter
	afterCommit func(ctx context.Context, fn func())
}

// RecipeOption configures a RecipeService.
type RecipeOption func(*RecipeService)

// WithAfterCommit sets how side effects of a write (old image removal, events)
// are deferred until the surrounding transaction commits.
func WithAfterCommit(afterCommit func(ctx context.Context, fn func())) RecipeOption {
	return func(s *RecipeService) {
		s.afterCommit = afterCommit
	}
}

// NewRecipeService creates a new RecipeService. kafkaWriter may be nil.
// Without WithAfterCommit side effects run as soon as the write returns.
func NewRecipeService(
	recipes RecipeRepository,
	tags AttributeResolver,
	ingredients AttributeResolver,
	images ImageStore,
	kafkaWriter KafkaWriter,
	opts ...RecipeOption,
) *RecipeService {
	s := &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		images:      images,
		kafkaWriter: kafkaWriter,
		afterCommit: func(_ context.Context, fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the owner's recipes matching filter.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, filter models.RecipeFilter) ([]models.Recipe, error) {
	filter.TagIDs = uniqueIDs(filter.TagIDs)
	filter.IngredientIDs = uniqueIDs(filter.IngredientIDs)

	recipes, err := s.recipes.List(ctx, userID, filter)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "userID", userID, "err", err)
		return nil, err
	}
	return recipes, nil
}

// Get returns one of the owner's recipes.
func (s *RecipeService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	recipe, err := s.recipes.Get(ctx, userID, id)
	if err != nil {
		return nil, translateRecipeErr(err, userID, id)
	}
	return recipe, nil
}

// Create stores a new recipe for the owner, resolving tags and ingredients by name.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, in models.RecipeInput) (*models.Recipe, error) {
	if err := checkTimeMinutes(in.TimeMinutes); err != nil {
		return nil, err
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		logger.Log.Errorw("failed to create recipe", "userID", userID, "err", err)
		return nil, err
	}

	var tags, ingredients *[]string
	if len(in.Tags) > 0 {
		tags = &in.Tags
	}
	if len(in.Ingredients) > 0 {
		ingredients = &in.Ingredients
	}
	if err := s.setAttributes(ctx, userID, recipe.ID, tags, ingredients); err != nil {
		return nil, err
	}

	created, err := s.Get(ctx, userID, recipe.ID)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, func() { s.publishEvent(ctx, models.RecipeCreated, created.ID, userID) })
	return created, nil
}

// Update applies patch to one of the owner's recipes. Present tag and ingredient
// lists replace the current sets.
func (s *RecipeService) Update(ctx context.Context, userID uuid.UUID, id int64, patch models.RecipePatch) (*models.Recipe, error) {
	recipe, err := s.recipes.Get(ctx, userID, id)
	if err != nil {
		return nil, translateRecipeErr(err, userID, id)
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.TimeMinutes != nil {
		if err := checkTimeMinutes(*patch.TimeMinutes); err != nil {
			return nil, err
		}
		recipe.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Price != nil {
		if err := checkPrice(*patch.Price); err != nil {
			return nil, err
		}
		recipe.Price = *patch.Price
	}
	if patch.Link != nil {
		recipe.Link = *patch.Link
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, translateRecipeErr(err, userID, id)
	}

	if err := s.setAttributes(ctx, userID, id, patch.Tags, patch.Ingredients); err != nil {
		return nil, err
	}

	updated, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, func() { s.publishEvent(ctx, models.RecipeUpdated, id, userID) })
	return updated, nil
}

// Delete removes one of the owner's recipes together with its image file.
func (s *RecipeService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	recipe, err := s.recipes.Get(ctx, userID, id)
	if err != nil {
		return translateRecipeErr(err, userID, id)
	}

	if err := s.recipes.Delete(ctx, userID, id); err != nil {
		return translateRecipeErr(err, userID, id)
	}

	s.afterCommit(ctx, func() {
		s.removeImage(recipe.Image)
		s.publishEvent(ctx, models.RecipeDeleted, id, userID)
	})
	return nil
}

// UploadImage stores data as the recipe's image, replacing any previous one.
func (s *RecipeService) UploadImage(ctx context.Context, userID uuid.UUID, id int64, data []byte, filename string) (*models.Recipe, error) {
	recipe, err := s.recipes.Get(ctx, userID, id)
	if err != nil {
		return nil, translateRecipeErr(err, userID, id)
	}

	img, err := s.images.Save(ctx, id, data, filename)
	if errors.Is(err, media.ErrInvalidImage) {
		return nil, ErrInvalidImage
	}
	if err != nil {
		logger.Log.Errorw("failed to store recipe image", "recipeID", id, "err", err)
		return nil, err
	}

	previous := recipe.Image
	recipe.Image = img.Path
	recipe.ImageBlurHash = img.BlurHash

	if err := s.recipes.Update(ctx, recipe); err != nil {
		s.removeImage(img.Path)
		return nil, translateRecipeErr(err, userID, id)
	}

	s.afterCommit(ctx, func() {
		s.removeImage(previous)
		s.publishEvent(ctx, models.RecipeImageUpdated, id, userID)
	})
	return recipe, nil
}

// setAttributes replaces the recipe's tags and ingredients; nil lists are left unchanged.
func (s *RecipeService) setAttributes(ctx context.Context, userID uuid.UUID, recipeID int64, tags, ingredients *[]string) error {
	if tags != nil {
		ids, err := resolveNames(ctx, s.tags, userID, *tags)
		if err != nil {
			logger.Log.Errorw("failed to resolve tags", "recipeID", recipeID, "err", err)
			return err
		}
		if err := s.recipes.SetTags(ctx, recipeID, ids); err != nil {
			logger.Log.Errorw("failed to set recipe tags", "recipeID", recipeID, "err", err)
			return err
		}
	}

	if ingredients != nil {
		ids, err := resolveNames(ctx, s.ingredients, userID, *ingredients)
		if err != nil {
			logger.Log.Errorw("failed to resolve ingredients", "recipeID", recipeID, "err", err)
			return err
		}
		if err := s.recipes.SetIngredients(ctx, recipeID, ids); err != nil {
			logger.Log.Errorw("failed to set recipe ingredients", "recipeID", recipeID, "err", err)
			return err
		}
	}

	return nil
}

func (s *RecipeService) removeImage(rel string) {
	if rel == "" {
		return
	}
	if err := s.images.Delete(rel); err != nil {
		logger.Log.Warnw("failed to remove recipe image", "path", rel, "err", err)
	}
}

// resolveNames maps names to attribute ids, creating missing attributes.
// Repeated names resolve once.
func resolveNames(ctx context.Context, resolver AttributeResolver, userID uuid.UUID, names []string) ([]int64, error) {
	seen := make(map[string]struct{}, len(names))
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		attr, _, err := resolver.GetOrCreate(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, attr.ID)
	}
	return ids, nil
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func checkTimeMinutes(minutes int) error {
	switch {
	case minutes <= 0:
		return validation.NewError("time_minutes", "Ensure this value is greater than or equal to 1.")
	case minutes > math.MaxInt32:
		return validation.NewError("time_minutes", fmt.Sprintf("Ensure this value is less than or equal to %d.", math.MaxInt32))
	}
	return nil
}

func checkPrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return validation.NewError("price", "Ensure this value is greater than or equal to 0.")
	case !price.Equal(price.Round(2)):
		return validation.NewError("price", "Ensure that there are no more than 2 decimal places.")
	case price.GreaterThanOrEqual(maxPrice):
		return validation.NewError("price", "Ensure that there are no more than 5 digits in total.")
	}
	return nil
}

func translateRecipeErr(err error, userID uuid.UUID, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	logger.Log.Errorw("recipe query failed", "userID", userID, "recipeID", id, "err", err)
	return err
}
