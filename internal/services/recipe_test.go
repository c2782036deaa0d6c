package services_test

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/media"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipeMocks struct {
	recipes     *services.MockRecipeRepository
	tags        *services.MockAttributeResolver
	ingredients *services.MockAttributeResolver
	images      *services.MockImageStore
	kafka       *services.MockKafkaWriter
}

func newRecipeService(t *testing.T, opts ...services.RecipeOption) (*services.RecipeService, recipeMocks) {
	ctrl := gomock.NewController(t)
	m := recipeMocks{
		recipes:     services.NewMockRecipeRepository(ctrl),
		tags:        services.NewMockAttributeResolver(ctrl),
		ingredients: services.NewMockAttributeResolver(ctrl),
		images:      services.NewMockImageStore(ctrl),
		kafka:       services.NewMockKafkaWriter(ctrl),
	}
	return services.NewRecipeService(m.recipes, m.tags, m.ingredients, m.images, m.kafka, opts...), m
}

// deferredCommit collects side effects until run is called.
type deferredCommit struct {
	fns []func()
}

func (d *deferredCommit) afterCommit(_ context.Context, fn func()) {
	d.fns = append(d.fns, fn)
}

func (d *deferredCommit) run() {
	for _, fn := range d.fns {
		fn()
	}
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, field)
}

func TestRecipeService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newRecipeService(t)

	m.recipes.EXPECT().
		List(ctx, userID, models.RecipeFilter{TagIDs: []int64{1, 2}}).
		Return([]models.Recipe{{ID: 7}}, nil)

	list, err := svc.List(ctx, userID, models.RecipeFilter{TagIDs: []int64{1, 2, 1}})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	price := decimal.RequireFromString("5.40")

	t.Run("resolves tags and ingredients", func(t *testing.T) {
		svc, m := newRecipeService(t)

		m.recipes.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *models.Recipe) error {
			assert.Equal(t, userID, r.UserID)
			assert.True(t, r.Price.Equal(price))
			r.ID = 10
			return nil
		})
		m.tags.EXPECT().GetOrCreate(ctx, userID, "Vegan").Return(&models.Attribute{ID: 1, Name: "Vegan"}, true, nil)
		m.tags.EXPECT().GetOrCreate(ctx, userID, "Quick").Return(&models.Attribute{ID: 2, Name: "Quick"}, false, nil)
		m.recipes.EXPECT().SetTags(ctx, int64(10), []int64{1, 2}).Return(nil)
		m.recipes.EXPECT().Get(ctx, userID, int64(10)).Return(&models.Recipe{ID: 10, Title: "Curry"}, nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		recipe, err := svc.Create(ctx, userID, models.RecipeInput{
			Title:       "Curry",
			TimeMinutes: 10,
			Price:       price,
			Tags:        []string{"Vegan", "Quick", "Vegan"},
			Ingredients: []string{},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), recipe.ID)
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			minutes int
			price   string
			field   string
		}{
			{name: "zero minutes", minutes: 0, price: "1.00", field: "time_minutes"},
			{name: "minutes beyond integer column", minutes: 3000000000, price: "1.00", field: "time_minutes"},
			{name: "negative price", minutes: 5, price: "-1", field: "price"},
			{name: "three decimals", minutes: 5, price: "1.005", field: "price"},
			{name: "too many digits", minutes: 5, price: "1000.00", field: "price"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _ := newRecipeService(t)
				_, err := svc.Create(ctx, userID, models.RecipeInput{
					Title:       "Curry",
					TimeMinutes: tt.minutes,
					Price:       decimal.RequireFromString(tt.price),
				})
				requireFieldError(t, err, tt.field)
			})
		}
	})

	t.Run("repository error", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.recipes.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db error"))

		_, err := svc.Create(ctx, userID, models.RecipeInput{Title: "Curry", TimeMinutes: 1, Price: price})
		assert.EqualError(t, err, "db error")
	})
}

func TestRecipeService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("partial update keeps links", func(t *testing.T) {
		svc, m := newRecipeService(t)
		title := "New title"

		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3, UserID: userID, Title: "Old", TimeMinutes: 5}, nil)
		m.recipes.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *models.Recipe) error {
			assert.Equal(t, title, r.Title)
			assert.Equal(t, 5, r.TimeMinutes)
			return nil
		})
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3, Title: title}, nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		recipe, err := svc.Update(ctx, userID, 3, models.RecipePatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, recipe.Title)
	})

	t.Run("empty tag list clears", func(t *testing.T) {
		svc, m := newRecipeService(t)
		empty := []string{}

		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3, UserID: userID}, nil).Times(2)
		m.recipes.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		m.recipes.EXPECT().SetTags(ctx, int64(3), []int64{}).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := svc.Update(ctx, userID, 3, models.RecipePatch{Tags: &empty})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.recipes.EXPECT().Get(ctx, userID, int64(4)).Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, userID, 4, models.RecipePatch{})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("invalid price", func(t *testing.T) {
		svc, m := newRecipeService(t)
		price := decimal.RequireFromString("-2")
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3}, nil)

		_, err := svc.Update(ctx, userID, 3, models.RecipePatch{Price: &price})
		requireFieldError(t, err, "price")
	})

	t.Run("time beyond integer column", func(t *testing.T) {
		svc, m := newRecipeService(t)
		minutes := math.MaxInt32 + 1
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3}, nil)

		_, err := svc.Update(ctx, userID, 3, models.RecipePatch{TimeMinutes: &minutes})
		requireFieldError(t, err, "time_minutes")
	})
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("removes image", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3, Image: "uploads/recipe/a.png"}, nil)
		m.recipes.EXPECT().Delete(ctx, userID, int64(3)).Return(nil)
		m.images.EXPECT().Delete("uploads/recipe/a.png").Return(errors.New("gone"))
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(ctx, userID, 3))
	})

	t.Run("image removed and event sent only after commit", func(t *testing.T) {
		commit := &deferredCommit{}
		svc, m := newRecipeService(t, services.WithAfterCommit(commit.afterCommit))
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3, Image: "uploads/recipe/a.png"}, nil)
		m.recipes.EXPECT().Delete(ctx, userID, int64(3)).Return(nil)

		// Any call to images or kafka here would be unexpected.
		require.NoError(t, svc.Delete(ctx, userID, 3))
		require.Len(t, commit.fns, 1)

		m.images.EXPECT().Delete("uploads/recipe/a.png").Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
		commit.run()
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.recipes.EXPECT().Get(ctx, userID, int64(9)).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, userID, 9), services.ErrNotFound)
	})
}

func TestRecipeService_UploadImage(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	data := []byte("png")

	t.Run("replaces previous image", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3, Image: "uploads/recipe/old.png"}, nil)
		m.images.EXPECT().Save(ctx, int64(3), data, "a.png").Return(&models.Image{Path: "uploads/recipe/new.png", BlurHash: "LKO2"}, nil)
		m.recipes.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		m.images.EXPECT().Delete("uploads/recipe/old.png").Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		recipe, err := svc.UploadImage(ctx, userID, 3, data, "a.png")
		require.NoError(t, err)
		assert.Equal(t, "uploads/recipe/new.png", recipe.Image)
		assert.Equal(t, "LKO2", recipe.ImageBlurHash)
	})

	t.Run("previous image kept until commit", func(t *testing.T) {
		commit := &deferredCommit{}
		svc, m := newRecipeService(t, services.WithAfterCommit(commit.afterCommit))
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3, Image: "uploads/recipe/old.png"}, nil)
		m.images.EXPECT().Save(ctx, int64(3), data, "a.png").Return(&models.Image{Path: "uploads/recipe/new.png"}, nil)
		m.recipes.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		_, err := svc.UploadImage(ctx, userID, 3, data, "a.png")
		require.NoError(t, err)

		m.images.EXPECT().Delete("uploads/recipe/old.png").Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
		commit.run()
	})

	t.Run("invalid image", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3}, nil)
		m.images.EXPECT().Save(ctx, int64(3), data, "a.txt").Return(nil, media.ErrInvalidImage)

		_, err := svc.UploadImage(ctx, userID, 3, data, "a.txt")
		assert.ErrorIs(t, err, services.ErrInvalidImage)
	})

	t.Run("update failure removes new file", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.recipes.EXPECT().Get(ctx, userID, int64(3)).Return(&models.Recipe{ID: 3}, nil)
		m.images.EXPECT().Save(ctx, int64(3), data, "a.png").Return(&models.Image{Path: "uploads/recipe/new.png"}, nil)
		m.recipes.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("db error"))
		m.images.EXPECT().Delete("uploads/recipe/new.png").Return(nil)

		_, err := svc.UploadImage(ctx, userID, 3, data, "a.png")
		assert.EqualError(t, err, "db error")
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.recipes.EXPECT().Get(ctx, userID, int64(5)).Return(nil, sql.ErrNoRows)

		_, err := svc.UploadImage(ctx, userID, 5, data, "a.png")
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}
