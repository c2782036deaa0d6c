package repositories

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeRepository(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	tags := NewAttributeRepository(db, nil, TagTable)
	ingredients := NewAttributeRepository(db, nil, IngredientTable)
	recipes := NewRecipeRepository(db, nil)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	vegan, created, err := tags.GetOrCreate(ctx, alice.UserID, "Vegan")
	require.NoError(t, err)
	assert.True(t, created)

	dessert, created, err := tags.GetOrCreate(ctx, alice.UserID, "Dessert")
	require.NoError(t, err)
	assert.True(t, created)

	t.Run("GetOrCreateExisting", func(t *testing.T) {
		again, created, err := tags.GetOrCreate(ctx, alice.UserID, "Vegan")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, vegan.ID, again.ID)
	})

	t.Run("GetOrCreateConcurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		ids := make([]int64, 10)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				attr, _, err := ingredients.GetOrCreate(ctx, alice.UserID, "Salt")
				assert.NoError(t, err)
				if attr != nil {
					ids[i] = attr.ID
				}
			}(i)
		}
		wg.Wait()

		for _, id := range ids {
			assert.Equal(t, ids[0], id)
		}
	})

	t.Run("SameNameOtherOwner", func(t *testing.T) {
		bobs, created, err := tags.GetOrCreate(ctx, bob.UserID, "Vegan")
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, vegan.ID, bobs.ID)
	})

	t.Run("ListOrderedByNameDesc", func(t *testing.T) {
		list, err := tags.List(ctx, alice.UserID, false)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Vegan", list[0].Name)
		assert.Equal(t, "Dessert", list[1].Name)
	})

	t.Run("ListAssignedOnly", func(t *testing.T) {
		for _, title := range []string{"Cake", "Pie"} {
			recipe := &models.Recipe{UserID: alice.UserID, Title: title, TimeMinutes: 30, Price: decimal.RequireFromString("5.00")}
			require.NoError(t, recipes.Create(ctx, recipe))
			require.NoError(t, recipes.SetTags(ctx, recipe.ID, []int64{dessert.ID}))
		}

		all, err := tags.List(ctx, alice.UserID, false)
		require.NoError(t, err)
		require.Len(t, all, 2)

		// Dessert is linked twice and listed once; Vegan has no recipes.
		list, err := tags.List(ctx, alice.UserID, true)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, dessert.ID, list[0].ID)
		assert.NotEqual(t, vegan.ID, list[0].ID)

		empty, err := ingredients.List(ctx, bob.UserID, true)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("GetForeign", func(t *testing.T) {
		_, err := tags.Get(ctx, bob.UserID, vegan.ID)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("UpdateDuplicate", func(t *testing.T) {
		_, err := tags.Update(ctx, alice.UserID, vegan.ID, "Dessert")
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("UpdateForeign", func(t *testing.T) {
		_, err := tags.Update(ctx, bob.UserID, vegan.ID, "Plant")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("Update", func(t *testing.T) {
		renamed, err := tags.Update(ctx, alice.UserID, vegan.ID, "Plant based")
		require.NoError(t, err)
		assert.Equal(t, "Plant based", renamed.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.ErrorIs(t, tags.Delete(ctx, bob.UserID, vegan.ID), sql.ErrNoRows)
		require.NoError(t, tags.Delete(ctx, alice.UserID, vegan.ID))
		_, err := tags.Get(ctx, alice.UserID, vegan.ID)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
