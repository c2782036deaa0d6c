package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

const recipeColumns = `id, user_id, title, description, time_minutes, price, link, image, image_blurhash, created_at, updated_at`

// RecipeRepository handles recipe rows and their tag and ingredient links.
type RecipeRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeRepository(db *sqlx.DB, txGetter TxGetter) *RecipeRepository {
	return &RecipeRepository{db: db, txGetter: txGetter}
}

// List returns the owner's recipes, newest id first, with tags and ingredients
// loaded. Each filter dimension matches recipes linked to any of its ids; both
// dimensions must match when both are set. Every recipe appears at most once.
func (r *RecipeRepository) List(ctx context.Context, userID uuid.UUID, filter models.RecipeFilter) ([]models.Recipe, error) {
	q := executor(ctx, r.db, r.txGetter)

	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.user_id = $1`
	args := []any{userID}

	if len(filter.TagIDs) > 0 {
		args = append(args, filter.TagIDs)
		query += fmt.Sprintf(`
			AND EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = r.id AND rt.tag_id = ANY($%d))`, len(args))
	}
	if len(filter.IngredientIDs) > 0 {
		args = append(args, filter.IngredientIDs)
		query += fmt.Sprintf(`
			AND EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = r.id AND ri.ingredient_id = ANY($%d))`, len(args))
	}
	query += ` ORDER BY r.id DESC`

	recipes := []models.Recipe{}
	err := sqlx.SelectContext(ctx, q, &recipes, query, args...)

	logQuery(query, args, len(recipes), err)

	if err != nil {
		return nil, err
	}
	if err := r.loadAttributes(ctx, q, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get returns the owner's recipe with tags and ingredients, or sql.ErrNoRows.
func (r *RecipeRepository) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	q := executor(ctx, r.db, r.txGetter)

	recipe, err := getOwned[models.Recipe](ctx, q, "recipes", recipeColumns, userID, id)
	if err != nil {
		return nil, err
	}

	recipes := []models.Recipe{*recipe}
	if err := r.loadAttributes(ctx, q, recipes); err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

// Create inserts the recipe and fills in its id and timestamps.
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	const query = `
		INSERT INTO recipes (user_id, title, description, time_minutes, price, link, image, image_blurhash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	args := []any{
		recipe.UserID, recipe.Title, recipe.Description, recipe.TimeMinutes,
		recipe.Price, recipe.Link, recipe.Image, recipe.ImageBlurHash,
	}

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...).
		Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)

	logQuery(query, args, recipe.ID, err)

	return err
}

// Update writes every mutable column of the owner's recipe.
// Returns sql.ErrNoRows when it does not exist.
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	const query = `
		UPDATE recipes
		SET title = $3, description = $4, time_minutes = $5, price = $6, link = $7,
		    image = $8, image_blurhash = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`
	args := []any{
		recipe.ID, recipe.UserID, recipe.Title, recipe.Description, recipe.TimeMinutes,
		recipe.Price, recipe.Link, recipe.Image, recipe.ImageBlurHash,
	}

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...).
		Scan(&recipe.UpdatedAt)

	logQuery(query, args, recipe.UpdatedAt, err)

	return err
}

// Delete removes the owner's recipe and its links.
// Returns sql.ErrNoRows when it does not exist.
func (r *RecipeRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return deleteOwned(ctx, executor(ctx, r.db, r.txGetter), "recipes", userID, id)
}

// SetTags replaces the recipe's tags with tagIDs.
func (r *RecipeRepository) SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	return r.setLinks(ctx, TagTable, recipeID, tagIDs)
}

// SetIngredients replaces the recipe's ingredients with ingredientIDs.
func (r *RecipeRepository) SetIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error {
	return r.setLinks(ctx, IngredientTable, recipeID, ingredientIDs)
}

func (r *RecipeRepository) setLinks(ctx context.Context, table AttributeTable, recipeID int64, ids []int64) error {
	e := executor(ctx, r.db, r.txGetter)

	deleteQuery := `DELETE FROM ` + table.LinkTable + ` WHERE recipe_id = $1`
	_, err := e.ExecContext(ctx, deleteQuery, recipeID)

	logQuery(deleteQuery, []any{recipeID}, nil, err)

	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO ` + table.LinkTable + ` (recipe_id, ` + table.LinkColumn + `)
		SELECT $1, unnest($2::BIGINT[])
		ON CONFLICT DO NOTHING
	`
	_, err = e.ExecContext(ctx, insertQuery, recipeID, ids)

	logQuery(insertQuery, []any{recipeID, ids}, nil, err)

	return err
}

// loadAttributes fills Tags and Ingredients of recipes, each sorted by name.
func (r *RecipeRepository) loadAttributes(ctx context.Context, q sqlx.QueryerContext, recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]int64, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}

	tags, err := linkedAttributes(ctx, q, TagTable, ids)
	if err != nil {
		return err
	}
	ingredients, err := linkedAttributes(ctx, q, IngredientTable, ids)
	if err != nil {
		return err
	}

	for i := range recipes {
		recipes[i].Tags = tags[recipes[i].ID]
		recipes[i].Ingredients = ingredients[recipes[i].ID]
	}
	return nil
}

// linkedAttributes returns the attributes of table linked to each recipe id.
func linkedAttributes(ctx context.Context, q sqlx.QueryerContext, table AttributeTable, recipeIDs []int64) (map[int64][]models.Attribute, error) {
	query := `
		SELECT l.recipe_id, a.id, a.user_id, a.name
		FROM ` + table.LinkTable + ` l
		JOIN ` + table.Name + ` a ON a.id = l.` + table.LinkColumn + `
		WHERE l.recipe_id = ANY($1)
		ORDER BY a.name
	`

	var rows []struct {
		RecipeID int64 `db:"recipe_id"`
		models.Attribute
	}
	err := sqlx.SelectContext(ctx, q, &rows, query, recipeIDs)

	logQuery(query, []any{recipeIDs}, len(rows), err)

	if err != nil {
		return nil, err
	}

	linked := make(map[int64][]models.Attribute, len(recipeIDs))
	for _, row := range rows {
		linked[row.RecipeID] = append(linked[row.RecipeID], row.Attribute)
	}
	return linked, nil
}
