package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// AttributeTable describes where an attribute kind is stored and how it links to recipes.
type AttributeTable struct {
	Name       string // table holding the attributes
	LinkTable  string // recipe link table
	LinkColumn string // attribute column in LinkTable
}

// Attribute tables.
var (
	TagTable        = AttributeTable{Name: "tags", LinkTable: "recipe_tags", LinkColumn: "tag_id"}
	IngredientTable = AttributeTable{Name: "ingredients", LinkTable: "recipe_ingredients", LinkColumn: "ingredient_id"}
)

const attributeColumns = `id, user_id, name`

// AttributeRepository stores tags or ingredients, depending on its table.
type AttributeRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
	table    AttributeTable
}

func NewAttributeRepository(db *sqlx.DB, txGetter TxGetter, table AttributeTable) *AttributeRepository {
	return &AttributeRepository{db: db, txGetter: txGetter, table: table}
}

// List returns the owner's attributes ordered by name descending. With assignedOnly
// set, only attributes linked to at least one of the owner's recipes are returned.
func (r *AttributeRepository) List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Attribute, error) {
	query := `SELECT a.id, a.user_id, a.name FROM ` + r.table.Name + ` a WHERE a.user_id = $1`
	if assignedOnly {
		query += fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM %s l
				JOIN recipes rc ON rc.id = l.recipe_id
				WHERE l.%s = a.id AND rc.user_id = $1
			)`, r.table.LinkTable, r.table.LinkColumn)
	}
	query += ` ORDER BY a.name DESC`

	attrs := []models.Attribute{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &attrs, query, userID)

	logQuery(query, []any{userID}, len(attrs), err)

	return attrs, err
}

// Get returns the owner's attribute by id or sql.ErrNoRows.
func (r *AttributeRepository) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Attribute, error) {
	return getOwned[models.Attribute](ctx, executor(ctx, r.db, r.txGetter), r.table.Name, attributeColumns, userID, id)
}

// GetOrCreate returns the owner's attribute with the given name, creating it if
// needed. The boolean reports whether a row was inserted. Concurrent calls for the
// same owner and name converge on one row.
func (r *AttributeRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*models.Attribute, bool, error) {
	query := `
		INSERT INTO ` + r.table.Name + ` (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, user_id, name, (xmax = 0) AS created
	`

	var row struct {
		models.Attribute
		Created bool `db:"created"`
	}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, userID, name)

	logQuery(query, []any{userID, name}, row, err)

	if err != nil {
		return nil, false, err
	}
	return &row.Attribute, row.Created, nil
}

// Update renames the owner's attribute. Returns sql.ErrNoRows when it does not
// exist and ErrAlreadyExists when the owner already has the new name.
func (r *AttributeRepository) Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.Attribute, error) {
	query := `
		UPDATE ` + r.table.Name + `
		SET name = $3
		WHERE id = $1 AND user_id = $2
		RETURNING ` + attributeColumns

	var attr models.Attribute
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &attr, query, id, userID, name)

	logQuery(query, []any{id, userID, name}, attr, err)

	if isUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return &attr, nil
}

// Delete removes the owner's attribute, detaching it from every recipe.
// Returns sql.ErrNoRows when it does not exist.
func (r *AttributeRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return deleteOwned(ctx, executor(ctx, r.db, r.txGetter), r.table.Name, userID, id)
}
