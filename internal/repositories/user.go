package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

const userColumns = `user_id, email, name, password_hash, is_active, is_staff, created_at, updated_at`

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email or sql.ErrNoRows.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)

	logQuery(query, []any{email}, user.UserID, err)

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with the given id or sql.ErrNoRows.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)

	logQuery(query, []any{userID}, user.Email, err)

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository handles user write operations.
// Writes join the request transaction when txGetter returns one.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new user and fills in its generated columns.
// Returns ErrAlreadyExists when the email is taken.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (email, name, password_hash, is_active, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, FALSE, NOW(), NOW())
		RETURNING user_id, is_active, is_staff, created_at, updated_at
	`
	args := []any{user.Email, user.Name, "***"}

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, user.Email, user.Name, user.PasswordHash).
		Scan(&user.UserID, &user.IsActive, &user.IsStaff, &user.CreatedAt, &user.UpdatedAt)

	logQuery(query, args, user.UserID, err)

	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

// Update writes the user's name and password hash.
// Returns sql.ErrNoRows when the user does not exist.
func (r *UserWriteRepository) Update(ctx context.Context, user *models.User) error {
	const query = `
		UPDATE users
		SET name = $2, password_hash = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at
	`
	args := []any{user.UserID, user.Name, "***"}

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, user.UserID, user.Name, user.PasswordHash).
		Scan(&user.UpdatedAt)

	logQuery(query, args, user.UpdatedAt, err)

	return err
}
