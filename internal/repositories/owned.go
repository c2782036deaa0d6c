package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/logger"
)

// ErrAlreadyExists is returned when a write violates a unique constraint.
var ErrAlreadyExists = errors.New("already exists")

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor returns the request transaction when there is one, otherwise db.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// getOwned loads the row of table with the given id, scoped to its owner.
// A missing row and a row owned by someone else both yield sql.ErrNoRows.
func getOwned[T any](ctx context.Context, q sqlx.QueryerContext, table, columns string, userID uuid.UUID, id int64) (*T, error) {
	query := `SELECT ` + columns + ` FROM ` + table + ` WHERE id = $1 AND user_id = $2`

	var row T
	err := sqlx.GetContext(ctx, q, &row, query, id, userID)

	logQuery(query, []any{id, userID}, row, err)

	if err != nil {
		return nil, err
	}
	return &row, nil
}

// deleteOwned deletes the row of table with the given id, scoped to its owner.
// Returns sql.ErrNoRows when nothing matched.
func deleteOwned(ctx context.Context, e sqlx.ExecerContext, table string, userID uuid.UUID, id int64) error {
	query := `DELETE FROM ` + table + ` WHERE id = $1 AND user_id = $2`

	res, err := e.ExecContext(ctx, query, id, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id, userID}, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// logQuery logs a query on a single line with its arguments and outcome.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
