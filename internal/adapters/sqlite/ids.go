package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// queryer is the subset of *sql.DB and *sql.Tx the repositories need, so ID
// generation and row copies work both standalone and inside transactions.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// nextSeq returns the max numeric suffix currently used by the table's
// prefixed IDs. Prefix includes the dash.
func nextSeq(ctx context.Context, q queryer, table, prefix string) (int, error) {
	var maxID int
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM %s",
		len(prefix)+1, table,
	)
	if err := q.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to generate %s id: %w", table, err)
	}
	return maxID, nil
}

// nextID generates the next sequential prefixed ID (e.g. ARR-004) for a table
// by finding the max existing numeric suffix.
func nextID(ctx context.Context, q queryer, table, prefix string) (string, error) {
	maxID, err := nextSeq(ctx, q, table, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, maxID+1), nil
}
