package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// querier is satisfied by both *DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// timeLayout is the text encoding of timestamp columns.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// timestamp scans a text timestamp column into t.
type timestamp struct {
	column string
	t      *time.Time
}

func (ts timestamp) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("failed to parse %s: unsupported type %T", ts.column, src)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", ts.column, err)
	}
	*ts.t = t
	return nil
}

// paginate returns the LIMIT/OFFSET clause and its arguments. SQLite only
// accepts OFFSET after LIMIT, so an offset alone gets an unbounded limit.
func paginate(limit, offset int) (string, []any) {
	switch {
	case limit > 0 && offset > 0:
		return " LIMIT ? OFFSET ?", []any{limit, offset}
	case limit > 0:
		return " LIMIT ?", []any{limit}
	case offset > 0:
		return " LIMIT -1 OFFSET ?", []any{offset}
	}
	return "", nil
}
