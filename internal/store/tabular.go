package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Rows is a generic tabular result: column names plus one value slice per row.
type Rows struct {
	Columns []string
	Values  [][]any
}

// ReadTable returns every row of a table for the requested columns.
func (s *Store) ReadTable(ctx context.Context, table string, columns []string) (*Rows, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table)
	return s.ReadQuery(ctx, query)
}

// ReadQuery runs an arbitrary query and returns its full result set.
func (s *Store) ReadQuery(ctx context.Context, query string, args ...any) (*Rows, error) {
	rows, err := s.queryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &Rows{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, value := range values {
			if raw, ok := value.([]byte); ok {
				values[i] = string(raw)
			}
		}
		result.Values = append(result.Values, values)
	}
	return result, rows.Err()
}

// AppendNewRows inserts only rows whose id column value is not already
// present in the target table. Rows with an existing id are silently
// skipped, never updated. Returns the number of rows actually inserted.
func (s *Store) AppendNewRows(ctx context.Context, table string, columns []string, rows [][]any, idColumn string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var inserted int64
	prefix := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		table, strings.Join(columns, ", "), makePlaceholders(len(columns)), idColumn,
	)
	for _, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("append to %s: row has %d values for %d columns", table, len(row), len(columns))
		}
		res, err := tx.ExecContext(ctx, s.rebind(prefix), row...)
		if err != nil {
			return 0, fmt.Errorf("append to %s: %w", table, err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			inserted += affected
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}
	return inserted, nil
}

// ReplaceTable truncates the target and inserts the provided rows in a
// single transaction, so readers never observe a partial replacement.
func (s *Store) ReplaceTable(ctx context.Context, table string, columns []string, rows [][]any) error {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	if err := insertChunked(ctx, tx, s, table, columns, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// RunStatement executes a non-query statement (DDL or bulk DML).
func (s *Store) RunStatement(ctx context.Context, statement string, args ...any) error {
	if _, err := s.execWithRetry(ctx, statement, args...); err != nil {
		return fmt.Errorf("run statement: %w", err)
	}
	return nil
}

func insertChunked(ctx context.Context, tx *sql.Tx, s *Store, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	colList := strings.Join(columns, ", ")
	for start := 0; start < len(rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		var b strings.Builder
		args := make([]any, 0, len(chunk)*len(columns))
		fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, colList)
		for i, row := range chunk {
			if len(row) != len(columns) {
				return fmt.Errorf("insert into %s: row has %d values for %d columns", table, len(row), len(columns))
			}
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('(')
			b.WriteString(makePlaceholders(len(columns)))
			b.WriteByte(')')
			args = append(args, row...)
		}
		if _, err := tx.ExecContext(ctx, s.rebind(b.String()), args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}
