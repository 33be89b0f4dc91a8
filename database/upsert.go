// database/upsert.go
package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// upsertChunkSize bounds the number of rows per INSERT so a large monthly
// dataset never exceeds MySQL's placeholder limit.
const upsertChunkSize = 500

// BuildUpsertQuery renders a multi-row INSERT ... ON DUPLICATE KEY UPDATE
// statement for the given table. Columns listed in keyColumns identify the row
// (the table must carry a unique index over them); all remaining columns are
// rewritten from the incoming values on conflict. updated_at is bumped only
// when a conflicting row actually changes, which MySQL handles for us: an
// update that sets every column to its current value is a no-op write.
func BuildUpsertQuery(table string, columns, keyColumns []string, rowCount int) (string, error) {
	if rowCount <= 0 {
		return "", fmt.Errorf("upsert requires at least one row")
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("upsert requires at least one column")
	}

	keys := make(map[string]bool, len(keyColumns))
	for _, k := range keyColumns {
		keys[k] = true
	}

	var updates []string
	for _, col := range columns {
		if keys[col] {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", col, col))
	}
	if len(updates) == 0 {
		return "", fmt.Errorf("upsert on %s has no non-key columns to update", table)
	}
	updates = append(updates, "updated_at = NOW()")

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	rows := strings.TrimSuffix(strings.Repeat(placeholders+", ", rowCount), ", ")

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s ON DUPLICATE KEY UPDATE %s",
		table,
		strings.Join(columns, ", "),
		rows,
		strings.Join(updates, ", "),
	)
	return query, nil
}

// Upsert submits rows to the table in chunks, keyed on keyColumns, inside one
// transaction. Each element of rows must line up with columns. It returns the
// number of rows submitted; callers treat that count as a "did anything run"
// gate, not a changed-row count.
func Upsert(db *sql.DB, table string, columns, keyColumns []string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction for %s upsert: %w", table, err)
	}
	defer tx.Rollback()

	for start := 0; start < len(rows); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		query, err := BuildUpsertQuery(table, columns, keyColumns, len(chunk))
		if err != nil {
			return 0, err
		}

		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			if len(row) != len(columns) {
				return 0, fmt.Errorf("row has %d values, expected %d for %s", len(row), len(columns), table)
			}
			args = append(args, row...)
		}

		if _, err := tx.Exec(query, args...); err != nil {
			return 0, fmt.Errorf("failed to upsert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit %s upsert: %w", table, err)
	}
	return len(rows), nil
}
