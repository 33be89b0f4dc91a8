// database/dereg_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/sgcarsight/backend/models"
)

const deregTable = "deregistrations"

var deregColumns = []string{"month", "category", "number"}

// DeregStore persists monthly vehicle-deregistration rows keyed on
// month + category.
type DeregStore struct {
	db *sql.DB
}

func NewDeregStore(db *sql.DB) *DeregStore {
	return &DeregStore{db: db}
}

func (s *DeregStore) UpsertDeregistrations(items []models.Deregistration) (int, error) {
	rows := make([][]any, 0, len(items))
	for _, d := range items {
		rows = append(rows, []any{d.Month, d.Category, d.Number})
	}

	n, err := Upsert(s.db, deregTable, deregColumns, models.DeregKeyColumns, rows)
	if err != nil {
		return 0, err
	}
	log.Printf("Database: upserted %d deregistration rows.\n", n)
	return n, nil
}

func (s *DeregStore) LatestMonth() (string, error) {
	var month sql.NullString
	err := s.db.QueryRow("SELECT MAX(month) FROM " + deregTable).Scan(&month)
	if err != nil {
		return "", fmt.Errorf("failed to query latest deregistration month: %w", err)
	}
	if !month.Valid {
		return "", nil
	}
	return month.String, nil
}
