// database/coe_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/sgcarsight/backend/models"
)

const (
	coeTable = "coe"
	pqpTable = "coe_pqp"
)

var (
	coeColumns = []string{"month", "bidding_no", "vehicle_class", "quota", "bids_success", "bids_received", "premium"}
	pqpColumns = []string{"month", "vehicle_class", "pqp"}
)

// COEStore persists COE bidding results and PQP rates. The two datasets are
// ingested as independent tasks but share one store.
type COEStore struct {
	db *sql.DB
}

func NewCOEStore(db *sql.DB) *COEStore {
	return &COEStore{db: db}
}

func (s *COEStore) UpsertResults(results []models.COEResult) (int, error) {
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		rows = append(rows, []any{r.Month, r.BiddingNo, r.VehicleClass, r.Quota, r.BidsSuccess, r.BidsReceived, r.Premium})
	}

	n, err := Upsert(s.db, coeTable, coeColumns, models.COEKeyColumns, rows)
	if err != nil {
		return 0, err
	}
	log.Printf("Database: upserted %d COE bidding rows.\n", n)
	return n, nil
}

func (s *COEStore) UpsertPQP(rates []models.PQPRate) (int, error) {
	rows := make([][]any, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []any{r.Month, r.VehicleClass, r.PQP})
	}

	n, err := Upsert(s.db, pqpTable, pqpColumns, models.PQPKeyColumns, rows)
	if err != nil {
		return 0, err
	}
	log.Printf("Database: upserted %d PQP rows.\n", n)
	return n, nil
}

func (s *COEStore) LatestMonth() (string, error) {
	var month sql.NullString
	err := s.db.QueryRow("SELECT MAX(month) FROM " + coeTable).Scan(&month)
	if err != nil {
		return "", fmt.Errorf("failed to query latest COE month: %w", err)
	}
	if !month.Valid {
		return "", nil
	}
	return month.String, nil
}
