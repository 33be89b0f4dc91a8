// database/car_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/sgcarsight/backend/models"
)

const carsTable = "cars"

var carColumns = []string{"month", "make", "importer_type", "fuel_type", "vehicle_type", "number"}

// CarStore persists monthly car-registration rows keyed on
// month + make + fuel_type + vehicle_type.
type CarStore struct {
	db *sql.DB
}

func NewCarStore(db *sql.DB) *CarStore {
	return &CarStore{db: db}
}

// UpsertCars inserts new rows and updates existing ones in place. Re-running
// the same month is safe: the composite key makes the operation idempotent.
func (s *CarStore) UpsertCars(cars []models.Car) (int, error) {
	rows := make([][]any, 0, len(cars))
	for _, c := range cars {
		rows = append(rows, []any{c.Month, c.Make, c.ImporterType, c.FuelType, c.VehicleType, c.Number})
	}

	n, err := Upsert(s.db, carsTable, carColumns, models.CarKeyColumns, rows)
	if err != nil {
		return 0, err
	}
	log.Printf("Database: upserted %d car rows.\n", n)
	return n, nil
}

// LatestMonth returns the most recent month present in the cars table, or ""
// when the table is empty.
func (s *CarStore) LatestMonth() (string, error) {
	var month sql.NullString
	err := s.db.QueryRow("SELECT MAX(month) FROM " + carsTable).Scan(&month)
	if err != nil {
		return "", fmt.Errorf("failed to query latest cars month: %w", err)
	}
	if !month.Valid {
		return "", nil
	}
	return month.String, nil
}
