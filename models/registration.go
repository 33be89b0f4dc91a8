// models/registration.go
package models

import "time"

// Car represents one row of the LTA "Monthly New Registration of Cars by Make"
// dataset. A row is uniquely identified by month + make + fuel type + vehicle
// type; re-ingesting the same month must update in place, never duplicate.
type Car struct {
	ID int64 `db:"id"`

	Month        string `csv:"month" db:"month"` // "YYYY-MM"
	Make         string `csv:"make" db:"make"`
	ImporterType string `csv:"importer_type" db:"importer_type"`
	FuelType     string `csv:"fuel_type" db:"fuel_type"`
	VehicleType  string `csv:"vehicle_type" db:"vehicle_type"`
	Number       int    `csv:"number" db:"number"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// COEResult represents one row of the COE bidding-results dataset, keyed on
// month + bidding round + vehicle class.
type COEResult struct {
	ID int64 `db:"id"`

	Month        string `csv:"month" db:"month"`
	BiddingNo    int    `csv:"bidding_no" db:"bidding_no"`
	VehicleClass string `csv:"vehicle_class" db:"vehicle_class"`
	Quota        int    `csv:"quota" db:"quota"`
	BidsSuccess  int    `csv:"bids_success" db:"bids_success"`
	BidsReceived int    `csv:"bids_received" db:"bids_received"`
	Premium      int    `csv:"premium" db:"premium"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PQPRate represents one row of the Prevailing Quota Premium dataset, keyed on
// month + vehicle class.
type PQPRate struct {
	ID int64 `db:"id"`

	Month        string `csv:"month" db:"month"`
	VehicleClass string `csv:"vehicle_class" db:"vehicle_class"`
	PQP          int    `csv:"pqp" db:"pqp"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Deregistration represents one row of the monthly vehicle-deregistration
// dataset, keyed on month + category.
type Deregistration struct {
	ID int64 `db:"id"`

	Month    string `csv:"month" db:"month"`
	Category string `csv:"category" db:"category"`
	Number   int    `csv:"number" db:"number"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Composite natural keys per table. Every ingestion call site shares these so
// the uniqueness invariant lives in one place.
var (
	CarKeyColumns   = []string{"month", "make", "fuel_type", "vehicle_type"}
	COEKeyColumns   = []string{"month", "bidding_no", "vehicle_class"}
	PQPKeyColumns   = []string{"month", "vehicle_class"}
	DeregKeyColumns = []string{"month", "category"}
)
