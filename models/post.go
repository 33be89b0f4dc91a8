// models/post.go
package models

import "time"

// Post is a generated blog entry tied to one (month, dataType) pair. The pair
// carries a uniqueness constraint; regeneration upserts on it.
type Post struct {
	ID int64 `db:"id"`

	Month    string `db:"month"`     // "YYYY-MM"
	DataType string `db:"data_type"` // "cars", "coe", "deregistrations"
	Title    string `db:"title"`
	Slug     string `db:"slug"`
	Excerpt  string `db:"excerpt"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var PostKeyColumns = []string{"month", "data_type"}
