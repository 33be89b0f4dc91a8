// models/meta.go
package models

import "time"

// SourceChecksum tracks the fingerprint of the last successfully ingested copy
// of a source archive, keyed by a slugified file name.
type SourceChecksum struct {
	FileName  string    `db:"file_name"`
	Checksum  string    `db:"checksum"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DatasetTimestamp records when a dataset last processed new rows, as a Unix
// millisecond timestamp. Read by the web frontend for "last refreshed" banners.
type DatasetTimestamp struct {
	Dataset   string `db:"dataset" json:"dataset"`
	UpdatedAt int64  `db:"updated_at" json:"updatedAt"`
}
