// database/meta_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/sgcarsight/backend/models"
)

// MetaStore holds pipeline bookkeeping: source-file checksums and per-dataset
// last-updated timestamps. Both are plain key-value tables with no
// transactional coupling to the registration data; a crash between an upsert
// and a timestamp write leaves the timestamp stale but the data intact.
type MetaStore struct {
	db *sql.DB
}

func NewMetaStore(db *sql.DB) *MetaStore {
	return &MetaStore{db: db}
}

// SlugifyFileName normalises a raw source file name into a cache key, so names
// with spaces or path delimiters cannot collide.
func SlugifyFileName(fileName string) string {
	slug := strings.ToLower(strings.TrimSpace(fileName))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// SaveChecksum records the fingerprint of the last ingested copy of a source
// file, overwriting any previous value.
func (s *MetaStore) SaveChecksum(fileName, checksum string) error {
	query := `
		INSERT INTO source_checksums (file_name, checksum, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE checksum = VALUES(checksum), updated_at = NOW()
	`
	if _, err := s.db.Exec(query, SlugifyFileName(fileName), checksum); err != nil {
		return fmt.Errorf("failed to save checksum for %s: %w", fileName, err)
	}
	return nil
}

// GetChecksum returns the cached fingerprint for a source file, or "" when
// none has been recorded.
func (s *MetaStore) GetChecksum(fileName string) (string, error) {
	var checksum string
	err := s.db.QueryRow(
		"SELECT checksum FROM source_checksums WHERE file_name = ?", SlugifyFileName(fileName),
	).Scan(&checksum)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query checksum for %s: %w", fileName, err)
	}
	return checksum, nil
}

// SetLastUpdated records when a dataset last processed new rows, as a Unix
// millisecond timestamp.
func (s *MetaStore) SetLastUpdated(dataset string, ts int64) error {
	query := `
		INSERT INTO dataset_timestamps (dataset, updated_at)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE updated_at = VALUES(updated_at)
	`
	if _, err := s.db.Exec(query, dataset, ts); err != nil {
		return fmt.Errorf("failed to set last-updated for %s: %w", dataset, err)
	}
	log.Printf("Database: last-updated timestamp written for %s.\n", dataset)
	return nil
}

// LastUpdated returns all recorded dataset timestamps.
func (s *MetaStore) LastUpdated() ([]models.DatasetTimestamp, error) {
	rows, err := s.db.Query("SELECT dataset, updated_at FROM dataset_timestamps ORDER BY dataset")
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset timestamps: %w", err)
	}
	defer rows.Close()

	var stamps []models.DatasetTimestamp
	for rows.Next() {
		var t models.DatasetTimestamp
		if err := rows.Scan(&t.Dataset, &t.UpdatedAt); err != nil {
			log.Printf("ERROR Database: failed to scan dataset timestamp row: %v", err)
			continue
		}
		stamps = append(stamps, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dataset timestamp rows: %w", err)
	}
	return stamps, nil
}
