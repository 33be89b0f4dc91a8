// database/post_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/sgcarsight/backend/models"
)

// PostStore persists generated blog posts. (month, data_type) carries a
// unique index; regeneration upserts on it.
type PostStore struct {
	db *sql.DB
}

func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// UpsertPost creates or refreshes the post for (month, dataType).
func (s *PostStore) UpsertPost(post models.Post) error {
	query := `
		INSERT INTO posts (month, data_type, title, slug, excerpt, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			title = VALUES(title),
			slug = VALUES(slug),
			excerpt = VALUES(excerpt),
			updated_at = NOW()
	`
	_, err := s.db.Exec(query, post.Month, post.DataType, post.Title, post.Slug, post.Excerpt)
	if err != nil {
		return fmt.Errorf("failed to upsert post for %s/%s: %w", post.Month, post.DataType, err)
	}
	log.Printf("Database: upserted post for %s/%s.\n", post.Month, post.DataType)
	return nil
}

// PostExists reports whether a post already exists for (month, dataType).
func (s *PostStore) PostExists(month, dataType string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM posts WHERE month = ? AND data_type = ?", month, dataType,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query post for %s/%s: %w", month, dataType, err)
	}
	return true, nil
}
