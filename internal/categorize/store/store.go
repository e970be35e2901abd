package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, userID, description string) (string, error) {
	query := `
		SELECT category
		FROM category_mappings
		WHERE user_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, userID, description).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding category match: %w", err)
	}

	return category, nil
}

func (s *Store) CreateMapping(ctx context.Context, userID, rawPattern, category string) error {
	query := `
		INSERT INTO category_mappings (user_id, raw_pattern, category, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := s.db.ExecContext(ctx, query, userID, rawPattern, category); err != nil {
		return fmt.Errorf("creating category mapping: %w", err)
	}

	return nil
}
