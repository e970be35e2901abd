// Package categorize learns which category a user files a description under
// and suggests it for new entries.
package categorize

import (
	"context"
	"errors"
	"strings"

	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

var ErrEmptyMapping = errors.New("pattern and category are required")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	FindMatch(ctx context.Context, userID, description string) (string, error)
	CreateMapping(ctx context.Context, userID, rawPattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest learned pattern contained in
// description, or an empty string when nothing matches.
func (s *Service) Suggest(ctx context.Context, userID, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, userID, description)
}

// Learn remembers that descriptions containing rawPattern belong to category.
func (s *Service) Learn(ctx context.Context, userID, rawPattern, category string) error {
	rawPattern = strings.TrimSpace(rawPattern)
	category = strings.TrimSpace(category)

	if rawPattern == "" || category == "" {
		return ErrEmptyMapping
	}

	return s.repo.CreateMapping(ctx, userID, rawPattern, category)
}

// Categorize is Suggest with the type's default category as fallback.
func (s *Service) Categorize(ctx context.Context, userID, description string, typ transaction.Type) (string, error) {
	category, err := s.Suggest(ctx, userID, description)
	if err != nil {
		return "", err
	}

	if category == "" {
		return transaction.DefaultCategory(typ), nil
	}

	return category, nil
}
