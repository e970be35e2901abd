package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]*Transaction, error)
	GetTransaction(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Type          *Type
	BankAccountID *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

// List returns the user's transactions, most recent first.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]*Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	SortRecent(txs)

	return txs, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}
