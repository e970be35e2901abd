package account

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	ListAccounts(ctx context.Context, userID string) ([]*Account, error)
	GetAccount(ctx context.Context, userID string, id uuid.UUID) (*Account, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, userID, id)
}

// Find returns the account with the given id from accounts, or nil.
func Find(accounts []*Account, id uuid.UUID) *Account {
	for _, a := range accounts {
		if a.ID == id {
			return a
		}
	}

	return nil
}

// TotalBalance sums the balances of the given accounts.
func TotalBalance(accounts []*Account) int64 {
	var total int64
	for _, a := range accounts {
		total += a.Balance
	}

	return total
}
