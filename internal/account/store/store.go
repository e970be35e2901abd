package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Columns is the column list expected by Scan, in order.
const Columns = `id, user_id, bank_id, bank_name, account_number_masked, balance, status, created_at`

// Scan reads a bank account row selected with Columns.
func Scan(s Scanner) (*account.Account, error) {
	var a account.Account

	var statusStr string

	if err := s.Scan(
		&a.ID, &a.UserID, &a.BankID, &a.BankName, &a.AccountNumberMasked, &a.Balance, &statusStr, &a.CreatedAt,
	); err != nil {
		return nil, err
	}

	a.Status = account.Status(statusStr)

	return &a, nil
}

func (s *Store) GetAccount(ctx context.Context, userID string, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + Columns + ` FROM bank_accounts WHERE id = $1 AND user_id = $2`

	a, err := Scan(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting bank account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID string) ([]*account.Account, error) {
	query := `SELECT ` + Columns + ` FROM bank_accounts WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bank account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bank account rows: %w", err)
	}

	return accounts, nil
}
