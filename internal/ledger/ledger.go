// Package ledger keeps each bank account's cached balance consistent with the
// transactions settled through it.
//
// Every mutation runs inside one store transaction: the account row is locked,
// the balance is updated and the transaction is inserted or deleted, then the
// whole unit commits or rolls back together.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

var (
	ErrInvalidAmount        = errors.New("please enter a valid amount")
	ErrInsufficientFunds    = errors.New("insufficient funds in this bank account")
	ErrAccountFrozen        = errors.New("this account is frozen, unfreeze it to perform transactions")
	ErrUnknownBank          = errors.New("unknown bank")
	ErrInvalidAccountNumber = errors.New("account number needs at least four digits")
	ErrInvalidTransaction   = errors.New("invalid transaction")

	ErrAmountTooLarge = fmt.Errorf("%w: the balance cannot hold this amount", ErrInvalidAmount)
)

//go:generate mockgen -source=ledger.go -destination=repository_mock.go -package=ledger
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one atomic unit of ledger work. LockAccount holds the account until
// Commit or Rollback.
type Tx interface {
	LockAccount(ctx context.Context, userID string, id uuid.UUID) (*account.Account, error)
	CreateAccount(ctx context.Context, a *account.Account) error
	UpdateBalance(ctx context.Context, userID string, id uuid.UUID, balance int64) error
	UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status account.Status) error
	DeleteAccount(ctx context.Context, userID string, id uuid.UUID) error

	GetTransaction(ctx context.Context, userID string, id uuid.UUID) (*transaction.Transaction, error)
	CreateTransaction(ctx context.Context, tx *transaction.Transaction) error
	DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error

	Commit() error
	Rollback() error
}

// Ledger performs reconciled writes on behalf of one owner.
type Ledger struct {
	repo  Repository
	owner identity.Identity
	now   func() time.Time
}

func New(repo Repository, owner identity.Identity) *Ledger {
	return &Ledger{repo: repo, owner: owner, now: time.Now}
}

// WithClock replaces the clock used to date manual adjustments.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

func (l *Ledger) Owner() identity.Identity {
	return l.owner
}

// Result is the state written by a ledger operation.
type Result struct {
	Account     *account.Account
	Transaction *transaction.Transaction
}

func (l *Ledger) userID() string {
	return l.owner.UserID()
}

func (l *Ledger) today() time.Time {
	n := l.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (l *Ledger) withTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger tx: %w", err)
	}

	return nil
}

// effect applies a signed transaction amount to acc, refusing to drive the
// balance negative when guard is set.
func effect(acc *account.Account, signed int64, guard bool) (int64, error) {
	next, ok := money.Add(acc.Balance, signed)
	if !ok {
		return 0, ErrAmountTooLarge
	}

	if guard && next < 0 {
		return 0, ErrInsufficientFunds
	}

	return next, nil
}
