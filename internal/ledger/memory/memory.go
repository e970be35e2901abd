// Package memory is a process-local ledger store. It backs demo mode and
// tests; nothing it holds outlives the process.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

var errTxDone = errors.New("memory: transaction already committed or rolled back")

// Store keeps accounts and transactions in maps. A ledger transaction holds
// the store lock from Begin until Commit or Rollback, so writers serialise.
type Store struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]account.Account
	txs      map[uuid.UUID]transaction.Transaction
	notifier datasync.Notifier
	now      func() time.Time
}

func New(notifier datasync.Notifier) *Store {
	return &Store{
		accounts: make(map[uuid.UUID]account.Account),
		txs:      make(map[uuid.UUID]transaction.Transaction),
		notifier: notifier,
		now:      time.Now,
	}
}

// Seed loads records as-is, without notifications.
func (s *Store) Seed(accounts []*account.Account, txs []*transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range accounts {
		s.accounts[a.ID] = *a
	}

	for _, t := range txs {
		s.txs[t.ID] = *t
	}
}

func (s *Store) ListTransactions(_ context.Context, userID string, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*transaction.Transaction

	for _, t := range s.txs {
		if t.UserID != userID || !filter.Matches(&t) {
			continue
		}

		out = append(out, &t)
	}

	transaction.SortRecent(out)

	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, userID string, id uuid.UUID) (*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.txs[id]
	if !ok || t.UserID != userID {
		return nil, transaction.ErrNotFound
	}

	return &t, nil
}

func (s *Store) ListAccounts(_ context.Context, userID string) ([]*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*account.Account

	for _, a := range s.accounts {
		if a.UserID == userID {
			out = append(out, &a)
		}
	}

	sortAccounts(out)

	return out, nil
}

func sortAccounts(accs []*account.Account) {
	slices.SortFunc(accs, func(a, b *account.Account) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

func (s *Store) GetAccount(_ context.Context, userID string, id uuid.UUID) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, account.ErrNotFound
	}

	return &a, nil
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()

	return &tx{
		s:        s,
		accounts: maps.Clone(s.accounts),
		txs:      maps.Clone(s.txs),
		touched:  make(map[change]struct{}),
	}, nil
}

type change struct {
	userID     string
	collection datasync.Collection
}

// tx stages writes on copies of the store maps and swaps them in on commit.
type tx struct {
	s        *Store
	accounts map[uuid.UUID]account.Account
	txs      map[uuid.UUID]transaction.Transaction
	touched  map[change]struct{}
	done     bool
}

func (t *tx) touch(userID string, c datasync.Collection) {
	t.touched[change{userID, c}] = struct{}{}
}

func (t *tx) LockAccount(_ context.Context, userID string, id uuid.UUID) (*account.Account, error) {
	a, ok := t.accounts[id]
	if !ok || a.UserID != userID {
		return nil, account.ErrNotFound
	}

	return &a, nil
}

func (t *tx) CreateAccount(_ context.Context, a *account.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.CreatedAt.IsZero() {
		a.CreatedAt = t.s.now()
	}

	t.accounts[a.ID] = *a
	t.touch(a.UserID, datasync.Accounts)

	return nil
}

func (t *tx) UpdateBalance(_ context.Context, userID string, id uuid.UUID, balance int64) error {
	a, ok := t.accounts[id]
	if !ok || a.UserID != userID {
		return account.ErrNotFound
	}

	a.Balance = balance
	t.accounts[id] = a
	t.touch(userID, datasync.Accounts)

	return nil
}

func (t *tx) UpdateStatus(_ context.Context, userID string, id uuid.UUID, status account.Status) error {
	a, ok := t.accounts[id]
	if !ok || a.UserID != userID {
		return account.ErrNotFound
	}

	a.Status = status
	t.accounts[id] = a
	t.touch(userID, datasync.Accounts)

	return nil
}

func (t *tx) DeleteAccount(_ context.Context, userID string, id uuid.UUID) error {
	a, ok := t.accounts[id]
	if !ok || a.UserID != userID {
		return account.ErrNotFound
	}

	delete(t.accounts, id)
	t.touch(userID, datasync.Accounts)

	return nil
}

func (t *tx) GetTransaction(_ context.Context, userID string, id uuid.UUID) (*transaction.Transaction, error) {
	tr, ok := t.txs[id]
	if !ok || tr.UserID != userID {
		return nil, transaction.ErrNotFound
	}

	return &tr, nil
}

func (t *tx) CreateTransaction(_ context.Context, tr *transaction.Transaction) error {
	if tr.ID == uuid.Nil {
		tr.ID = uuid.New()
	}

	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = t.s.now()
	}

	t.txs[tr.ID] = *tr
	t.touch(tr.UserID, datasync.Transactions)

	return nil
}

func (t *tx) DeleteTransaction(_ context.Context, userID string, id uuid.UUID) error {
	tr, ok := t.txs[id]
	if !ok || tr.UserID != userID {
		return transaction.ErrNotFound
	}

	delete(t.txs, id)
	t.touch(userID, datasync.Transactions)

	return nil
}

func (t *tx) Commit() error {
	if t.done {
		return errTxDone
	}

	t.done = true
	t.s.accounts = t.accounts
	t.s.txs = t.txs
	notifier := t.s.notifier
	t.s.mu.Unlock()

	if notifier != nil {
		for c := range t.touched {
			notifier.Notify(c.userID, c.collection)
		}
	}

	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}

	t.done = true
	t.s.mu.Unlock()

	return nil
}
