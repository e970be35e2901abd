package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	accountstore "github.com/MrJamesThe3rd/aapnaincom/internal/account/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
	txstore "github.com/MrJamesThe3rd/aapnaincom/internal/transaction/store"
)

// Store opens ledger transactions on Postgres. Each write also queues a
// pg_notify on channel, delivered by Postgres only if the transaction commits.
type Store struct {
	db      *sql.DB
	channel string
}

func New(db *sql.DB, channel string) *Store {
	return &Store{db: db, channel: channel}
}

type ledgerTx struct {
	tx      *sql.Tx
	channel string
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: dbTx, channel: s.channel}, nil
}

func (t *ledgerTx) Commit() error   { return t.tx.Commit() }
func (t *ledgerTx) Rollback() error { return t.tx.Rollback() }

func (t *ledgerTx) notify(ctx context.Context, userID string, c datasync.Collection) error {
	if _, err := t.tx.ExecContext(ctx, "SELECT pg_notify($1, $2)", t.channel, datasync.Payload(c, userID)); err != nil {
		return fmt.Errorf("queueing %s notification: %w", c, err)
	}

	return nil
}

func (t *ledgerTx) LockAccount(ctx context.Context, userID string, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + accountstore.Columns + ` FROM bank_accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`

	a, err := accountstore.Scan(t.tx.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("locking bank account: %w", err)
	}

	return a, nil
}

func (t *ledgerTx) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO bank_accounts (user_id, bank_id, bank_name, account_number_masked, balance, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		a.UserID,
		a.BankID,
		a.BankName,
		a.AccountNumberMasked,
		a.Balance,
		a.Status,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating bank account: %w", err)
	}

	return t.notify(ctx, a.UserID, datasync.Accounts)
}

func (t *ledgerTx) UpdateBalance(ctx context.Context, userID string, id uuid.UUID, balance int64) error {
	return t.updateAccount(ctx, `UPDATE bank_accounts SET balance = $3 WHERE id = $1 AND user_id = $2`, userID, id, balance)
}

func (t *ledgerTx) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status account.Status) error {
	return t.updateAccount(ctx, `UPDATE bank_accounts SET status = $3 WHERE id = $1 AND user_id = $2`, userID, id, status)
}

func (t *ledgerTx) DeleteAccount(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting bank account: %w", err)
	}

	if err := affected(res, account.ErrNotFound); err != nil {
		return err
	}

	return t.notify(ctx, userID, datasync.Accounts)
}

func (t *ledgerTx) updateAccount(ctx context.Context, query, userID string, id uuid.UUID, value any) error {
	res, err := t.tx.ExecContext(ctx, query, id, userID, value)
	if err != nil {
		return fmt.Errorf("updating bank account: %w", err)
	}

	if err := affected(res, account.ErrNotFound); err != nil {
		return err
	}

	return t.notify(ctx, userID, datasync.Accounts)
}

func (t *ledgerTx) GetTransaction(ctx context.Context, userID string, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + txstore.Columns + ` FROM transactions WHERE id = $1 AND user_id = $2`

	tx, err := txstore.Scan(t.tx.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (t *ledgerTx) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, amount, date, description, type, category, payment_method, bank_account_id, bank_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		tx.UserID,
		tx.Amount,
		tx.Date,
		tx.Description,
		tx.Type,
		tx.Category,
		tx.PaymentMethod,
		tx.BankAccountID,
		tx.BankName,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return t.notify(ctx, tx.UserID, datasync.Transactions)
}

func (t *ledgerTx) DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if err := affected(res, transaction.ErrNotFound); err != nil {
		return err
	}

	return t.notify(ctx, userID, datasync.Transactions)
}

func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
