package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// RecordParams describes an ordinary income or expense entry.
type RecordParams struct {
	Amount        int64
	Date          time.Time
	Description   string
	Type          transaction.Type
	Category      string
	PaymentMethod transaction.PaymentMethod
	BankAccountID *uuid.UUID
}

func (p RecordParams) validate() error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}

	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, p.Type)
	}

	if !p.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidTransaction, p.PaymentMethod)
	}

	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidTransaction)
	}

	if p.PaymentMethod == transaction.PaymentBank && p.BankAccountID == nil {
		return fmt.Errorf("%w: bank payments need a bank account", ErrInvalidTransaction)
	}

	return nil
}

func (l *Ledger) entry(p RecordParams) *transaction.Transaction {
	category := strings.TrimSpace(p.Category)
	if category == "" {
		category = transaction.DefaultCategory(p.Type)
	}

	date := p.Date
	if date.IsZero() {
		date = l.today()
	}

	e := &transaction.Transaction{
		UserID:        l.userID(),
		Amount:        p.Amount,
		Date:          date,
		Description:   strings.TrimSpace(p.Description),
		Type:          p.Type,
		Category:      category,
		PaymentMethod: p.PaymentMethod,
	}

	if p.PaymentMethod == transaction.PaymentBank {
		e.BankAccountID = p.BankAccountID
	}

	return e
}

// Record stores a new transaction. Bank payments move the linked account's
// balance in the same store transaction; cash payments touch no account.
func (l *Ledger) Record(ctx context.Context, p RecordParams) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	e := l.entry(p)

	var res *Result

	err := l.withTx(ctx, func(tx Tx) error {
		res = &Result{Transaction: e}

		if e.PaymentMethod == transaction.PaymentBank {
			acc, err := l.apply(ctx, tx, *e.BankAccountID, e.Signed(), true)
			if err != nil {
				return err
			}

			e.BankName = acc.BankName
			res.Account = acc
		}

		if err := tx.CreateTransaction(ctx, e); err != nil {
			return fmt.Errorf("recording transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Import records a batch of statement rows against one account. Either every
// row is stored or none is. Only the final balance must stay non-negative.
func (l *Ledger) Import(ctx context.Context, accountID uuid.UUID, rows []RecordParams) (*ImportResult, error) {
	if len(rows) == 0 {
		return &ImportResult{}, nil
	}

	entries := make([]*transaction.Transaction, 0, len(rows))

	var net int64

	for i, r := range rows {
		r.PaymentMethod = transaction.PaymentBank
		r.BankAccountID = &accountID

		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		e := l.entry(r)

		var ok bool
		if net, ok = money.Add(net, e.Signed()); !ok {
			return nil, fmt.Errorf("row %d: %w", i+1, ErrAmountTooLarge)
		}

		entries = append(entries, e)
	}

	var res *ImportResult

	err := l.withTx(ctx, func(tx Tx) error {
		acc, err := l.apply(ctx, tx, accountID, net, true)
		if err != nil {
			return err
		}

		for _, e := range entries {
			e.BankName = acc.BankName

			if err := tx.CreateTransaction(ctx, e); err != nil {
				return fmt.Errorf("recording imported transaction: %w", err)
			}
		}

		res = &ImportResult{Account: acc, Transactions: entries}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

type ImportResult struct {
	Account      *account.Account
	Transactions []*transaction.Transaction
}

// apply locks the account and moves its balance by signed.
func (l *Ledger) apply(ctx context.Context, tx Tx, accountID uuid.UUID, signed int64, guard bool) (*account.Account, error) {
	acc, err := tx.LockAccount(ctx, l.userID(), accountID)
	if err != nil {
		return nil, err
	}

	if guard && acc.Frozen() {
		return nil, ErrAccountFrozen
	}

	next, err := effect(acc, signed, guard)
	if err != nil {
		return nil, err
	}

	if err := tx.UpdateBalance(ctx, l.userID(), acc.ID, next); err != nil {
		return nil, fmt.Errorf("updating balance: %w", err)
	}

	acc.Balance = next

	return acc, nil
}

// Delete removes a transaction and reverses its effect on the linked account.
// If the account no longer exists the reversal is skipped and only the
// transaction is removed. Reversals ignore the frozen status and may leave
// the balance negative.
func (l *Ledger) Delete(ctx context.Context, id uuid.UUID) (*Result, error) {
	var res *Result

	err := l.withTx(ctx, func(tx Tx) error {
		t, err := tx.GetTransaction(ctx, l.userID(), id)
		if err != nil {
			return err
		}

		res = &Result{Transaction: t}

		if t.PaymentMethod == transaction.PaymentBank && t.BankAccountID != nil {
			acc, err := l.apply(ctx, tx, *t.BankAccountID, -t.Signed(), false)

			switch {
			case errors.Is(err, account.ErrNotFound):
				// Account was unlinked; nothing to reverse.
			case err != nil:
				return err
			default:
				res.Account = acc
			}
		}

		if err := tx.DeleteTransaction(ctx, l.userID(), id); err != nil {
			return fmt.Errorf("deleting transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
