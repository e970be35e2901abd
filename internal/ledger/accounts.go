package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/bank"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
)

type LinkParams struct {
	BankID         string
	AccountNumber  string // only the last four digits are kept
	OpeningBalance int64
}

// ParseOpeningBalance reads a user-entered opening balance. Anything that is
// not a non-negative amount becomes zero.
func ParseOpeningBalance(s string) int64 {
	v, err := money.Parse(s)
	if err != nil || v < 0 {
		return 0
	}

	return v
}

// LinkAccount creates an active account for one of the supported bank presets.
func (l *Ledger) LinkAccount(ctx context.Context, p LinkParams) (*account.Account, error) {
	meta, ok := bank.Lookup(p.BankID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, p.BankID)
	}

	lastFour, ok := account.LastFour(p.AccountNumber)
	if !ok {
		return nil, ErrInvalidAccountNumber
	}

	opening := p.OpeningBalance
	if opening < 0 {
		opening = 0
	}

	acc := &account.Account{
		UserID:              l.userID(),
		BankID:              meta.ID,
		BankName:            meta.Name,
		AccountNumberMasked: account.Mask(lastFour),
		Balance:             opening,
		Status:              account.StatusActive,
	}

	err := l.withTx(ctx, func(tx Tx) error {
		if err := tx.CreateAccount(ctx, acc); err != nil {
			return fmt.Errorf("linking account: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return acc, nil
}

// UnlinkAccount deletes the account. Its transactions stay in the ledger.
func (l *Ledger) UnlinkAccount(ctx context.Context, id uuid.UUID) error {
	return l.withTx(ctx, func(tx Tx) error {
		return tx.DeleteAccount(ctx, l.userID(), id)
	})
}

func (l *Ledger) Freeze(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return l.setStatus(ctx, id, func(account.Status) account.Status { return account.StatusFrozen })
}

func (l *Ledger) Unfreeze(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return l.setStatus(ctx, id, func(account.Status) account.Status { return account.StatusActive })
}

// ToggleFreeze flips the account between active and frozen.
func (l *Ledger) ToggleFreeze(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return l.setStatus(ctx, id, func(cur account.Status) account.Status {
		if cur == account.StatusActive {
			return account.StatusFrozen
		}

		return account.StatusActive
	})
}

func (l *Ledger) setStatus(ctx context.Context, id uuid.UUID, next func(account.Status) account.Status) (*account.Account, error) {
	var acc *account.Account

	err := l.withTx(ctx, func(tx Tx) error {
		a, err := tx.LockAccount(ctx, l.userID(), id)
		if err != nil {
			return err
		}

		a.Status = next(a.Status)

		if err := tx.UpdateStatus(ctx, l.userID(), a.ID, a.Status); err != nil {
			return fmt.Errorf("updating account status: %w", err)
		}

		acc = a

		return nil
	})
	if err != nil {
		return nil, err
	}

	return acc, nil
}
