package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// ValidateDeposit checks a deposit against a known account state without
// touching the store.
func ValidateDeposit(acc *account.Account, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if acc.Frozen() {
		return ErrAccountFrozen
	}

	return nil
}

// ValidateWithdraw is ValidateDeposit plus the overdraft check.
func ValidateWithdraw(acc *account.Account, amount int64) error {
	if err := ValidateDeposit(acc, amount); err != nil {
		return err
	}

	if amount > acc.Balance {
		return ErrInsufficientFunds
	}

	return nil
}

// Deposit adds amount to the account and records an income adjustment.
func (l *Ledger) Deposit(ctx context.Context, accountID uuid.UUID, amount int64) (*Result, error) {
	return l.adjust(ctx, accountID, amount, transaction.TypeIncome)
}

// Withdraw removes amount from the account and records an expense adjustment.
func (l *Ledger) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64) (*Result, error) {
	return l.adjust(ctx, accountID, amount, transaction.TypeExpense)
}

func (l *Ledger) adjust(ctx context.Context, accountID uuid.UUID, amount int64, typ transaction.Type) (*Result, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	validate, description := ValidateDeposit, "Manual Bank Deposit"
	if typ == transaction.TypeExpense {
		validate, description = ValidateWithdraw, "Manual Bank Withdrawal"
	}

	var res *Result

	err := l.withTx(ctx, func(tx Tx) error {
		acc, err := tx.LockAccount(ctx, l.userID(), accountID)
		if err != nil {
			return err
		}

		if err := validate(acc, amount); err != nil {
			return err
		}

		entry := &transaction.Transaction{
			UserID:        l.userID(),
			Amount:        amount,
			Date:          l.today(),
			Description:   description,
			Type:          typ,
			Category:      transaction.CategoryAdjustment,
			PaymentMethod: transaction.PaymentBank,
			BankAccountID: &acc.ID,
			BankName:      acc.BankName,
		}

		next, err := effect(acc, entry.Signed(), false)
		if err != nil {
			return err
		}

		acc.Balance = next

		if err := tx.UpdateBalance(ctx, l.userID(), acc.ID, acc.Balance); err != nil {
			return fmt.Errorf("updating balance: %w", err)
		}

		if err := tx.CreateTransaction(ctx, entry); err != nil {
			return fmt.Errorf("recording adjustment: %w", err)
		}

		res = &Result{Account: acc, Transaction: entry}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
