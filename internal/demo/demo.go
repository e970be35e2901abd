// Package demo fabricates the fixed sample ledger shown in demo mode.
package demo

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

var (
	AccountSBI  = uuid.MustParse("00000000-0000-4000-8000-0000000000b1")
	AccountHDFC = uuid.MustParse("00000000-0000-4000-8000-0000000000b2")

	TxInvestment = uuid.MustParse("00000000-0000-4000-8000-0000000000a1")
	TxGadget     = uuid.MustParse("00000000-0000-4000-8000-0000000000a2")
	TxStreetFood = uuid.MustParse("00000000-0000-4000-8000-0000000000a3")
)

// Transactions returns the demo ledger for userID, newest first.
func Transactions(userID string, now time.Time) []*transaction.Transaction {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sbi, hdfc := AccountSBI, AccountHDFC

	return []*transaction.Transaction{
		{
			ID:            TxInvestment,
			UserID:        userID,
			Amount:        7500000,
			Date:          today,
			Description:   "Investment Profit",
			Type:          transaction.TypeIncome,
			Category:      "Investment",
			PaymentMethod: transaction.PaymentBank,
			BankAccountID: &sbi,
			BankName:      "SBI Bank",
			CreatedAt:     now,
		},
		{
			ID:            TxGadget,
			UserID:        userID,
			Amount:        240000,
			Date:          today,
			Description:   "Smart Gadget",
			Type:          transaction.TypeExpense,
			Category:      "Shopping",
			PaymentMethod: transaction.PaymentBank,
			BankAccountID: &hdfc,
			BankName:      "HDFC Bank",
			CreatedAt:     now.Add(-time.Second),
		},
		{
			ID:            TxStreetFood,
			UserID:        userID,
			Amount:        50000,
			Date:          today,
			Description:   "Street Food",
			Type:          transaction.TypeExpense,
			Category:      "Food",
			PaymentMethod: transaction.PaymentCash,
			CreatedAt:     now.Add(-2 * time.Second),
		},
	}
}

// Accounts returns the demo bank accounts for userID. The HDFC card is frozen.
func Accounts(userID string, now time.Time) []*account.Account {
	return []*account.Account{
		{
			ID:                  AccountSBI,
			UserID:              userID,
			BankID:              "sbi",
			BankName:            "SBI Bank",
			AccountNumberMasked: account.Mask("8821"),
			Balance:             12500000,
			Status:              account.StatusActive,
			CreatedAt:           now,
		},
		{
			ID:                  AccountHDFC,
			UserID:              userID,
			BankID:              "hdfc",
			BankName:            "HDFC Bank",
			AccountNumberMasked: account.Mask("4410"),
			Balance:             6200000,
			Status:              account.StatusFrozen,
			CreatedAt:           now,
		},
	}
}
