// Package resource holds the JSON shapes shared by the API handlers and the
// sync stream.
package resource

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/bank"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

type Transaction struct {
	ID            uuid.UUID                 `json:"id"`
	Amount        int64                     `json:"amount"`
	Type          transaction.Type          `json:"type"`
	Category      string                    `json:"category"`
	Description   string                    `json:"description"`
	Date          string                    `json:"date"`
	PaymentMethod transaction.PaymentMethod `json:"payment_method"`
	BankAccountID *uuid.UUID                `json:"bank_account_id,omitempty"`
	BankName      string                    `json:"bank_name,omitempty"`
	// Epoch milliseconds.
	CreatedAt int64 `json:"created_at"`
}

type Account struct {
	ID            uuid.UUID      `json:"id"`
	BankID        string         `json:"bank_id"`
	BankName      string         `json:"bank_name"`
	Color         string         `json:"color"`
	TextColor     string         `json:"text_color"`
	AccountNumber string         `json:"account_number"`
	Balance       int64          `json:"balance"`
	Status        account.Status `json:"status"`
	CreatedAt     int64          `json:"created_at"`
}

func FromTransaction(t *transaction.Transaction) Transaction {
	return Transaction{
		ID:            t.ID,
		Amount:        t.Amount,
		Type:          t.Type,
		Category:      t.Category,
		Description:   t.Description,
		Date:          t.Date.Format(time.DateOnly),
		PaymentMethod: t.PaymentMethod,
		BankAccountID: t.BankAccountID,
		BankName:      t.BankName,
		CreatedAt:     t.CreatedAt.UnixMilli(),
	}
}

func FromTransactions(txs []*transaction.Transaction) []Transaction {
	resp := make([]Transaction, len(txs))
	for i, t := range txs {
		resp[i] = FromTransaction(t)
	}

	return resp
}

// FromAccount renders a with the colours of its bank preset.
func FromAccount(a *account.Account) Account {
	meta := bank.Display(a.BankID)

	return Account{
		ID:            a.ID,
		BankID:        a.BankID,
		BankName:      a.BankName,
		Color:         meta.Color,
		TextColor:     meta.TextColor,
		AccountNumber: a.AccountNumberMasked,
		Balance:       a.Balance,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt.UnixMilli(),
	}
}

func FromAccounts(accs []*account.Account) []Account {
	resp := make([]Account, len(accs))
	for i, a := range accs {
		resp[i] = FromAccount(a)
	}

	return resp
}

// Result is the state written by a ledger call. Account is absent for cash
// entries and for deletes whose account was unlinked.
type Result struct {
	Transaction *Transaction `json:"transaction,omitempty"`
	Account     *Account     `json:"account,omitempty"`
}

func FromResult(res *ledger.Result) Result {
	var resp Result

	if res.Transaction != nil {
		resp.Transaction = new(FromTransaction(res.Transaction))
	}

	if res.Account != nil {
		resp.Account = new(FromAccount(res.Account))
	}

	return resp
}
