package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// PaymentMethod records how a transaction was settled.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentBank PaymentMethod = "bank"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentBank
}

// CategoryAdjustment marks manual deposit and withdrawal entries.
const CategoryAdjustment = "Adjustment"

var (
	IncomeCategories = []string{
		"Salary", "Freelance", "Investment", "Gift", "Bonus", "Other Income", CategoryAdjustment,
	}
	ExpenseCategories = []string{
		"Food", "Rent", "Bills", "Transport", "Shopping", "Healthcare",
		"Education", "Entertainment", "Travel", "Other Expense", CategoryAdjustment,
	}
)

// DefaultCategory is the catch-all category for a transaction type.
func DefaultCategory(t Type) string {
	if t == TypeIncome {
		return "Other Income"
	}

	return "Other Expense"
}

// Transaction is a single ledger entry. Entries are never edited; they are
// created and deleted.
type Transaction struct {
	ID            uuid.UUID
	UserID        string
	Amount        int64 // Amount in paise, always positive
	Date          time.Time
	Description   string
	Type          Type
	Category      string
	PaymentMethod PaymentMethod
	BankAccountID *uuid.UUID
	BankName      string
	CreatedAt     time.Time
}

// Signed returns the amount with the sign implied by Type.
func (t *Transaction) Signed() int64 {
	if t.Type == TypeExpense {
		return -t.Amount
	}

	return t.Amount
}

// LinkedTo reports whether the transaction was settled through the given account.
func (t *Transaction) LinkedTo(accountID uuid.UUID) bool {
	return t.PaymentMethod == PaymentBank && t.BankAccountID != nil && *t.BankAccountID == accountID
}
