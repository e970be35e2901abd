package transaction_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

func TestFilter(t *testing.T) {
	txs := []*transaction.Transaction{
		{Description: "Salary March", Type: transaction.TypeIncome, Category: "Salary", BankName: "HDFC Bank"},
		{Description: "Street Food", Type: transaction.TypeExpense, Category: "Food"},
		{Description: "Smart Gadget", Type: transaction.TypeExpense, Category: "Shopping", BankName: "HDFC Bank"},
	}

	tests := []struct {
		name   string
		search string
		typ    transaction.Type
		want   int
	}{
		{name: "All", want: 3},
		{name: "IncomeOnly", typ: transaction.TypeIncome, want: 1},
		{name: "SearchDescription", search: "street", want: 1},
		{name: "SearchCategory", search: "SHOPPING", want: 1},
		{name: "SearchBankName", search: "hdfc", want: 2},
		{name: "SearchAndType", search: "hdfc", typ: transaction.TypeExpense, want: 1},
		{name: "NoMatch", search: "rent", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, transaction.Filter(txs, tt.search, tt.typ), tt.want)
		})
	}
}

func TestListFilter_Matches(t *testing.T) {
	acc := uuid.New()
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tx := &transaction.Transaction{
		Type:          transaction.TypeExpense,
		Date:          march,
		PaymentMethod: transaction.PaymentBank,
		BankAccountID: &acc,
	}

	other := uuid.New()
	start := march.AddDate(0, 0, -1)
	end := march.AddDate(0, 0, 1)
	later := march.AddDate(0, 0, 2)

	tests := []struct {
		name   string
		filter transaction.ListFilter
		want   bool
	}{
		{name: "Empty", want: true},
		{name: "Type", filter: transaction.ListFilter{Type: new(transaction.TypeExpense)}, want: true},
		{name: "OtherType", filter: transaction.ListFilter{Type: new(transaction.TypeIncome)}, want: false},
		{name: "Account", filter: transaction.ListFilter{BankAccountID: &acc}, want: true},
		{name: "OtherAccount", filter: transaction.ListFilter{BankAccountID: &other}, want: false},
		{name: "InRange", filter: transaction.ListFilter{StartDate: &start, EndDate: &end}, want: true},
		{name: "BeforeRange", filter: transaction.ListFilter{StartDate: &later}, want: false},
		{name: "AfterRange", filter: transaction.ListFilter{EndDate: &start}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tx))
		})
	}
}

func TestTransaction_Signed(t *testing.T) {
	in := &transaction.Transaction{Amount: 500, Type: transaction.TypeIncome}
	out := &transaction.Transaction{Amount: 500, Type: transaction.TypeExpense}

	assert.Equal(t, int64(500), in.Signed())
	assert.Equal(t, int64(-500), out.Signed())
}

func TestTransaction_LinkedTo(t *testing.T) {
	acc := uuid.New()

	assert.True(t, (&transaction.Transaction{PaymentMethod: transaction.PaymentBank, BankAccountID: &acc}).LinkedTo(acc))
	assert.False(t, (&transaction.Transaction{PaymentMethod: transaction.PaymentCash, BankAccountID: &acc}).LinkedTo(acc))
	assert.False(t, (&transaction.Transaction{PaymentMethod: transaction.PaymentBank}).LinkedTo(acc))
}

func TestDefaultCategory(t *testing.T) {
	assert.Equal(t, "Other Income", transaction.DefaultCategory(transaction.TypeIncome))
	assert.Equal(t, "Other Expense", transaction.DefaultCategory(transaction.TypeExpense))
	assert.Contains(t, transaction.IncomeCategories, transaction.CategoryAdjustment)
	assert.Contains(t, transaction.ExpenseCategories, transaction.CategoryAdjustment)
}
