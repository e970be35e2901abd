package resource_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/resource"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

func TestCreatedAtIsEpochMillis(t *testing.T) {
	created := time.Date(2024, 3, 15, 18, 30, 0, 123_000_000, time.UTC)

	tx := resource.FromTransaction(&transaction.Transaction{
		ID:            uuid.New(),
		Amount:        25050,
		Type:          transaction.TypeExpense,
		Category:      "Food",
		Description:   "Swiggy order",
		Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod: transaction.PaymentCash,
		CreatedAt:     created,
	})

	acc := resource.FromAccount(&account.Account{
		ID:                  uuid.New(),
		BankID:              "hdfc",
		BankName:            "HDFC Bank",
		AccountNumberMasked: account.Mask("4410"),
		Status:              account.StatusActive,
		CreatedAt:           created,
	})

	for name, v := range map[string]any{"transaction": tx, "account": acc} {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(v)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(raw, &got))

			assert.Equal(t, float64(created.UnixMilli()), got["created_at"])
		})
	}

	assert.Equal(t, "2024-03-15", tx.Date)
}
