package ledger_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger/memory"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

var owner = identity.New(identity.Profile{UID: "user-1", Email: "asha@example.com", DisplayName: "Asha Rao"})

type recorder struct {
	mu      sync.Mutex
	changes []datasync.Collection
}

func (r *recorder) Notify(_ string, c datasync.Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.changes = append(r.changes, c)
}

func setup(t *testing.T, opening int64) (*ledger.Ledger, *memory.Store, *account.Account) {
	t.Helper()

	store := memory.New(nil)
	l := ledger.New(store, owner).WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	})

	acc, err := l.LinkAccount(context.Background(), ledger.LinkParams{
		BankID:         "hdfc",
		AccountNumber:  "5010-0012-3456",
		OpeningBalance: opening,
	})
	require.NoError(t, err)

	return l, store, acc
}

func balance(t *testing.T, store *memory.Store, id uuid.UUID) int64 {
	t.Helper()

	acc, err := store.GetAccount(context.Background(), owner.UserID(), id)
	require.NoError(t, err)

	return acc.Balance
}

func transactions(t *testing.T, store *memory.Store) []*transaction.Transaction {
	t.Helper()

	txs, err := store.ListTransactions(context.Background(), owner.UserID(), transaction.ListFilter{})
	require.NoError(t, err)

	return txs
}

func TestLedger_DepositWithdrawDelete(t *testing.T) {
	ctx := context.Background()
	l, store, acc := setup(t, 100000)

	dep, err := l.Deposit(ctx, acc.ID, 50000)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), dep.Account.Balance)
	assert.Equal(t, int64(150000), balance(t, store, acc.ID))

	entry := dep.Transaction
	assert.Equal(t, "Manual Bank Deposit", entry.Description)
	assert.Equal(t, transaction.TypeIncome, entry.Type)
	assert.Equal(t, transaction.CategoryAdjustment, entry.Category)
	assert.Equal(t, transaction.PaymentBank, entry.PaymentMethod)
	assert.Equal(t, "HDFC Bank", entry.BankName)
	require.NotNil(t, entry.BankAccountID)
	assert.Equal(t, acc.ID, *entry.BankAccountID)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), entry.Date)

	_, err = l.Withdraw(ctx, acc.ID, 200000)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, int64(150000), balance(t, store, acc.ID))
	assert.Len(t, transactions(t, store), 1)

	_, err = l.Delete(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), balance(t, store, acc.ID))
	assert.Empty(t, transactions(t, store))
}

func TestLedger_WithdrawExactBalance(t *testing.T) {
	l, store, acc := setup(t, 100000)

	res, err := l.Withdraw(context.Background(), acc.ID, 100000)
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Account.Balance)
	assert.Equal(t, int64(0), balance(t, store, acc.ID))
	assert.Equal(t, "Manual Bank Withdrawal", res.Transaction.Description)
	assert.Equal(t, transaction.TypeExpense, res.Transaction.Type)
}

func TestLedger_BalanceOverflow(t *testing.T) {
	ctx := context.Background()
	l, store, acc := setup(t, math.MaxInt64-10)

	_, err := l.Deposit(ctx, acc.ID, 100)
	assert.ErrorIs(t, err, ledger.ErrAmountTooLarge)
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = l.Record(ctx, ledger.RecordParams{
		Amount:        100,
		Description:   "Bonus",
		Type:          transaction.TypeIncome,
		PaymentMethod: transaction.PaymentBank,
		BankAccountID: &acc.ID,
	})
	assert.ErrorIs(t, err, ledger.ErrAmountTooLarge)

	assert.Equal(t, int64(math.MaxInt64-10), balance(t, store, acc.ID))
	assert.Empty(t, transactions(t, store))

	res, err := l.Deposit(ctx, acc.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), res.Account.Balance)
}

func TestLedger_FrozenAccount(t *testing.T) {
	ctx := context.Background()
	l, store, acc := setup(t, 100000)

	frozen, err := l.Freeze(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, frozen.Frozen())

	_, err = l.Deposit(ctx, acc.ID, 100)
	assert.ErrorIs(t, err, ledger.ErrAccountFrozen)

	_, err = l.Withdraw(ctx, acc.ID, 100)
	assert.ErrorIs(t, err, ledger.ErrAccountFrozen)

	_, err = l.Record(ctx, ledger.RecordParams{
		Amount:        100,
		Description:   "Coffee",
		Type:          transaction.TypeExpense,
		PaymentMethod: transaction.PaymentBank,
		BankAccountID: &acc.ID,
	})
	assert.ErrorIs(t, err, ledger.ErrAccountFrozen)
	assert.Empty(t, transactions(t, store))

	active, err := l.Unfreeze(ctx, acc.ID)
	require.NoError(t, err)
	assert.False(t, active.Frozen())

	_, err = l.Deposit(ctx, acc.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100100), balance(t, store, acc.ID))
}

func TestLedger_ToggleFreeze(t *testing.T) {
	ctx := context.Background()
	l, _, acc := setup(t, 0)

	got, err := l.ToggleFreeze(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusFrozen, got.Status)

	got, err = l.ToggleFreeze(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusActive, got.Status)
}

func TestLedger_InvalidAmountNeverReachesStore(t *testing.T) {
	for _, amount := range []int64{0, -1, -50000} {
		ctrl := gomock.NewController(t)
		repo := ledger.NewMockRepository(ctrl)

		l := ledger.New(repo, owner)

		_, err := l.Deposit(context.Background(), uuid.New(), amount)
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

		_, err = l.Withdraw(context.Background(), uuid.New(), amount)
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

		_, err = l.Record(context.Background(), ledger.RecordParams{
			Amount:        amount,
			Description:   "Nothing",
			Type:          transaction.TypeIncome,
			PaymentMethod: transaction.PaymentCash,
		})
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

		ctrl.Finish()
	}
}

func TestLedger_UnknownAccount(t *testing.T) {
	l, _, _ := setup(t, 0)

	_, err := l.Deposit(context.Background(), uuid.New(), 100)
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestLedger_RollsBackWhenInsertFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	acc := &account.Account{ID: uuid.New(), UserID: owner.UserID(), BankName: "SBI Bank", Balance: 1000, Status: account.StatusActive}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockAccount(gomock.Any(), owner.UserID(), acc.ID).Return(acc, nil)
	tx.EXPECT().UpdateBalance(gomock.Any(), owner.UserID(), acc.ID, int64(1500)).Return(nil)
	tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
	tx.EXPECT().Rollback().Return(nil)

	_, err := ledger.New(repo, owner).Deposit(context.Background(), acc.ID, 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestLedger_CommitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	acc := &account.Account{ID: uuid.New(), UserID: owner.UserID(), Balance: 1000, Status: account.StatusActive}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockAccount(gomock.Any(), gomock.Any(), acc.ID).Return(acc, nil)
	tx.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), acc.ID, int64(500)).Return(nil)
	tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(errors.New("serialization failure"))
	tx.EXPECT().Rollback().Return(nil)

	_, err := ledger.New(repo, owner).Withdraw(context.Background(), acc.ID, 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit ledger tx")
}

func TestLedger_Record(t *testing.T) {
	ctx := context.Background()

	type testCase struct {
		name        string
		params      func(acc uuid.UUID) ledger.RecordParams
		wantErr     error
		wantBalance int64
		wantLinked  bool
	}

	tests := []testCase{
		{
			name: "BankExpense",
			params: func(acc uuid.UUID) ledger.RecordParams {
				return ledger.RecordParams{Amount: 30000, Description: "Groceries", Type: transaction.TypeExpense, Category: "Food", PaymentMethod: transaction.PaymentBank, BankAccountID: &acc}
			},
			wantBalance: 70000,
			wantLinked:  true,
		},
		{
			name: "BankIncome",
			params: func(acc uuid.UUID) ledger.RecordParams {
				return ledger.RecordParams{Amount: 25000, Description: "Salary", Type: transaction.TypeIncome, PaymentMethod: transaction.PaymentBank, BankAccountID: &acc}
			},
			wantBalance: 125000,
			wantLinked:  true,
		},
		{
			name: "CashLeavesAccountsAlone",
			params: func(acc uuid.UUID) ledger.RecordParams {
				return ledger.RecordParams{Amount: 500, Description: "Chai", Type: transaction.TypeExpense, PaymentMethod: transaction.PaymentCash, BankAccountID: &acc}
			},
			wantBalance: 100000,
		},
		{
			name: "Overdraft",
			params: func(acc uuid.UUID) ledger.RecordParams {
				return ledger.RecordParams{Amount: 100001, Description: "Laptop", Type: transaction.TypeExpense, PaymentMethod: transaction.PaymentBank, BankAccountID: &acc}
			},
			wantErr:     ledger.ErrInsufficientFunds,
			wantBalance: 100000,
		},
		{
			name: "BankWithoutAccount",
			params: func(uuid.UUID) ledger.RecordParams {
				return ledger.RecordParams{Amount: 100, Description: "Rent", Type: transaction.TypeExpense, PaymentMethod: transaction.PaymentBank}
			},
			wantErr:     ledger.ErrInvalidTransaction,
			wantBalance: 100000,
		},
		{
			name: "MissingDescription",
			params: func(uuid.UUID) ledger.RecordParams {
				return ledger.RecordParams{Amount: 100, Description: "  ", Type: transaction.TypeExpense, PaymentMethod: transaction.PaymentCash}
			},
			wantErr:     ledger.ErrInvalidTransaction,
			wantBalance: 100000,
		},
		{
			name: "UnknownType",
			params: func(uuid.UUID) ledger.RecordParams {
				return ledger.RecordParams{Amount: 100, Description: "Refund", Type: "transfer", PaymentMethod: transaction.PaymentCash}
			},
			wantErr:     ledger.ErrInvalidTransaction,
			wantBalance: 100000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, store, acc := setup(t, 100000)

			res, err := l.Record(ctx, tt.params(acc.ID))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, transactions(t, store))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLinked, res.Transaction.BankAccountID != nil)
				assert.Equal(t, tt.wantLinked, res.Account != nil)
			}

			assert.Equal(t, tt.wantBalance, balance(t, store, acc.ID))
		})
	}
}

func TestLedger_RecordDefaults(t *testing.T) {
	l, _, _ := setup(t, 0)

	res, err := l.Record(context.Background(), ledger.RecordParams{
		Amount:        1000,
		Description:   " Lunch ",
		Type:          transaction.TypeExpense,
		PaymentMethod: transaction.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lunch", res.Transaction.Description)
	assert.Equal(t, "Other Expense", res.Transaction.Category)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), res.Transaction.Date)
	assert.Nil(t, res.Transaction.BankAccountID)
	assert.NotEqual(t, uuid.Nil, res.Transaction.ID)
}

func TestLedger_DeleteReversesEffect(t *testing.T) {
	tests := []struct {
		name string
		typ  transaction.Type
	}{
		{name: "Income", typ: transaction.TypeIncome},
		{name: "Expense", typ: transaction.TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l, store, acc := setup(t, 100000)

			res, err := l.Record(ctx, ledger.RecordParams{
				Amount:        40000,
				Description:   "Entry",
				Type:          tt.typ,
				PaymentMethod: transaction.PaymentBank,
				BankAccountID: &acc.ID,
			})
			require.NoError(t, err)
			assert.NotEqual(t, int64(100000), balance(t, store, acc.ID))

			del, err := l.Delete(ctx, res.Transaction.ID)
			require.NoError(t, err)
			require.NotNil(t, del.Account)
			assert.Equal(t, int64(100000), del.Account.Balance)
			assert.Equal(t, int64(100000), balance(t, store, acc.ID))
		})
	}
}

func TestLedger_DeleteIgnoresFrozenAndOverdraft(t *testing.T) {
	ctx := context.Background()
	l, store, acc := setup(t, 0)

	dep, err := l.Deposit(ctx, acc.ID, 50000)
	require.NoError(t, err)

	_, err = l.Withdraw(ctx, acc.ID, 40000)
	require.NoError(t, err)

	_, err = l.Freeze(ctx, acc.ID)
	require.NoError(t, err)

	_, err = l.Delete(ctx, dep.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-40000), balance(t, store, acc.ID))
}

func TestLedger_DeleteAfterUnlink(t *testing.T) {
	ctx := context.Background()
	l, store, acc := setup(t, 100000)

	res, err := l.Deposit(ctx, acc.ID, 500)
	require.NoError(t, err)

	require.NoError(t, l.UnlinkAccount(ctx, acc.ID))
	assert.Len(t, transactions(t, store), 1)

	del, err := l.Delete(ctx, res.Transaction.ID)
	require.NoError(t, err)
	assert.Nil(t, del.Account)
	assert.Empty(t, transactions(t, store))
}

func TestLedger_DeleteUnknown(t *testing.T) {
	l, _, _ := setup(t, 0)

	_, err := l.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestLedger_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	l, store, acc := setup(t, 100000)

	other := ledger.New(store, identity.New(identity.Profile{UID: "user-2"}))

	_, err := other.Deposit(ctx, acc.ID, 100)
	assert.ErrorIs(t, err, account.ErrNotFound)

	res, err := l.Deposit(ctx, acc.ID, 100)
	require.NoError(t, err)

	_, err = other.Delete(ctx, res.Transaction.ID)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestLedger_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("AllRows", func(t *testing.T) {
		l, store, acc := setup(t, 1000)

		res, err := l.Import(ctx, acc.ID, []ledger.RecordParams{
			{Amount: 5000, Description: "Rent", Type: transaction.TypeExpense, Category: "Rent"},
			{Amount: 10000, Description: "Salary", Type: transaction.TypeIncome},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(6000), res.Account.Balance)
		assert.Len(t, res.Transactions, 2)
		assert.Equal(t, int64(6000), balance(t, store, acc.ID))

		for _, tx := range transactions(t, store) {
			assert.Equal(t, transaction.PaymentBank, tx.PaymentMethod)
			assert.Equal(t, "HDFC Bank", tx.BankName)
		}
	})

	t.Run("NetOverdraftStoresNothing", func(t *testing.T) {
		l, store, acc := setup(t, 1000)

		_, err := l.Import(ctx, acc.ID, []ledger.RecordParams{
			{Amount: 5000, Description: "Rent", Type: transaction.TypeExpense},
			{Amount: 1000, Description: "Refund", Type: transaction.TypeIncome},
		})
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
		assert.Empty(t, transactions(t, store))
		assert.Equal(t, int64(1000), balance(t, store, acc.ID))
	})

	t.Run("InvalidRow", func(t *testing.T) {
		l, store, acc := setup(t, 1000)

		_, err := l.Import(ctx, acc.ID, []ledger.RecordParams{
			{Amount: 5, Description: "Ok", Type: transaction.TypeIncome},
			{Amount: 0, Description: "Zero", Type: transaction.TypeIncome},
		})
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
		assert.Contains(t, err.Error(), "row 2")
		assert.Empty(t, transactions(t, store))
	})

	t.Run("NetOverflowStoresNothing", func(t *testing.T) {
		l, store, acc := setup(t, 1000)

		_, err := l.Import(ctx, acc.ID, []ledger.RecordParams{
			{Amount: math.MaxInt64 - 5, Description: "Windfall", Type: transaction.TypeIncome},
			{Amount: 10, Description: "Interest", Type: transaction.TypeIncome},
		})
		assert.ErrorIs(t, err, ledger.ErrAmountTooLarge)
		assert.Contains(t, err.Error(), "row 2")
		assert.Empty(t, transactions(t, store))
		assert.Equal(t, int64(1000), balance(t, store, acc.ID))
	})

	t.Run("Empty", func(t *testing.T) {
		l, _, acc := setup(t, 1000)

		res, err := l.Import(ctx, acc.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, res.Transactions)
	})
}

func TestLedger_LinkAccount(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(memory.New(nil), owner)

	acc, err := l.LinkAccount(ctx, ledger.LinkParams{BankID: "sbi", AccountNumber: "1234 5678 9012", OpeningBalance: -500})
	require.NoError(t, err)
	assert.Equal(t, "State Bank of India", acc.BankName)
	assert.Equal(t, "**** **** **** 9012", acc.AccountNumberMasked)
	assert.Equal(t, int64(0), acc.Balance)
	assert.Equal(t, account.StatusActive, acc.Status)
	assert.Equal(t, owner.UserID(), acc.UserID)

	_, err = l.LinkAccount(ctx, ledger.LinkParams{BankID: "nope", AccountNumber: "12345678"})
	assert.ErrorIs(t, err, ledger.ErrUnknownBank)

	_, err = l.LinkAccount(ctx, ledger.LinkParams{BankID: "sbi", AccountNumber: "12a"})
	assert.ErrorIs(t, err, ledger.ErrInvalidAccountNumber)
}

func TestParseOpeningBalance(t *testing.T) {
	tests := map[string]int64{
		"":          0,
		"abc":       0,
		"-100":      0,
		"0":         0,
		"1,250.50":  125050,
		"₹10,000":   1000000,
		"99.999":    10000,
		"  2500   ": 250000,
	}

	for in, want := range tests {
		assert.Equal(t, want, ledger.ParseOpeningBalance(in), in)
	}
}

func TestLedger_Notifications(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	l := ledger.New(memory.New(rec), owner)

	acc, err := l.LinkAccount(ctx, ledger.LinkParams{BankID: "axis", AccountNumber: "00001111"})
	require.NoError(t, err)
	assert.Equal(t, []datasync.Collection{datasync.Accounts}, rec.changes)

	rec.changes = nil

	_, err = l.Deposit(ctx, acc.ID, 100)
	require.NoError(t, err)
	assert.ElementsMatch(t, []datasync.Collection{datasync.Accounts, datasync.Transactions}, rec.changes)

	rec.changes = nil

	_, err = l.Withdraw(ctx, acc.ID, 1000)
	require.Error(t, err)
	assert.Empty(t, rec.changes)
}

// After any sequence of ledger operations the cached balance equals the
// opening balance plus the signed sum of linked transactions.
func TestLedger_BalanceMatchesProjection(t *testing.T) {
	ctx := context.Background()

	const opening = 200000

	l, store, acc := setup(t, opening)
	other, err := l.LinkAccount(ctx, ledger.LinkParams{BankID: "icici", AccountNumber: "77778888", OpeningBalance: 5000})
	require.NoError(t, err)

	var ids []uuid.UUID

	ops := []func() (*ledger.Result, error){
		func() (*ledger.Result, error) { return l.Deposit(ctx, acc.ID, 12345) },
		func() (*ledger.Result, error) { return l.Withdraw(ctx, acc.ID, 99999) },
		func() (*ledger.Result, error) { return l.Withdraw(ctx, acc.ID, 999999999) },
		func() (*ledger.Result, error) {
			return l.Record(ctx, ledger.RecordParams{Amount: 4321, Description: "Fuel", Type: transaction.TypeExpense, PaymentMethod: transaction.PaymentBank, BankAccountID: &acc.ID})
		},
		func() (*ledger.Result, error) {
			return l.Record(ctx, ledger.RecordParams{Amount: 700, Description: "Cash gift", Type: transaction.TypeIncome, PaymentMethod: transaction.PaymentCash})
		},
		func() (*ledger.Result, error) { return l.Deposit(ctx, other.ID, 1000) },
		func() (*ledger.Result, error) { return l.Deposit(ctx, acc.ID, 1) },
	}

	for _, op := range ops {
		res, err := op()
		if err == nil {
			ids = append(ids, res.Transaction.ID)
		}

		assert.Equal(t, ledger.Project(opening, acc.ID, transactions(t, store)), balance(t, store, acc.ID))
	}

	for _, id := range ids[:3] {
		_, err := l.Delete(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, ledger.Project(opening, acc.ID, transactions(t, store)), balance(t, store, acc.ID))
	}

	assert.Equal(t, ledger.Project(5000, other.ID, transactions(t, store)), balance(t, store, other.ID))
}

func TestValidate(t *testing.T) {
	active := &account.Account{Balance: 1000, Status: account.StatusActive}
	frozen := &account.Account{Balance: 1000, Status: account.StatusFrozen}

	assert.NoError(t, ledger.ValidateDeposit(active, 1))
	assert.ErrorIs(t, ledger.ValidateDeposit(active, 0), ledger.ErrInvalidAmount)
	assert.ErrorIs(t, ledger.ValidateDeposit(frozen, 1), ledger.ErrAccountFrozen)

	assert.NoError(t, ledger.ValidateWithdraw(active, 1000))
	assert.ErrorIs(t, ledger.ValidateWithdraw(active, 1001), ledger.ErrInsufficientFunds)
	assert.ErrorIs(t, ledger.ValidateWithdraw(frozen, 1), ledger.ErrAccountFrozen)
}
