package datasync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger/memory"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

var user = identity.New(identity.Profile{UID: "user-1", DisplayName: "Asha Rao"})

func next(t *testing.T, sub *datasync.Subscription) datasync.Snapshot {
	t.Helper()

	select {
	case snap, ok := <-sub.Snapshots():
		require.True(t, ok, "subscription closed")
		return snap
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no snapshot")
	}

	return datasync.Snapshot{}
}

func TestSubscription_SnapshotOnOpenAndChange(t *testing.T) {
	ctx := context.Background()
	hub := datasync.NewHub()
	store := memory.New(hub)
	l := ledger.New(store, user)

	accounts := datasync.Subscribe(ctx, hub, store, user.UserID(), datasync.Accounts)
	defer accounts.Close()

	txs := datasync.Subscribe(ctx, hub, store, user.UserID(), datasync.Transactions)
	defer txs.Close()

	snap := next(t, accounts)
	assert.Equal(t, datasync.Accounts, snap.Collection)
	assert.NoError(t, snap.Err)
	assert.Empty(t, snap.Accounts)
	assert.Empty(t, next(t, txs).Transactions)

	acc, err := l.LinkAccount(ctx, ledger.LinkParams{BankID: "kotak", AccountNumber: "11112222", OpeningBalance: 1000})
	require.NoError(t, err)

	snap = next(t, accounts)
	require.Len(t, snap.Accounts, 1)
	assert.Equal(t, int64(1000), snap.Accounts[0].Balance)

	_, err = l.Deposit(ctx, acc.ID, 500)
	require.NoError(t, err)

	snap = next(t, accounts)
	require.Len(t, snap.Accounts, 1)
	assert.Equal(t, int64(1500), snap.Accounts[0].Balance)

	tsnap := next(t, txs)
	assert.Equal(t, datasync.Transactions, tsnap.Collection)
	require.Len(t, tsnap.Transactions, 1)
	assert.Equal(t, "Manual Bank Deposit", tsnap.Transactions[0].Description)
}

func TestSubscription_OtherUsersChangesAreInvisible(t *testing.T) {
	ctx := context.Background()
	hub := datasync.NewHub()
	store := memory.New(hub)

	sub := datasync.Subscribe(ctx, hub, store, user.UserID(), datasync.Accounts)
	defer sub.Close()

	next(t, sub)

	other := ledger.New(store, identity.New(identity.Profile{UID: "user-2"}))
	_, err := other.LinkAccount(ctx, ledger.LinkParams{BankID: "pnb", AccountNumber: "99990000"})
	require.NoError(t, err)

	select {
	case snap := <-sub.Snapshots():
		t.Fatalf("unexpected snapshot: %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscription_CloseReleasesWatcher(t *testing.T) {
	hub := datasync.NewHub()
	store := memory.New(hub)

	sub := datasync.Subscribe(context.Background(), hub, store, user.UserID(), datasync.Transactions)
	assert.Equal(t, 1, hub.Watching())

	sub.Close()
	assert.Equal(t, 0, hub.Watching())

	_, ok := <-sub.Snapshots()
	assert.False(t, ok)
}

type failingSource struct {
	err error
}

func (f failingSource) ListTransactions(context.Context, string, transaction.ListFilter) ([]*transaction.Transaction, error) {
	return nil, f.err
}

func (f failingSource) ListAccounts(context.Context, string) ([]*account.Account, error) {
	return nil, f.err
}

func TestSubscription_Error(t *testing.T) {
	hub := datasync.NewHub()
	boom := errors.New("connection refused")

	sub := datasync.Subscribe(context.Background(), hub, failingSource{err: boom}, user.UserID(), datasync.Transactions)
	defer sub.Close()

	snap := next(t, sub)
	assert.ErrorIs(t, snap.Err, boom)
	assert.Nil(t, snap.Transactions)
}
