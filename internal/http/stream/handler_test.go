package stream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger/memory"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

var owner = identity.New(identity.Profile{UID: "user-1", DisplayName: "Asha Rao"})

func dial(t *testing.T, hub *datasync.Hub, store *memory.Store) *websocket.Conn {
	t.Helper()

	h := NewHandler(hub, store, nil)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Stream(w, r.WithContext(authn.WithIdentity(r.Context(), owner)))
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func read(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var f Frame
	require.NoError(t, conn.ReadJSON(&f))

	return f
}

func TestStream_SnapshotsAndUpdates(t *testing.T) {
	ctx := context.Background()
	hub := datasync.NewHub()
	store := memory.New(hub)
	l := ledger.New(store, owner)

	acc, err := l.LinkAccount(ctx, ledger.LinkParams{BankID: "sbi", AccountNumber: "1234 5678", OpeningBalance: 10000})
	require.NoError(t, err)

	conn := dial(t, hub, store)

	initial := map[datasync.Collection]Frame{}
	for range 2 {
		f := read(t, conn)
		initial[f.Collection] = f
	}

	require.Len(t, initial[datasync.Accounts].Accounts, 1)
	assert.Equal(t, int64(10000), initial[datasync.Accounts].Accounts[0].Balance)
	assert.NotNil(t, initial[datasync.Transactions].Transactions)
	assert.Empty(t, initial[datasync.Transactions].Transactions)

	_, err = l.Deposit(ctx, acc.ID, 5000)
	require.NoError(t, err)

	var accounts, txs *Frame

	for accounts == nil || txs == nil {
		f := read(t, conn)

		switch f.Collection {
		case datasync.Accounts:
			accounts = &f
		case datasync.Transactions:
			txs = &f
		}
	}

	assert.Equal(t, int64(15000), accounts.Accounts[0].Balance)
	require.Len(t, txs.Transactions, 1)
	assert.Equal(t, transaction.CategoryAdjustment, txs.Transactions[0].Category)
}

func TestStream_SkipsUnchangedSnapshots(t *testing.T) {
	ctx := context.Background()
	hub := datasync.NewHub()
	store := memory.New(hub)

	conn := dial(t, hub, store)

	read(t, conn)
	read(t, conn)

	// Nothing changed, so the reload must not reach the client.
	hub.Notify(owner.UserID(), datasync.Accounts)

	_, err := ledger.New(store, owner).Record(ctx, ledger.RecordParams{
		Amount:        2500,
		Description:   "Chai",
		Type:          transaction.TypeExpense,
		PaymentMethod: transaction.PaymentCash,
	})
	require.NoError(t, err)

	f := read(t, conn)
	assert.Equal(t, datasync.Transactions, f.Collection)
	require.Len(t, f.Transactions, 1)
	assert.Equal(t, "Chai", f.Transactions[0].Description)
}

func TestStream_ReleasesWatchersOnDisconnect(t *testing.T) {
	hub := datasync.NewHub()
	store := memory.New(hub)

	conn := dial(t, hub, store)
	read(t, conn)
	read(t, conn)

	assert.Equal(t, 2, hub.Watching())

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Watching() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestToFrame(t *testing.T) {
	tests := []struct {
		name     string
		snap     datasync.Snapshot
		wantSent bool
		wantErr  string
	}{
		{
			name:     "accounts",
			snap:     datasync.Snapshot{Collection: datasync.Accounts},
			wantSent: true,
		},
		{
			name:     "generic failure shows banner",
			snap:     datasync.Snapshot{Collection: datasync.Transactions, Err: errors.New("connection reset")},
			wantSent: true,
			wantErr:  datasync.BannerSyncRestricted,
		},
		{
			name:     "permission failure is dropped",
			snap:     datasync.Snapshot{Collection: datasync.Transactions, Err: datasync.ErrPermissionDenied},
			wantSent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, sent := toFrame("user-1", tt.snap)
			assert.Equal(t, tt.wantSent, sent)
			assert.Equal(t, tt.snap.Collection, f.Collection)
			assert.Equal(t, tt.wantErr, f.Error)
		})
	}
}
