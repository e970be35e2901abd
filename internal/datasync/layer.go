package datasync

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/demo"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/session"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// Layer holds the synced collections for the current identity. Real
// identities get two live subscriptions; demo identities get the fixture
// snapshot and none.
type Layer struct {
	hub *Hub
	src Source
	now func() time.Time

	// switchMu serialises Switch so teardown and setup never interleave.
	switchMu sync.Mutex

	mu       sync.RWMutex
	owner    *identity.Identity
	txs      []*transaction.Transaction
	accounts []*account.Account
	banner   string
	subs     []*Subscription
	pumps    sync.WaitGroup

	updates chan struct{}
}

func NewLayer(hub *Hub, src Source) *Layer {
	return &Layer{
		hub:     hub,
		src:     src,
		now:     time.Now,
		updates: make(chan struct{}, 1),
	}
}

// Switch releases the current subscriptions and, if owner is not nil,
// establishes the new ones.
func (l *Layer) Switch(owner *identity.Identity) {
	l.switchMu.Lock()
	defer l.switchMu.Unlock()

	l.mu.Lock()
	old := l.subs
	l.subs = nil
	l.mu.Unlock()

	for _, s := range old {
		s.Close()
	}

	l.pumps.Wait()

	l.mu.Lock()
	l.owner = owner
	l.txs = nil
	l.accounts = nil
	l.banner = ""

	switch {
	case owner == nil:
	case owner.Demo:
		now := l.now()
		l.txs = demo.Transactions(owner.UserID(), now)
		l.accounts = demo.Accounts(owner.UserID(), now)
	default:
		txSub := Subscribe(context.Background(), l.hub, l.src, owner.UserID(), Transactions)
		accSub := Subscribe(context.Background(), l.hub, l.src, owner.UserID(), Accounts)
		l.subs = []*Subscription{txSub, accSub}

		l.pumps.Add(len(l.subs))

		for _, s := range l.subs {
			go l.pump(s)
		}
	}
	l.mu.Unlock()

	l.changed()
}

// Follow drives Switch from session changes until states is closed or ctx ends.
func (l *Layer) Follow(ctx context.Context, states <-chan session.State) {
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-states:
			if !ok {
				return
			}

			l.Switch(st.Identity)
		}
	}
}

// Close releases every subscription.
func (l *Layer) Close() {
	l.Switch(nil)
}

func (l *Layer) pump(s *Subscription) {
	defer l.pumps.Done()

	for snap := range s.Snapshots() {
		l.apply(snap)
	}
}

func (l *Layer) apply(snap Snapshot) {
	if snap.Err != nil {
		if errors.Is(snap.Err, context.Canceled) {
			return
		}

		slog.Error("sync error", "collection", snap.Collection, "error", snap.Err)

		if !errors.Is(snap.Err, ErrPermissionDenied) {
			l.mu.Lock()
			l.banner = BannerSyncRestricted
			l.mu.Unlock()
			l.changed()
		}

		return
	}

	l.mu.Lock()
	switch snap.Collection {
	case Transactions:
		l.txs = snap.Transactions
	case Accounts:
		l.accounts = snap.Accounts
	}
	l.mu.Unlock()

	l.changed()
}

func (l *Layer) changed() {
	select {
	case l.updates <- struct{}{}:
	default:
	}
}

// Updates signals after any collection, banner or identity change.
func (l *Layer) Updates() <-chan struct{} {
	return l.updates
}

func (l *Layer) Owner() *identity.Identity {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.owner
}

// Transactions returns the synced transactions, most recent first.
func (l *Layer) Transactions() []*transaction.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.txs)
}

func (l *Layer) Accounts() []*account.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.accounts)
}

// Banner is the user-facing sync error, empty when healthy.
func (l *Layer) Banner() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.banner
}

// Subscriptions is the number of open live subscriptions.
func (l *Layer) Subscriptions() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.subs)
}
