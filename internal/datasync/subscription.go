package datasync

import (
	"context"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// Source loads a user's full collections.
type Source interface {
	ListTransactions(ctx context.Context, userID string, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	ListAccounts(ctx context.Context, userID string) ([]*account.Account, error)
}

type transactionLister interface {
	ListTransactions(ctx context.Context, userID string, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type accountLister interface {
	ListAccounts(ctx context.Context, userID string) ([]*account.Account, error)
}

type joined struct {
	transactionLister
	accountLister
}

// Join builds a Source from separate transaction and account stores.
func Join(txs transactionLister, accs accountLister) Source {
	return joined{transactionLister: txs, accountLister: accs}
}

// Snapshot is a full copy of one collection. It replaces whatever the
// receiver held before.
type Snapshot struct {
	Collection   Collection
	Transactions []*transaction.Transaction
	Accounts     []*account.Account
	Err          error
}

// Subscription is a stream of snapshots for one user's collection: one on
// open, then one after every change. Close releases it; subscribing again
// restarts the stream.
type Subscription struct {
	snapshots chan Snapshot
	cancel    context.CancelFunc
	done      chan struct{}
}

func Subscribe(ctx context.Context, hub *Hub, src Source, userID string, c Collection) *Subscription {
	ctx, cancel := context.WithCancel(ctx)

	s := &Subscription{
		snapshots: make(chan Snapshot),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	// Watch before the first load so no change slips between the two.
	changed, unwatch := hub.watch(userID, c)

	go func() {
		defer close(s.done)
		defer close(s.snapshots)
		defer unwatch()

		for {
			snap := load(ctx, src, userID, c)

			select {
			case s.snapshots <- snap:
			case <-ctx.Done():
				return
			}

			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()

	return s
}

func (s *Subscription) Snapshots() <-chan Snapshot {
	return s.snapshots
}

// Close stops the stream and waits for it to release its watcher.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

func load(ctx context.Context, src Source, userID string, c Collection) Snapshot {
	snap := Snapshot{Collection: c}

	switch c {
	case Transactions:
		txs, err := src.ListTransactions(ctx, userID, transaction.ListFilter{})
		if err != nil {
			snap.Err = err
			return snap
		}

		transaction.SortRecent(txs)
		snap.Transactions = txs
	case Accounts:
		snap.Accounts, snap.Err = src.ListAccounts(ctx, userID)
	}

	return snap
}
