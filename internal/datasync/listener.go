package datasync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

// Listener feeds a Hub from PostgreSQL LISTEN/NOTIFY. Stores publish with
// pg_notify inside their transaction, so notifications arrive only after commit.
type Listener struct {
	connString string
	channel    string
	hub        *Hub
	backoff    time.Duration
}

func NewListener(connString, channel string, hub *Hub) *Listener {
	return &Listener{
		connString: connString,
		channel:    channel,
		hub:        hub,
		backoff:    2 * time.Second,
	}
}

// Run listens until ctx is cancelled, reconnecting after failures.
func (l *Listener) Run(ctx context.Context) {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}

		slog.Error("sync listener disconnected", "channel", l.channel, "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.backoff):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return fmt.Errorf("connecting listener: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listening on %s: %w", l.channel, err)
	}

	slog.Info("sync listener connected", "channel", l.channel)

	// Changes committed while disconnected were never delivered.
	l.hub.Broadcast()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("waiting for notification: %w", err)
		}

		c, userID, ok := ParsePayload(n.Payload)
		if !ok {
			slog.Warn("ignoring malformed sync payload", "payload", n.Payload)
			continue
		}

		l.hub.Notify(userID, c)
	}
}
