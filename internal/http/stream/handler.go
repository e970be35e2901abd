// Package stream sends live collection snapshots to clients over WebSocket.
package stream

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/resource"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Frame is one message on the stream. Every frame carries the full
// collection; clients replace what they held.
type Frame struct {
	Collection   datasync.Collection    `json:"collection"`
	Transactions []resource.Transaction `json:"transactions,omitzero"`
	Accounts     []resource.Account     `json:"accounts,omitzero"`
	Error        string                 `json:"error,omitempty"`
}

type Handler struct {
	hub      *datasync.Hub
	src      datasync.Source
	upgrader websocket.Upgrader
}

// NewHandler accepts upgrades from the given browser origins. Requests
// without an Origin header are always accepted.
func NewHandler(hub *datasync.Hub, src datasync.Source, allowedOrigins []string) *Handler {
	return &Handler{
		hub: hub,
		src: src,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin) {
					return true
				}

				u, err := url.Parse(origin)

				return err == nil && u.Host == r.Host
			},
		},
	}
}

// Stream subscribes the caller to both collections and forwards each
// snapshot until the client goes away.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	owner := authn.MustFrom(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go readPump(conn, cancel)

	txs := datasync.Subscribe(ctx, h.hub, h.src, owner.UserID(), datasync.Transactions)
	defer txs.Close()

	accs := datasync.Subscribe(ctx, h.hub, h.src, owner.UserID(), datasync.Accounts)
	defer accs.Close()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	last := map[datasync.Collection]uint64{}

	for {
		var snap datasync.Snapshot

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}

			continue
		case s, ok := <-txs.Snapshots():
			if !ok {
				return
			}

			snap = s
		case s, ok := <-accs.Snapshots():
			if !ok {
				return
			}

			snap = s
		}

		frame, ok := toFrame(owner.UserID(), snap)
		if !ok {
			continue
		}

		// Several notifications can resolve to the same state.
		sum, err := hashstructure.Hash(frame, hashstructure.FormatV2, nil)
		if err == nil {
			if prev, seen := last[frame.Collection]; seen && prev == sum {
				continue
			}

			last[frame.Collection] = sum
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

		if err := conn.WriteJSON(frame); err != nil {
			slog.Debug("sync client gone", "user_id", owner.UserID(), "error", err)
			return
		}
	}
}

// toFrame renders snap. Permission failures are logged and dropped; other
// failures become an error frame carrying the sync banner.
func toFrame(userID string, snap datasync.Snapshot) (Frame, bool) {
	f := Frame{Collection: snap.Collection}

	if snap.Err != nil {
		if errors.Is(snap.Err, datasync.ErrPermissionDenied) {
			slog.Warn("sync permission denied", "user_id", userID, "collection", snap.Collection, "error", snap.Err)
			return f, false
		}

		slog.Error("sync subscription failed", "user_id", userID, "collection", snap.Collection, "error", snap.Err)
		f.Error = datasync.BannerSyncRestricted

		return f, true
	}

	switch snap.Collection {
	case datasync.Transactions:
		f.Transactions = resource.FromTransactions(snap.Transactions)
	case datasync.Accounts:
		f.Accounts = resource.FromAccounts(snap.Accounts)
	}

	return f, true
}

// readPump drains client frames so control messages are processed, and
// cancels the stream once the connection drops.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
