// Package datasync delivers live, full-collection snapshots of a user's
// transactions and bank accounts.
package datasync

import (
	"errors"
	"strings"
)

// Collection names a live collection.
type Collection string

const (
	Transactions Collection = "transactions"
	Accounts     Collection = "bankAccounts"
)

// ErrPermissionDenied marks subscription failures caused by authorization
// rules. They are logged but never shown to the user.
var ErrPermissionDenied = errors.New("permission denied")

// BannerSyncRestricted is shown when a subscription fails for any other reason.
const BannerSyncRestricted = "Database sync restricted. Check rules."

// Notifier is told when a user's collection changed.
type Notifier interface {
	Notify(userID string, c Collection)
}

// Payload encodes a change notification as sent over pg_notify.
func Payload(c Collection, userID string) string {
	return string(c) + ":" + userID
}

// ParsePayload is the inverse of Payload.
func ParsePayload(s string) (Collection, string, bool) {
	c, userID, ok := strings.Cut(s, ":")
	if !ok || userID == "" {
		return "", "", false
	}

	switch Collection(c) {
	case Transactions, Accounts:
		return Collection(c), userID, true
	}

	return "", "", false
}
