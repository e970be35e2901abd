package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("bank account not found")

// Status is the operational state of a linked account.
type Status string

const (
	StatusActive Status = "active"
	StatusFrozen Status = "frozen"
)

// Account is a linked bank-account card. Balance is a cached projection of
// the opening balance plus every transaction settled through the account.
type Account struct {
	ID                  uuid.UUID
	UserID              string
	BankID              string
	BankName            string
	AccountNumberMasked string
	Balance             int64 // Balance in paise
	Status              Status
	CreatedAt           time.Time
}

func (a *Account) Frozen() bool {
	return a.Status == StatusFrozen
}

// Mask renders the last four digits of an account number behind a fixed mask.
func Mask(lastFour string) string {
	return "**** **** **** " + lastFour
}

// LastFour strips everything but digits from number and returns its last four
// digits. ok is false when fewer than four digits remain.
func LastFour(number string) (string, bool) {
	var b strings.Builder

	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 4 {
		return "", false
	}

	return digits[len(digits)-4:], true
}
