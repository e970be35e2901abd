package view

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// FormatSigned renders t's amount with a leading + for income and - for expense.
func FormatSigned(t *transaction.Transaction) string {
	if t.Type == transaction.TypeIncome {
		return "+" + money.Format(t.Amount)
	}

	return "-" + money.Format(t.Amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatAgo describes when t happened relative to now, e.g. "3 days ago".
func FormatAgo(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatCount pluralises noun for n, e.g. "1 transaction", "1,204 transactions".
func FormatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}

	return humanize.Comma(int64(n)) + " " + noun + "s"
}
