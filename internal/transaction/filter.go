package transaction

import (
	"slices"
	"strings"
)

// SortRecent orders transactions by creation time, most recent first.
// Equal timestamps keep their delivered order.
func SortRecent(txs []*Transaction) {
	slices.SortStableFunc(txs, func(a, b *Transaction) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Filter returns the transactions whose description, category or bank name
// contain search (case-insensitive) and whose type matches typ. An empty typ
// matches every type.
func Filter(txs []*Transaction, search string, typ Type) []*Transaction {
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]*Transaction, 0, len(txs))

	for _, t := range txs {
		if typ != "" && t.Type != typ {
			continue
		}

		if term != "" &&
			!strings.Contains(strings.ToLower(t.Description), term) &&
			!strings.Contains(strings.ToLower(t.Category), term) &&
			!strings.Contains(strings.ToLower(t.BankName), term) {
			continue
		}

		out = append(out, t)
	}

	return out
}

// Matches reports whether t satisfies every set field of f.
func (f ListFilter) Matches(t *Transaction) bool {
	if f.Type != nil && t.Type != *f.Type {
		return false
	}

	if f.BankAccountID != nil && !t.LinkedTo(*f.BankAccountID) {
		return false
	}

	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}

	return true
}
