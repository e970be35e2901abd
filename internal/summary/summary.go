// Package summary derives the dashboard aggregates from a list of transactions.
package summary

import (
	"cmp"
	"slices"

	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// Summary holds the headline figures of a ledger. Amounts are in paise.
type Summary struct {
	TotalIncome    int64   `json:"total_income"`
	TotalExpense   int64   `json:"total_expense"`
	Balance        int64   `json:"balance"`
	SavingsRate    float64 `json:"savings_rate"`
	AverageExpense int64   `json:"average_expense"`
	Count          int     `json:"count"`
}

func Compute(txs []*transaction.Transaction) Summary {
	var s Summary

	expenses := 0

	for _, t := range txs {
		switch t.Type {
		case transaction.TypeIncome:
			s.TotalIncome += t.Amount
		case transaction.TypeExpense:
			s.TotalExpense += t.Amount
			expenses++
		}
	}

	s.Count = len(txs)
	s.Balance = s.TotalIncome - s.TotalExpense

	if s.TotalIncome > 0 {
		rate := float64(s.Balance) / float64(s.TotalIncome) * 100
		s.SavingsRate = min(max(rate, 0), 100)
	}

	if expenses > 0 {
		s.AverageExpense = s.TotalExpense / int64(expenses)
	}

	return s
}

// Surplus reports whether income exceeds spending.
func (s Summary) Surplus() bool {
	return s.Balance > 0
}

// Verdict is the one-line health message for the balance.
func (s Summary) Verdict() string {
	if s.Surplus() {
		return "Surplus Detected: Keep Investing"
	}

	return "Deficit Warning: Audit Your Spends"
}

type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int    `json:"count"`
}

// ByCategory totals transactions of typ per category, largest first.
// An empty typ includes both types.
func ByCategory(txs []*transaction.Transaction, typ transaction.Type) []CategoryTotal {
	idx := make(map[string]int)

	var out []CategoryTotal

	for _, t := range txs {
		if typ != "" && t.Type != typ {
			continue
		}

		i, ok := idx[t.Category]
		if !ok {
			i = len(out)
			idx[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category})
		}

		out[i].Total += t.Amount
		out[i].Count++
	}

	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return out
}
