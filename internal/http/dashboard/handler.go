// Package dashboard serves the aggregate view of a ledger, for signed-in users
// and for the demo.
package dashboard

import (
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/demo"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/resource"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/summary"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

type Handler struct {
	transactions *transaction.Service
	accounts     *account.Service
	now          func() time.Time
}

func NewHandler(txSvc *transaction.Service, accSvc *account.Service) *Handler {
	return &Handler{transactions: txSvc, accounts: accSvc, now: time.Now}
}

type summaryResponse struct {
	summary.Summary
	Surplus      bool                    `json:"surplus"`
	Verdict      string                  `json:"verdict"`
	TotalBalance int64                   `json:"total_balance"`
	Income       []summary.CategoryTotal `json:"income_by_category"`
	Expense      []summary.CategoryTotal `json:"expense_by_category"`
}

func toSummary(txs []*transaction.Transaction, accs []*account.Account) summaryResponse {
	s := summary.Compute(txs)

	return summaryResponse{
		Summary:      s,
		Surplus:      s.Surplus(),
		Verdict:      s.Verdict(),
		TotalBalance: account.TotalBalance(accs),
		Income:       summary.ByCategory(txs, transaction.TypeIncome),
		Expense:      summary.ByCategory(txs, transaction.TypeExpense),
	}
}

// Summary reports the aggregates over every transaction of the caller.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := authn.MustFrom(r).UserID()

	txs, err := h.transactions.List(r.Context(), userID, transaction.ListFilter{})
	if err != nil {
		respond.Err(w, err)
		return
	}

	accs, err := h.accounts.List(r.Context(), userID)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummary(txs, accs))
}

type demoResponse struct {
	User         identity.Profile       `json:"user"`
	Transactions []resource.Transaction `json:"transactions"`
	Accounts     []resource.Account     `json:"accounts"`
	Summary      summaryResponse        `json:"summary"`
}

// Demo serves the fixed sample ledger. Nothing is read from the store.
func (h *Handler) Demo(w http.ResponseWriter, _ *http.Request) {
	guest := identity.Demo()
	now := h.now()

	txs := demo.Transactions(guest.UserID(), now)
	accs := demo.Accounts(guest.UserID(), now)

	respond.JSON(w, http.StatusOK, demoResponse{
		User:         guest.Profile,
		Transactions: resource.FromTransactions(txs),
		Accounts:     resource.FromAccounts(accs),
		Summary:      toSummary(txs, accs),
	})
}
