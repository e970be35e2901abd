// Package catalog serves the static lists clients build their forms from.
package catalog

import (
	"net/http"

	"github.com/MrJamesThe3rd/aapnaincom/internal/bank"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Banks(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, bank.Supported())
}

type categoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, categoriesResponse{
		Income:  transaction.IncomeCategories,
		Expense: transaction.ExpenseCategories,
	})
}
