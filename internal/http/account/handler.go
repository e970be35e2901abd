package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/resource"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
)

type Handler struct {
	svc    *account.Service
	ledger ledger.Repository
}

func NewHandler(svc *account.Service, ledgerRepo ledger.Repository) *Handler {
	return &Handler{svc: svc, ledger: ledgerRepo}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.link)
	r.Delete("/{id}", h.unlink)
	r.Post("/{id}/deposit", h.deposit)
	r.Post("/{id}/withdraw", h.withdraw)
	r.Post("/{id}/freeze", h.freeze)
	r.Post("/{id}/unfreeze", h.unfreeze)
}

type listResponse struct {
	Accounts     []resource.Account `json:"accounts"`
	TotalBalance int64              `json:"total_balance"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accs, err := h.svc.List(r.Context(), authn.MustFrom(r).UserID())
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Accounts:     resource.FromAccounts(accs),
		TotalBalance: account.TotalBalance(accs),
	})
}

type linkRequest struct {
	BankID         string `json:"bank_id" validate:"required"`
	AccountNumber  string `json:"account_number" validate:"required"`
	OpeningBalance string `json:"opening_balance"`
}

func (h *Handler) link(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	acc, err := ledger.New(h.ledger, authn.MustFrom(r)).LinkAccount(r.Context(), ledger.LinkParams{
		BankID:         req.BankID,
		AccountNumber:  req.AccountNumber,
		OpeningBalance: ledger.ParseOpeningBalance(req.OpeningBalance),
	})
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.FromAccount(acc))
}

func (h *Handler) unlink(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	if err := ledger.New(h.ledger, authn.MustFrom(r)).UnlinkAccount(r.Context(), id); err != nil {
		respond.Err(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type amountRequest struct {
	Amount string `json:"amount"`
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, (*ledger.Ledger).Deposit)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, (*ledger.Ledger).Withdraw)
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request, op func(*ledger.Ledger, context.Context, uuid.UUID, int64) (*ledger.Result, error)) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req amountRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		respond.Err(w, ledger.ErrInvalidAmount)
		return
	}

	res, err := op(ledger.New(h.ledger, authn.MustFrom(r)), r.Context(), id, amount)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.FromResult(res))
}

func (h *Handler) freeze(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, (*ledger.Ledger).Freeze)
}

func (h *Handler) unfreeze(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, (*ledger.Ledger).Unfreeze)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, op func(*ledger.Ledger, context.Context, uuid.UUID) (*account.Account, error)) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	acc, err := op(ledger.New(h.ledger, authn.MustFrom(r)), r.Context(), id)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.FromAccount(acc))
}

func accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, errors.New("invalid id"))
		return uuid.Nil, false
	}

	return id, true
}
