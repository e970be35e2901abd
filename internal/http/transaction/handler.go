package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/categorize"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/resource"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

type Handler struct {
	svc         *transaction.Service
	ledger      ledger.Repository
	categorizer *categorize.Service
}

func NewHandler(svc *transaction.Service, ledgerRepo ledger.Repository, categorizer *categorize.Service) *Handler {
	return &Handler{svc: svc, ledger: ledgerRepo, categorizer: categorizer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Amount        string                    `json:"amount"`
	Type          transaction.Type          `json:"type" validate:"required,oneof=income expense"`
	Category      string                    `json:"category"`
	Description   string                    `json:"description" validate:"required"`
	Date          string                    `json:"date"`
	PaymentMethod transaction.PaymentMethod `json:"payment_method" validate:"required,oneof=cash bank"`
	BankAccountID *uuid.UUID                `json:"bank_account_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		respond.Err(w, ledger.ErrInvalidAmount)
		return
	}

	var date time.Time
	if req.Date != "" {
		if date, err = time.Parse(time.DateOnly, req.Date); err != nil {
			respond.BadRequest(w, errors.New("date must be YYYY-MM-DD"))
			return
		}
	}

	owner := authn.MustFrom(r)

	category := req.Category
	if category == "" {
		if category, err = h.categorizer.Categorize(r.Context(), owner.UserID(), req.Description, req.Type); err != nil {
			respond.Err(w, err)
			return
		}
	}

	res, err := ledger.New(h.ledger, owner).Record(r.Context(), ledger.RecordParams{
		Amount:        amount,
		Date:          date,
		Description:   req.Description,
		Type:          req.Type,
		Category:      category,
		PaymentMethod: req.PaymentMethod,
		BankAccountID: req.BankAccountID,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.FromResult(res))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := transaction.ListFilter{}

	var typ transaction.Type
	if s := q.Get("type"); s != "" {
		typ = transaction.Type(s)
		if !typ.Valid() {
			respond.BadRequest(w, errors.New("type must be income or expense"))
			return
		}

		filter.Type = new(typ)
	}

	if s := q.Get("account_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.BadRequest(w, errors.New("invalid account_id"))
			return
		}

		filter.BankAccountID = new(id)
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	txs, err := h.svc.List(r.Context(), authn.MustFrom(r).UserID(), filter)
	if err != nil {
		respond.Err(w, err)
		return
	}

	if search := q.Get("q"); search != "" {
		txs = transaction.Filter(txs, search, typ)
	}

	respond.JSON(w, http.StatusOK, resource.FromTransactions(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, errors.New("invalid id"))
		return
	}

	tx, err := h.svc.Get(r.Context(), authn.MustFrom(r).UserID(), id)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.FromTransaction(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, errors.New("invalid id"))
		return
	}

	res, err := ledger.New(h.ledger, authn.MustFrom(r)).Delete(r.Context(), id)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.FromResult(res))
}
