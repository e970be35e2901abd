package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/aapnaincom/internal/export"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

type Handler struct {
	transactions *transaction.Service
	now          func() time.Time
}

func NewHandler(txSvc *transaction.Service) *Handler {
	return &Handler{transactions: txSvc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Get("/digest", h.digest)
}

func filterFrom(r *http.Request) (transaction.ListFilter, error) {
	q := r.URL.Query()

	var filter transaction.ListFilter

	if s := q.Get("type"); s != "" {
		typ := transaction.Type(s)
		if !typ.Valid() {
			return filter, errors.New("type must be income or expense")
		}

		filter.Type = new(typ)
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("start_date must be YYYY-MM-DD")
		}

		filter.StartDate = new(t)
	}

	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("end_date must be YYYY-MM-DD")
		}

		filter.EndDate = new(t)
	}

	return filter, nil
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFrom(r)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}

	userID := authn.MustFrom(r).UserID()

	txs, err := h.transactions.List(r.Context(), userID, filter)
	if err != nil {
		respond.Err(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))

	if err := export.WriteCSV(w, txs); err != nil {
		slog.Error("failed to write export", "user_id", userID, "error", err)
	}
}

func (h *Handler) digest(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFrom(r)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}

	txs, err := h.transactions.List(r.Context(), authn.MustFrom(r).UserID(), filter)
	if err != nil {
		respond.Err(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(export.Digest(txs))); err != nil {
		slog.Error("failed to write digest", "error", err)
	}
}
