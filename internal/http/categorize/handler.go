package categorize

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/aapnaincom/internal/categorize"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

type Handler struct {
	svc *categorize.Service
}

func NewHandler(svc *categorize.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/mappings", h.learn)
}

type suggestResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Learned     bool   `json:"learned"`
}

// suggest returns the learned category for a description, falling back to
// the default category of the requested type when nothing was learned.
func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		respond.BadRequest(w, errors.New("description query parameter is required"))
		return
	}

	typ := transaction.Type(r.URL.Query().Get("type"))
	if typ == "" {
		typ = transaction.TypeExpense
	}

	if !typ.Valid() {
		respond.BadRequest(w, errors.New("type must be income or expense"))
		return
	}

	userID := authn.MustFrom(r).UserID()

	learned, err := h.svc.Suggest(r.Context(), userID, desc)
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := suggestResponse{Description: desc, Category: learned, Learned: learned != ""}
	if !resp.Learned {
		resp.Category = transaction.DefaultCategory(typ)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	RawPattern string `json:"raw_pattern" validate:"required"`
	Category   string `json:"category" validate:"required"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	if err := h.svc.Learn(r.Context(), authn.MustFrom(r).UserID(), req.RawPattern, req.Category); err != nil {
		respond.Err(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
