package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/resource"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/statement"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc *statement.Service
	ledger    ledger.Repository
}

func NewHandler(importSvc *statement.Service, ledgerRepo ledger.Repository) *Handler {
	return &Handler{importSvc: importSvc, ledger: ledgerRepo}
}

// Routes expects to be mounted under a path carrying the {id} of the account
// the statement belongs to.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported     int                    `json:"imported"`
	Account      *resource.Account      `json:"account,omitempty"`
	Transactions []resource.Transaction `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, errors.New("invalid id"))
		return
	}

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.BadRequest(w, errors.New("failed to parse form: "+err.Error()))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, errors.New("missing file"))
		return
	}
	defer file.Close()

	res, err := h.importSvc.Import(r.Context(), ledger.New(h.ledger, authn.MustFrom(r)), accountID, file)
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := importResponse{
		Imported:     len(res.Transactions),
		Transactions: resource.FromTransactions(res.Transactions),
	}

	if res.Account != nil {
		resp.Account = new(resource.FromAccount(res.Account))
	}

	respond.JSON(w, http.StatusCreated, resp)
}
