// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/auth"
	"github.com/MrJamesThe3rd/aapnaincom/internal/categorize"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/statement"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// Error codes for non-auth failures.
const (
	CodeBadRequest        = "bad-request"
	CodeNotFound          = "not-found"
	CodeInvalidAmount     = "ledger/invalid-amount"
	CodeInsufficientFunds = "ledger/insufficient-funds"
	CodeAccountFrozen     = "ledger/account-frozen"
	CodeUnknownBank       = "ledger/unknown-bank"
	CodeInvalidAccount    = "ledger/invalid-account-number"
	CodeInvalidEntry      = "ledger/invalid-transaction"
	CodeUnknownFormat     = "import/unknown-format"
	CodeInternal          = "internal"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Fail(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Code: code, Message: message})
}

// Decode reads a JSON body into dst and runs its `validate` tags.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}

			return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
		}

		return err
	}

	return nil
}

// BadRequest reports a malformed request.
func BadRequest(w http.ResponseWriter, err error) {
	Fail(w, http.StatusBadRequest, CodeBadRequest, err.Error())
}

// Err maps err to a status and code. Unknown errors are logged and hidden.
func Err(w http.ResponseWriter, err error) {
	var ae *auth.Error
	if errors.As(err, &ae) {
		JSON(w, authStatus(ae.Code), ae)
		return
	}

	status, code := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		Fail(w, status, code, "Something went wrong. Please try again.")

		return
	}

	Fail(w, status, code, message(err))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, account.ErrNotFound), errors.Is(err, transaction.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, ledger.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, CodeInvalidAmount
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusConflict, CodeInsufficientFunds
	case errors.Is(err, ledger.ErrAccountFrozen):
		return http.StatusConflict, CodeAccountFrozen
	case errors.Is(err, ledger.ErrUnknownBank):
		return http.StatusUnprocessableEntity, CodeUnknownBank
	case errors.Is(err, ledger.ErrInvalidAccountNumber):
		return http.StatusUnprocessableEntity, CodeInvalidAccount
	case errors.Is(err, ledger.ErrInvalidTransaction), errors.Is(err, categorize.ErrEmptyMapping):
		return http.StatusUnprocessableEntity, CodeInvalidEntry
	case errors.Is(err, statement.ErrUnknownFormat), errors.Is(err, statement.ErrMalformed),
		errors.Is(err, statement.ErrMissingDescription):
		return http.StatusUnprocessableEntity, CodeUnknownFormat
	}

	return http.StatusInternalServerError, CodeInternal
}

// message returns the sentence a user should see: the error text with its
// first letter capitalised.
func message(err error) string {
	s := err.Error()
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func authStatus(code string) int {
	switch code {
	case auth.CodeInvalidEmail, auth.CodeWeakPassword:
		return http.StatusBadRequest
	case auth.CodeEmailAlreadyInUse:
		return http.StatusConflict
	case auth.CodeInvalidCredential, auth.CodeInvalidToken:
		return http.StatusUnauthorized
	case auth.CodeUnauthorizedDomain:
		return http.StatusForbidden
	}

	return http.StatusInternalServerError
}
