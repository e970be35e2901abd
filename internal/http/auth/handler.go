package auth

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/aapnaincom/internal/auth"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the public sign-in endpoints. Me must be mounted behind
// authn.Middleware.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/signup", h.signUp)
	r.Post("/signin", h.signIn)
	r.Post("/federated", h.federated)
}

type sessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      identity.Profile `json:"user"`
}

func toSession(s *auth.Session) sessionResponse {
	return sessionResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: s.User}
}

type signUpRequest struct {
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	s, err := h.svc.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSession(s))
}

type signInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	s, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSession(s))
}

type federatedRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

func (h *Handler) federated(w http.ResponseWriter, r *http.Request) {
	var req federatedRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	s, err := h.svc.SignInFederated(r.Context(), req.IDToken, requestDomain(r))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSession(s))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Me(r.Context(), authn.MustFrom(r).UserID())
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, p)
}

// requestDomain is the host the sign-in was started from: the Origin header
// when a browser sent one, otherwise the Host the request was addressed to.
func requestDomain(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			return u.Host
		}
	}

	if host, _, err := net.SplitHostPort(r.Host); err == nil {
		return host
	}

	return r.Host
}
