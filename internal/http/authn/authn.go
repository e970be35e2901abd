// Package authn resolves the bearer token on a request to the identity that
// scopes it.
package authn

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/aapnaincom/internal/auth"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/respond"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
)

// Verifier turns a token into the profile it was issued for.
type Verifier interface {
	Verify(token string) (identity.Profile, error)
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the identity stored by Middleware.
func From(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(identity.Identity)
	return id, ok
}

// Token reads the bearer token from the Authorization header, falling back
// to the token query parameter for clients that cannot set headers
// (WebSocket upgrades, download links).
func Token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}

	return r.URL.Query().Get("token")
}

// Middleware rejects requests without a valid token.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := Token(r)
			if token == "" {
				respond.Fail(w, http.StatusUnauthorized, auth.CodeInvalidToken, "Please sign in to continue.")
				return
			}

			p, err := v.Verify(token)
			if err != nil {
				respond.Err(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity.New(p))))
		})
	}
}

// MustFrom is From for handlers mounted behind Middleware.
func MustFrom(r *http.Request) identity.Identity {
	id, ok := From(r.Context())
	if !ok {
		panic("authn: handler mounted without middleware")
	}

	return id
}
