// Package auth is the identity provider: email/password accounts, federated
// sign-in and the bearer tokens that resolve to an identity.Profile.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
)

// Provider error codes.
const (
	CodeInvalidEmail       = "auth/invalid-email"
	CodeWeakPassword       = "auth/weak-password"
	CodeEmailAlreadyInUse  = "auth/email-already-in-use"
	CodeInvalidCredential  = "auth/invalid-credential"
	CodeUnauthorizedDomain = "auth/unauthorized-domain"
	CodeInvalidToken       = "auth/invalid-token"
	CodeInternal           = "auth/internal-error"
)

// Error is a provider failure with a stable code for clients to branch on.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	err     error
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, err: cause}
}

// Code returns the provider code carried by err, or CodeInternal.
func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}

	return CodeInternal
}

// IsUnauthorizedDomain reports whether federated sign-in was refused because
// the calling domain is not authorized.
func IsUnauthorizedDomain(err error) bool {
	return Code(err) == CodeUnauthorizedDomain
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	AvatarURL    string
	Provider     string
	CreatedAt    time.Time
}

func (u *User) Profile() identity.Profile {
	return identity.Profile{
		UID:         u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

//go:generate mockgen -source=auth.go -destination=repository_mock.go -package=auth
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
