package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
)

const minPasswordLength = 6

// errNoSecret refuses to sign or accept tokens under an empty HMAC key.
var errNoSecret = errors.New("signing secret is not configured")

type Config struct {
	JWTSecret         string
	TokenTTL          time.Duration
	FederatedSecret   string
	AuthorizedDomains []string
}

type Service struct {
	repo Repository
	cfg  Config
	now  func() time.Time
}

func NewService(repo Repository, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return &Service{repo: repo, cfg: cfg, now: time.Now}
}

// Session is a signed-in user and the bearer token that proves it.
type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      identity.Profile `json:"user"`
}

type claims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", newError(CodeInvalidEmail, "The email address is badly formatted.", err)
	}

	return strings.ToLower(email), nil
}

func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	if len(password) < minPasswordLength {
		return nil, newError(CodeWeakPassword, "Password should be at least 6 characters.", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newError(CodeInternal, "Could not create the account.", fmt.Errorf("hashing password: %w", err))
	}

	u := &User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
		Provider:     ProviderPassword,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, newError(CodeEmailAlreadyInUse, "The email address is already in use by another account.", err)
		}

		return nil, newError(CodeInternal, "Could not create the account.", err)
	}

	return s.issue(u)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, newError(CodeInvalidCredential, "Invalid email or password.", err)
		}

		return nil, newError(CodeInternal, "Could not sign in.", err)
	}

	if u.PasswordHash == "" {
		return nil, newError(CodeInvalidCredential, "This account uses federated sign-in.", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, newError(CodeInvalidCredential, "Invalid email or password.", err)
	}

	return s.issue(u)
}

// SignInFederated exchanges an ID token from the federated provider for a
// session. domain is the host the sign-in was started from and must be one of
// the authorized domains. First-time users are created on the fly. Without a
// federated secret the flow is disabled.
func (s *Service) SignInFederated(ctx context.Context, idToken, domain string) (*Session, error) {
	if s.cfg.FederatedSecret == "" {
		return nil, newError(CodeInternal, "Federated sign-in is not configured.", errNoSecret)
	}

	if !s.authorized(domain) {
		return nil, newError(CodeUnauthorizedDomain, fmt.Sprintf("The domain %q is not authorized for federated sign-in.", domain), nil)
	}

	c, err := parse(s.cfg.FederatedSecret, idToken)
	if err != nil {
		return nil, newError(CodeInvalidCredential, "The federated credential is invalid or expired.", err)
	}

	email, err := normalizeEmail(c.Email)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetUserByEmail(ctx, email)

	switch {
	case err == nil:
		return s.issue(u)
	case !errors.Is(err, ErrUserNotFound):
		return nil, newError(CodeInternal, "Could not sign in.", err)
	}

	u = &User{
		Email:       email,
		DisplayName: c.Name,
		AvatarURL:   c.Picture,
		Provider:    ProviderGoogle,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, newError(CodeInternal, "Could not create the account.", err)
	}

	return s.issue(u)
}

func (s *Service) authorized(domain string) bool {
	host := strings.ToLower(strings.TrimSpace(domain))
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}

	return host != "" && slices.Contains(s.cfg.AuthorizedDomains, host)
}

// Verify resolves a bearer token to the profile it was issued for.
func (s *Service) Verify(token string) (identity.Profile, error) {
	c, err := parse(s.cfg.JWTSecret, token)
	if err != nil {
		return identity.Profile{}, newError(CodeInvalidToken, "The session has expired. Please sign in again.", err)
	}

	if _, err := uuid.Parse(c.Subject); err != nil {
		return identity.Profile{}, newError(CodeInvalidToken, "The session token is malformed.", err)
	}

	return identity.Profile{
		UID:         c.Subject,
		Email:       c.Email,
		DisplayName: c.Name,
		AvatarURL:   c.Picture,
	}, nil
}

// Me loads the current profile from the store.
func (s *Service) Me(ctx context.Context, userID string) (identity.Profile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return identity.Profile{}, newError(CodeInvalidToken, "The session token is malformed.", err)
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return identity.Profile{}, newError(CodeInvalidToken, "The account no longer exists.", err)
		}

		return identity.Profile{}, newError(CodeInternal, "Could not load the account.", err)
	}

	return u.Profile(), nil
}

func (s *Service) issue(u *User) (*Session, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)

	token, err := Sign(s.cfg.JWTSecret, u.Profile(), now, exp)
	if err != nil {
		return nil, newError(CodeInternal, "Could not issue a session.", err)
	}

	return &Session{Token: token, ExpiresAt: exp, User: u.Profile()}, nil
}

// Sign mints an HS256 token for p. The federated provider signs its ID tokens
// the same way with its own secret.
func Sign(secret string, p identity.Profile, issuedAt, expiresAt time.Time) (string, error) {
	if secret == "" {
		return "", errNoSecret
	}

	c := &claims{
		Email:   p.Email,
		Name:    p.DisplayName,
		Picture: p.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

func parse(secret, token string) (*claims, error) {
	if secret == "" {
		return nil, errNoSecret
	}

	t, err := jwt.ParseWithClaims(token, &claims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	c, ok := t.Claims.(*claims)
	if !ok || !t.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return c, nil
}
