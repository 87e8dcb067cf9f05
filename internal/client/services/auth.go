package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

// ErrNotLoggedIn is returned by operations that need a session when none
// is active.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthAPI is the subset of the API used by AuthService.
type AuthAPI interface {
	Login(ctx context.Context, c models.Credentials) (*models.TokenResponse, error)
	Register(ctx context.Context, r models.Registration) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.User, error)
	Refresh(ctx context.Context) (*models.TokenResponse, error)
}

// Session is the active bearer token plus the cached profile of its user.
// ExpiresAt is zero for tokens that do not carry an exp claim.
type Session struct {
	Token     string
	User      *models.User
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is in the past at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// AuthService owns the session lifecycle: at most one session is active.
// The token itself lives in the TokenStore shared with the HTTP client.
type AuthService struct {
	api    AuthAPI
	tokens client.TokenStore
	log    logging.Logger

	mu      sync.RWMutex
	session *Session
}

func NewAuthService(api AuthAPI, tokens client.TokenStore, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &AuthService{api: api, tokens: tokens, log: log}
}

// Login authenticates and makes the returned token the active session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	tr, err := s.api.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, tr)
}

// Register creates an account and logs into it.
func (s *AuthService) Register(ctx context.Context, r models.Registration) (*Session, error) {
	tr, err := s.api.Register(ctx, r)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, tr)
}

// Refresh swaps the current token for a new one, keeping the cached user.
func (s *AuthService) Refresh(ctx context.Context) (*Session, error) {
	tr, err := s.api.Refresh(ctx)
	if err != nil {
		return nil, s.HandleError(ctx, err)
	}
	if tr.User == nil {
		if cur, ok := s.Session(); ok {
			tr.User = cur.User
		}
	}
	return s.establish(ctx, tr)
}

// Restore resumes a session from a token left in a durable TokenStore.
// ErrNotLoggedIn is returned when there is none; an expired or rejected
// token is cleared.
func (s *AuthService) Restore(ctx context.Context) (*Session, error) {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	sess := &Session{Token: token, ExpiresAt: TokenExpiry(token)}
	if sess.Expired(time.Now()) {
		s.log.Info(ctx, "stored token expired", "expires_at", sess.ExpiresAt)
		if err := s.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNotLoggedIn
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, s.HandleError(ctx, err)
	}
	sess.User = user

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return sess, nil
}

// Me refetches the current user and updates the cached profile.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, s.HandleError(ctx, err)
	}
	s.mu.Lock()
	if s.session != nil {
		s.session.User = user
	}
	s.mu.Unlock()
	return user, nil
}

// Logout clears the token and the cached session. It is idempotent.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	return s.tokens.Clear(ctx)
}

// Session returns a copy of the active session.
func (s *AuthService) Session() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// HandleError ends the session when err is an HTTP 401 and returns it as
// an *client.AuthExpiredError. Other errors are returned unchanged.
func (s *AuthService) HandleError(ctx context.Context, err error) error {
	ae, ok := client.AsAuthExpired(err)
	if !ok {
		return err
	}
	s.log.Warn(ctx, "session rejected by server, logging out", "message", ae.Message)
	if cerr := s.Logout(ctx); cerr != nil {
		s.log.Error(ctx, "clear token", "error", cerr)
	}
	return ae
}

func (s *AuthService) establish(ctx context.Context, tr *models.TokenResponse) (*Session, error) {
	if tr.AccessToken == "" {
		return nil, errors.New("server returned an empty access token")
	}
	if err := s.tokens.Set(ctx, tr.AccessToken); err != nil {
		return nil, err
	}

	sess := &Session{Token: tr.AccessToken, User: tr.User, ExpiresAt: TokenExpiry(tr.AccessToken)}
	if sess.User == nil {
		user, err := s.api.Me(ctx)
		if err == nil && user == nil {
			err = errors.New("server returned no user for the new token")
		}
		if err != nil {
			// The token is already stored; a failed login must not leave it behind.
			if lerr := s.Logout(ctx); lerr != nil {
				s.log.Error(ctx, "clearing token after failed login", "error", lerr)
			}
			return nil, s.HandleError(ctx, err)
		}
		sess.User = user
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.log.Info(ctx, "session established", "user", sess.User.Username, "expires_at", sess.ExpiresAt)
	out := *sess
	return &out, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying its
// signature. Opaque or claimless tokens yield the zero time.
func TokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
