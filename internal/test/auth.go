package test

import (
	"context"
	"errors"
	"time"

	"github.com/polkiloo/areacheck/internal/domain/model"
	pkgAuth "github.com/polkiloo/areacheck/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides. By default
// the token is "token:" followed by the session id.
type StrategyStub struct {
	IssueFn func(string, int64, time.Time) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

func (s StrategyStub) IssueToken(sessionID string, userID int64, expiresAt time.Time) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(sessionID, userID, expiresAt)
	}
	return "token:" + sessionID, nil
}

func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if len(token) <= len("token:") || token[:len("token:")] != "token:" {
		return "", pkgAuth.ErrInvalidToken
	}
	return token[len("token:"):], nil
}

func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// AuthenticatorStub implements the middleware authentication contract.
type AuthenticatorStub struct {
	ID             int64
	Err            error
	AuthenticateFn func(context.Context, string) (int64, error)
}

// Authenticate either delegates to override or returns predefined result.
func (s AuthenticatorStub) Authenticate(ctx context.Context, token string) (int64, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) error
	LoginFn        func(context.Context, string, string) (string, error)
	LogoutFn       func(context.Context, string) error
	AuthenticateFn func(context.Context, string) (int64, error)
	CurrentUserFn  func(context.Context, int64) (*model.User, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, username, password string) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, username, password)
	}
	return nil
}

func (s AuthFacadeStub) Login(ctx context.Context, username, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, username, password)
	}
	return "token", nil
}

func (s AuthFacadeStub) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	return nil
}

// Authenticate accepts only the literal "token" unless overridden.
func (s AuthFacadeStub) Authenticate(ctx context.Context, token string) (int64, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, token)
	}
	if token != "token" {
		return 0, errUnauthenticated
	}
	return 1, nil
}

func (s AuthFacadeStub) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	if s.CurrentUserFn != nil {
		return s.CurrentUserFn(ctx, userID)
	}
	return &model.User{ID: userID, Username: "alice"}, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
