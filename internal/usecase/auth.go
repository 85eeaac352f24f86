package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/domain/model"
	"github.com/polkiloo/areacheck/internal/domain/repository"
	pkgAuth "github.com/polkiloo/areacheck/internal/pkg/auth"
)

// timingPassword is hashed once and compared against on logins for unknown
// usernames so they cost as much as a wrong password.
const timingPassword = "areacheck-timing-equalizer"

// AuthUseCase handles user registration and the session lifecycle.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	ttl      time.Duration

	now   func() time.Time
	newID func() (string, error)

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	opts pkgAuth.Options,
) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   strategy,
		ttl:      opts.SessionTTL(),
		now:      time.Now,
		newID:    pkgAuth.NewSessionID,
	}
}

// Register creates a new user. Uniqueness is decided by the store.
func (u *AuthUseCase) Register(ctx context.Context, username, password string) (_ *model.User, err error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer func() { endSpan(span, err) }()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domainErrors.ErrInvalidArgument)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidArgument, err)
		}
		return nil, err
	}

	usr, err := u.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrUsernameTaken
		}
		return nil, storeFailure("create user", err)
	}

	span.SetAttributes(attribute.Int64("user.id", usr.ID))
	return usr, nil
}

// Login verifies credentials and opens a new session, returning its token.
// Unknown usernames and wrong passwords are indistinguishable.
func (u *AuthUseCase) Login(ctx context.Context, username, password string) (_ string, err error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer func() { endSpan(span, err) }()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		u.compareDummy(password)
		return "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.compareDummy(password)
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", storeFailure("get user", err)
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}

	rawID, err := u.newID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	now := u.now()
	session := model.Session{
		ID:        pkgAuth.SessionKey(rawID),
		UserID:    usr.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}

	token, err := u.tokens.IssueToken(rawID, usr.ID, session.ExpiresAt)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	if err := u.sessions.Create(ctx, session); err != nil {
		return "", storeFailure("create session", err)
	}

	span.SetAttributes(attribute.Int64("user.id", usr.ID))
	return token, nil
}

// Authenticate resolves a token to the owning user id without side effects.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (_ int64, err error) {
	ctx, span := tracer.Start(ctx, "auth.Authenticate")
	defer func() { endSpan(span, err) }()

	session, err := u.liveSession(ctx, token)
	if err != nil {
		return 0, err
	}
	return session.UserID, nil
}

// Logout invalidates the session behind token.
func (u *AuthUseCase) Logout(ctx context.Context, token string) (err error) {
	ctx, span := tracer.Start(ctx, "auth.Logout")
	defer func() { endSpan(span, err) }()

	session, err := u.liveSession(ctx, token)
	if err != nil {
		return err
	}

	deleted, err := u.sessions.Delete(ctx, session.ID)
	if err != nil {
		return storeFailure("delete session", err)
	}
	if !deleted {
		return domainErrors.ErrUnauthenticated
	}
	return nil
}

// PurgeExpiredSessions removes up to limit expired sessions when the
// session store keeps them around; stores with native expiry report zero.
func (u *AuthUseCase) PurgeExpiredSessions(ctx context.Context, limit int) (int64, error) {
	purger, ok := u.sessions.(repository.ExpiredSessionPurger)
	if !ok {
		return 0, nil
	}
	n, err := purger.DeleteExpired(ctx, u.now(), limit)
	if err != nil {
		return 0, storeFailure("delete expired sessions", err)
	}
	return n, nil
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, storeFailure("get user", err)
	}
	return usr, nil
}

func (u *AuthUseCase) liveSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, domainErrors.ErrUnauthenticated
	}

	rawID, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthenticated
	}

	session, err := u.sessions.Get(ctx, pkgAuth.SessionKey(rawID))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, storeFailure("get session", err)
	}

	if session.Expired(u.now()) {
		return nil, domainErrors.ErrUnauthenticated
	}
	return session, nil
}

func (u *AuthUseCase) compareDummy(password string) {
	u.dummyOnce.Do(func() {
		u.dummyHash, _ = u.hasher.Hash(timingPassword)
	})
	_ = u.hasher.Compare(u.dummyHash, password)
}
