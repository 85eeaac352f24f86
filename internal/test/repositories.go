package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/domain/model"
)

var errUnauthenticated = domainErrors.ErrUnauthenticated

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Username: username, PasswordHash: passwordHash, CreatedAt: time.Unix(0, 0)}
	s.Next++
	s.Users[username] = user
	s.ByID[user.ID] = user
	return user, nil
}

func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SessionRepositoryStub keeps sessions in a map guarded by a mutex.
type SessionRepositoryStub struct {
	mu       sync.Mutex
	Sessions map[string]model.Session
	Err      error
	GetFn    func(context.Context, string) (*model.Session, error)
	DeleteFn func(context.Context, string) (bool, error)
}

func NewSessionRepositoryStub() *SessionRepositoryStub {
	return &SessionRepositoryStub{Sessions: make(map[string]model.Session)}
}

func (s *SessionRepositoryStub) Create(ctx context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.Sessions == nil {
		s.Sessions = make(map[string]model.Session)
	}
	if _, exists := s.Sessions[session.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.Sessions[session.ID] = session
	return nil
}

func (s *SessionRepositoryStub) Get(ctx context.Context, id string) (*model.Session, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	session, ok := s.Sessions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &session, nil
}

func (s *SessionRepositoryStub) Delete(ctx context.Context, id string) (bool, error) {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.Sessions[id]
	delete(s.Sessions, id)
	return ok, nil
}

// DeleteExpired removes up to limit sessions expired at now, oldest first.
func (s *SessionRepositoryStub) DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	expired := make([]model.Session, 0)
	for _, session := range s.Sessions {
		if session.Expired(now) {
			expired = append(expired, session)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].ExpiresAt.Before(expired[j].ExpiresAt) })
	if len(expired) > limit {
		expired = expired[:limit]
	}
	for _, session := range expired {
		delete(s.Sessions, session.ID)
	}
	return int64(len(expired)), nil
}

// Len returns the number of stored sessions.
func (s *SessionRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sessions)
}

// PointRepositoryStub is an in-memory append-only ledger.
type PointRepositoryStub struct {
	mu       sync.Mutex
	Points   []model.Point
	Err      error
	Appended int
}

func (s *PointRepositoryStub) Append(ctx context.Context, point model.Point) (*model.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Appended++
	point.ID = int64(len(s.Points) + 1)
	point.CreatedAt = time.Unix(int64(point.ID), 0)
	s.Points = append(s.Points, point)
	stored := point
	return &stored, nil
}

func (s *PointRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Point
	for _, p := range s.Points {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}
