// Package memory implements the repository in process memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store keeps all records in maps guarded by a single lock.
// Decisions hold the write lock across check and transition.
type Store struct {
	log *zap.SugaredLogger
	now func() time.Time

	mu        sync.RWMutex
	users     map[int64]entities.User
	types     map[int64]entities.RequestType
	requests  map[uuid.UUID]*entities.ApprovalRequest
	order     []uuid.UUID
	logs      map[uuid.UUID][]entities.RequestLog
	nextLogID int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithReferenceData preloads users and request types.
func WithReferenceData(users []entities.User, types []entities.RequestType) Option {
	return func(s *Store) {
		for _, u := range users {
			s.users[u.ID] = u
		}
		for _, rt := range types {
			s.types[rt.ID] = rt
		}
	}
}

// New creates an empty in-memory store.
func New(log *zap.SugaredLogger, opts ...Option) *Store {
	s := &Store{
		log:      log.Named("repo.memory"),
		now:      func() time.Time { return time.Now().UTC() },
		users:    make(map[int64]entities.User),
		types:    make(map[int64]entities.RequestType),
		requests: make(map[uuid.UUID]*entities.ApprovalRequest),
		logs:     make(map[uuid.UUID][]entities.RequestLog),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnStart is a no-op.
func (s *Store) OnStart(_ context.Context) error {
	s.log.Infow("memory store ready", "users", len(s.users), "request_types", len(s.types))
	return nil
}

// OnStop is a no-op.
func (s *Store) OnStop(_ context.Context) error { return nil }

// GetUser returns a user by id.
func (s *Store) GetUser(_ context.Context, id int64) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", entities.ErrUserNotFound, id)
	}
	return &u, nil
}

// GetUsers returns the users found among ids keyed by id.
func (s *Store) GetUsers(_ context.Context, ids []int64) (map[int64]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make(map[int64]entities.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			res[id] = u
		}
	}
	return res, nil
}

// ListUsers returns all users ordered by id.
func (s *Store) ListUsers(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]entities.User, 0, len(s.users))
	for _, u := range s.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

// GetRequestType returns a catalog entry by id.
func (s *Store) GetRequestType(_ context.Context, id int64) (*entities.RequestType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.types[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", entities.ErrRequestTypeNotFound, id)
	}
	return &rt, nil
}

// ListRequestTypes returns the catalog ordered by id.
func (s *Store) ListRequestTypes(_ context.Context) ([]entities.RequestType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]entities.RequestType, 0, len(s.types))
	for _, rt := range s.types {
		res = append(res, rt)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}
