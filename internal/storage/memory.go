package storage

import (
	"context"
	"sync"
	"time"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
)

type memoryEntry struct {
	sess      checkout.Session
	expiresAt time.Time
}

// Memory keeps sessions in process. Expired entries are dropped on access.
type Memory struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]memoryEntry
	now func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttlOr(ttl), m: make(map[string]memoryEntry), now: time.Now}
}

func (s *Memory) Create(ctx context.Context, sess checkout.Session) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.ID] = memoryEntry{sess: sess, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *Memory) Get(ctx context.Context, id string) (checkout.Session, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return checkout.Session{}, checkout.ErrSessionNotFound
	}
	return e.sess, nil
}

func (s *Memory) Update(ctx context.Context, id string, fn checkout.UpdateFunc) (checkout.Session, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return checkout.Session{}, checkout.ErrSessionNotFound
	}
	next, err := fn(e.sess)
	if err != nil {
		return e.sess, err
	}
	s.m[id] = memoryEntry{sess: next, expiresAt: s.now().Add(s.ttl)}
	return next, nil
}

func (s *Memory) Delete(ctx context.Context, id string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

// Len counts live sessions and evicts expired ones.
func (s *Memory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id := range s.m {
		if _, ok := s.lookup(id); ok {
			n++
		}
	}
	return n
}

func (s *Memory) lookup(id string) (memoryEntry, bool) {
	e, ok := s.m[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.m, id)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *Memory) String() string { return "memory" }
