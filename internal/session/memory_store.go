package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with in-process storage. Suitable for
// single-instance deployments; use RedisStore behind a load balancer.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl time.Duration
	now func() time.Time

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

// NewMemoryStore creates a memory store and starts its background sweep.
func NewMemoryStore(ttl, sweepEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions:  make(map[string]*Session),
		ttl:       ttl,
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop(sweepEvery)

	return s
}

func (s *MemoryStore) sweepLoop(every time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stopSweep:
			return
		}
	}
}

// evictExpired removes every session past its expiry, bounding memory
// growth from abandoned sessions independent of lookups.
func (s *MemoryStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) Create(_ context.Context, email string) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sessions[id] = &Session{
		ID:        id,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	return id, nil
}

func (s *MemoryStore) Validate(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false, nil
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Refresh(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	now := s.now()
	if now.After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return ErrNotFound
	}
	sess.ExpiresAt = now.Add(s.ttl)
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close stops the background sweep and waits for it to finish.
func (s *MemoryStore) Close() error {
	close(s.stopSweep)
	s.wg.Wait()
	return nil
}
