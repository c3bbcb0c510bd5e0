package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	// TTL is the sliding expiry applied on create and on every refresh.
	TTL = 24 * time.Hour

	// SweepInterval is how often the background sweep evicts idle sessions.
	SweepInterval = 30 * time.Minute
)

var ErrNotFound = errors.New("session not found or expired")

// Session is an admin elevation credential. The id is handed to the
// client only as an opaque cookie value.
type Session struct {
	ID        string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store holds admin sessions. Implementations must be safe for
// concurrent use; validation and eviction on the same id never race.
type Store interface {
	// Create issues a new session id for the given principal.
	Create(ctx context.Context, email string) (string, error)

	// Validate reports whether the session exists and has not expired.
	// An expired entry is evicted on lookup.
	Validate(ctx context.Context, id string) (bool, error)

	// Refresh slides the expiry forward by the full TTL from now.
	Refresh(ctx context.Context, id string) error

	// Destroy removes the session. Destroying an absent session is a no-op.
	Destroy(ctx context.Context, id string) error

	// Close stops any background maintenance owned by the store.
	Close() error
}

var idSeq atomic.Uint64

// newSessionID is 256 bits from crypto/rand plus a monotonic disambiguator.
func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%d", hex.EncodeToString(buf), idSeq.Add(1)), nil
}
