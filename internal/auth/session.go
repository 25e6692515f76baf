package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = time.Hour

	// opTimeout bounds every store round trip so a stalled Redis cannot
	// hold a request open.
	opTimeout = 3 * time.Second
)

// Session is the server-side record referenced by the session cookie.
// Username is a denormalized copy captured at authentication time.
type Session struct {
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Store persists sessions as JSON documents in Redis. The expiry window is
// enforced twice: Redis reaps the key actively, and reads treat a stale
// expires_at as absent.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store with the given sliding window.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Create stores a new session and returns its ID. ExpiresAt is stamped here;
// any value the caller set is overwritten.
func (s *Store) Create(ctx context.Context, sess Session) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.write(ctx, id, sess); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the session by ID, or nil if it is absent or expired.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	b, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	if !sess.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return &sess, nil
}

// Save rewrites the session under the same ID and re-arms the expiry window.
func (s *Store) Save(ctx context.Context, id string, sess Session) error {
	return s.write(ctx, id, sess)
}

// Delete removes a session by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func (s *Store) write(ctx context.Context, id string, sess Session) error {
	sess.ExpiresAt = time.Now().Add(s.ttl)
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
