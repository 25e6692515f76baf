package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// bcryptCost trades login latency for brute-force resistance.
const bcryptCost = 12

// Hasher computes and verifies bcrypt digests. A weighted semaphore caps
// concurrent computations so the CPU cost cannot be turned into a denial of
// service; Acquire honours request cancellation.
type Hasher struct {
	sem *semaphore.Weighted
}

// NewHasher returns a Hasher allowing at most maxConcurrent computations.
func NewHasher(maxConcurrent int64) *Hasher {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Hasher{sem: semaphore.NewWeighted(maxConcurrent)}
}

// Hash returns the salted digest of password. The plaintext is never logged
// or stored.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches digest. The underlying comparison
// is constant time.
func (h *Hasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
