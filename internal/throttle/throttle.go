// Package throttle slows down credential guessing by tracking failed sign-in
// attempts per (email, client) pair and placing temporary blocks.
package throttle

import (
	"context"
	"crypto/sha256"
	"time"
)

// Throttle controls sign-in attempts and temporary lockouts.
type Throttle interface {
	// Allow reports whether a sign-in may proceed and an optional retry-after.
	Allow(ctx context.Context, email string, clientHash []byte) (bool, time.Duration, error)
	// Success resets counters after a successful sign-in.
	Success(ctx context.Context, email string, clientHash []byte) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, email string, clientHash []byte) (bool, time.Duration, error)
}

// HashClient returns a stable hash for a client address so raw IPs are never
// stored.
func HashClient(addr string) []byte {
	h := sha256.Sum256([]byte(addr))
	return h[:]
}
