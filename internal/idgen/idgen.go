// Package idgen generates opaque entity identifiers.
//
// Identifiers are always produced server-side at creation time and never
// accepted from callers. The generator is injected so tests can pin IDs.
package idgen

import "github.com/gofrs/uuid/v5"

// Generator produces globally unique entity IDs.
type Generator interface {
	// NewID returns a fresh identifier.
	NewID() (uuid.UUID, error)
}

// Random is the production Generator backed by random UUIDv4.
type Random struct{}

// NewID returns a random UUID.
func (Random) NewID() (uuid.UUID, error) { return uuid.NewV4() }
