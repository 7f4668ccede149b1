package fingerprint

import (
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// Hasher is the one-way hash primitive behind fingerprints.
// Implementations must be deterministic and safe for concurrent use.
type Hasher interface {
	Sum(s string) string
}

// HasherFunc adapts a plain function to Hasher.
type HasherFunc func(s string) string

func (f HasherFunc) Sum(s string) string { return f(s) }

type xxHasher struct{}

func (xxHasher) Sum(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// Default returns the unkeyed xxHash64 hasher. It is stable across processes
// and releases but offers no collision resistance against an attacker.
func Default() Hasher { return xxHasher{} }

type keyedHasher struct {
	key []byte
}

// NewKeyed returns a BLAKE2b-256 hasher keyed with secret.
// The secret must be between 1 and 64 bytes.
func NewKeyed(secret []byte) (Hasher, error) {
	if len(secret) == 0 || len(secret) > blake2b.Size {
		return nil, ErrInvalidKey
	}
	return &keyedHasher{key: slices.Clone(secret)}, nil
}

func (h *keyedHasher) Sum(s string) string {
	// hash.Hash keeps state, so a fresh instance per call keeps Sum goroutine-safe
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// key length is checked in NewKeyed
		panic(err)
	}
	mac.Write([]byte(s))
	return hex.EncodeToString(mac.Sum(nil))
}
