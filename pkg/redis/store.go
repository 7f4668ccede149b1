package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
)

// Store keeps authenticators as JSON values, one key per authenticator.
// Keys expire together with the authenticator, so a missing key means
// expired or revoked.
type Store struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewStore(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix, now: time.Now}
}

// NewStoreFromConfig creates a store using cfg.KeyPrefix.
func NewStoreFromConfig(client redis.UniversalClient, cfg Config) *Store {
	return NewStore(client, cfg.KeyPrefix)
}

func (s *Store) key(id string) string { return s.prefix + id }

// Save writes a. An authenticator without expiry is stored without TTL.
// Saving an already expired authenticator removes it.
func (s *Store) Save(ctx context.Context, a authenticator.Authenticator) error {
	var ttl time.Duration
	if !a.ExpiresAt.IsZero() {
		ttl = a.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return s.Revoke(ctx, a.ID)
		}
	}

	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(a.ID), data, ttl).Err()
}

// Find implements authenticator.Repository.
func (s *Store) Find(ctx context.Context, id string) (authenticator.Authenticator, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return authenticator.Authenticator{}, authenticator.ErrNotFound
	}
	if err != nil {
		return authenticator.Authenticator{}, err
	}

	var a authenticator.Authenticator
	if err := json.Unmarshal(data, &a); err != nil {
		return authenticator.Authenticator{}, errors.Join(ErrCorruptAuthenticator, err)
	}
	return a, nil
}

func (s *Store) Revoke(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Exists reports whether the key for a is present. It has the shape of a
// backing-store predicate.
func (s *Store) Exists(ctx context.Context, a authenticator.Authenticator) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(a.ID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
