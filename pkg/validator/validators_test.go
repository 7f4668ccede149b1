package validator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func TestBackingStore(t *testing.T) {
	ctx := context.Background()
	a := authenticator.Authenticator{ID: "auth-1"}

	t.Run("predicate true is valid", func(t *testing.T) {
		v := validator.BackingStore(func(ctx context.Context, got authenticator.Authenticator) (bool, error) {
			assert.Equal(t, "auth-1", got.ID)
			return true, nil
		})

		res, err := v.IsValid(ctx, a)
		require.NoError(t, err)
		assert.True(t, res.IsValid())
	})

	t.Run("predicate false yields exactly one error", func(t *testing.T) {
		v := validator.BackingStore(func(context.Context, authenticator.Authenticator) (bool, error) {
			return false, nil
		})

		res, err := v.IsValid(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, validator.ValidationErrors{validator.ErrNotFoundInStore}, res.Errors())
	})

	t.Run("store failure is not treated as invalid", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		v := validator.BackingStore(func(context.Context, authenticator.Authenticator) (bool, error) {
			return false, storeErr
		})

		res, err := v.IsValid(ctx, a)
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrStoreUnavailable)
		assert.ErrorIs(t, err, storeErr)
		assert.True(t, res.IsValid(), "no validation error must be reported for infrastructure failures")
	})

	t.Run("nil predicate panics", func(t *testing.T) {
		assert.Panics(t, func() { validator.BackingStore(nil) })
	})

	assert.Equal(t, "backing_store", validator.BackingStore(func(context.Context, authenticator.Authenticator) (bool, error) {
		return true, nil
	}).Name())
}

func TestExpiry(t *testing.T) {
	v := validator.Expiry(fixedClock)

	res, err := v.IsValid(context.Background(), authenticator.Authenticator{ExpiresAt: testNow.Add(time.Hour)})
	require.NoError(t, err)
	assert.True(t, res.IsValid())

	res, err = v.IsValid(context.Background(), authenticator.Authenticator{ExpiresAt: testNow.Add(-time.Second)})
	require.NoError(t, err)
	assert.Equal(t, validator.ValidationErrors{validator.ErrExpired}, res.Errors())

	assert.NotNil(t, validator.Expiry(nil))
}

func TestIdleTimeout(t *testing.T) {
	v := validator.IdleTimeout(fixedClock)

	active := authenticator.Authenticator{LastUsedAt: testNow.Add(-time.Minute), IdleTimeout: time.Hour}
	res, err := v.IsValid(context.Background(), active)
	require.NoError(t, err)
	assert.True(t, res.IsValid())

	idle := authenticator.Authenticator{LastUsedAt: testNow.Add(-2 * time.Hour), IdleTimeout: time.Hour}
	res, err = v.IsValid(context.Background(), idle)
	require.NoError(t, err)
	assert.Equal(t, validator.ValidationErrors{validator.ErrIdleTimeout}, res.Errors())
}

func TestFingerprint(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		bound   string
		current string
		valid   bool
	}{
		{"matching", "abc123", "abc123", true},
		{"mismatch", "abc123", "def456", false},
		{"authenticator without fingerprint", "", "def456", true},
		{"request without fingerprint", "abc123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := validator.Fingerprint(tt.current).IsValid(ctx, authenticator.Authenticator{Fingerprint: tt.bound})
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.IsValid())
			if !tt.valid {
				assert.Equal(t, validator.ValidationErrors{validator.ErrFingerprintMismatch}, res.Errors())
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		bound   string
		current string
		valid   bool
	}{
		{"same ipv4", "203.0.113.7", "203.0.113.7", true},
		{"ipv4 mapped ipv6", "203.0.113.7", "::ffff:203.0.113.7", true},
		{"different", "203.0.113.7", "203.0.113.8", false},
		{"not bound", "", "203.0.113.8", true},
		{"unknown current", "203.0.113.7", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := validator.ClientIP(tt.current).IsValid(ctx, authenticator.Authenticator{ClientIP: tt.bound})
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.IsValid())
		})
	}
}
