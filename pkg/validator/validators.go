package validator

import (
	"context"
	"errors"
	"net/netip"
	"time"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/fingerprint"
)

// Predicate reports whether an authenticator still exists in a backing store.
type Predicate func(ctx context.Context, a authenticator.Authenticator) (bool, error)

// Clock returns the current time.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// BackingStoreValidator checks the authenticator against an injected store predicate.
// It performs no I/O of its own.
type BackingStoreValidator struct {
	exists Predicate
}

// BackingStore creates a backing-store validator.
// Panics on a nil predicate to fail fast on misconfiguration.
func BackingStore(exists Predicate) *BackingStoreValidator {
	if exists == nil {
		panic("validator: backing store predicate is required")
	}
	return &BackingStoreValidator{exists: exists}
}

func (v *BackingStoreValidator) Name() string { return "backing_store" }

func (v *BackingStoreValidator) IsValid(ctx context.Context, a authenticator.Authenticator) (Result, error) {
	ok, err := v.exists(ctx, a)
	if err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		return Invalid(ErrNotFoundInStore), nil
	}
	return Valid(), nil
}

// ExpiryValidator rejects authenticators past their absolute expiry.
type ExpiryValidator struct {
	now Clock
}

// Expiry creates an expiry validator. A nil clock uses time.Now.
func Expiry(clock Clock) *ExpiryValidator {
	return &ExpiryValidator{now: clockOrNow(clock)}
}

func (v *ExpiryValidator) Name() string { return "expiry" }

func (v *ExpiryValidator) IsValid(_ context.Context, a authenticator.Authenticator) (Result, error) {
	if a.IsExpired(v.now()) {
		return Invalid(ErrExpired), nil
	}
	return Valid(), nil
}

// IdleTimeoutValidator rejects authenticators unused for longer than their idle timeout.
type IdleTimeoutValidator struct {
	now Clock
}

// IdleTimeout creates an idle-timeout validator. A nil clock uses time.Now.
func IdleTimeout(clock Clock) *IdleTimeoutValidator {
	return &IdleTimeoutValidator{now: clockOrNow(clock)}
}

func (v *IdleTimeoutValidator) Name() string { return "idle_timeout" }

func (v *IdleTimeoutValidator) IsValid(_ context.Context, a authenticator.Authenticator) (Result, error) {
	if a.IsIdle(v.now()) {
		return Invalid(ErrIdleTimeout), nil
	}
	return Valid(), nil
}

// FingerprintValidator compares the fingerprint bound to the authenticator
// with the one of the current request. Authenticators issued without a
// fingerprint always pass.
type FingerprintValidator struct {
	current string
}

func Fingerprint(current string) *FingerprintValidator {
	return &FingerprintValidator{current: current}
}

func (v *FingerprintValidator) Name() string { return "fingerprint" }

func (v *FingerprintValidator) IsValid(_ context.Context, a authenticator.Authenticator) (Result, error) {
	if a.Fingerprint == "" || fingerprint.Equal(a.Fingerprint, v.current) {
		return Valid(), nil
	}
	return Invalid(ErrFingerprintMismatch), nil
}

// ClientIPValidator compares the IP bound to the authenticator with the
// current client IP. Authenticators issued without an IP always pass.
type ClientIPValidator struct {
	current string
}

func ClientIP(current string) *ClientIPValidator {
	return &ClientIPValidator{current: current}
}

func (v *ClientIPValidator) Name() string { return "client_ip" }

func (v *ClientIPValidator) IsValid(_ context.Context, a authenticator.Authenticator) (Result, error) {
	if a.ClientIP == "" || sameIP(a.ClientIP, v.current) {
		return Valid(), nil
	}
	return Invalid(ErrClientIPMismatch), nil
}

func sameIP(a, b string) bool {
	ipA, errA := netip.ParseAddr(a)
	ipB, errB := netip.ParseAddr(b)
	if errA != nil || errB != nil {
		return a != "" && a == b
	}
	return ipA.Unmap() == ipB.Unmap()
}
