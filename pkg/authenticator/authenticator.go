package authenticator

import (
	"context"
	"time"
)

// LoginInfo references a principal as known to one identity provider.
type LoginInfo struct {
	ProviderID  string `json:"provider_id"`
	ProviderKey string `json:"provider_key"`
}

func (l LoginInfo) String() string {
	if l.ProviderID == "" && l.ProviderKey == "" {
		return ""
	}
	return l.ProviderID + ":" + l.ProviderKey
}

// Authenticator is a read-only snapshot of an issued session artifact.
// Validators receive it by value and must not retain references to it.
type Authenticator struct {
	ID          string        `json:"id"`
	LoginInfo   LoginInfo     `json:"login_info"`
	LastUsedAt  time.Time     `json:"last_used_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
	IdleTimeout time.Duration `json:"idle_timeout,omitempty"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	ClientIP    string        `json:"client_ip,omitempty"`
}

// IsExpired reports whether the absolute lifetime has passed at now.
// A zero ExpiresAt never expires.
func (a Authenticator) IsExpired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}

// IsIdle reports whether the authenticator was unused for longer than its
// idle timeout. Idle tracking is off when IdleTimeout is not positive.
func (a Authenticator) IsIdle(now time.Time) bool {
	if a.IdleTimeout <= 0 || a.LastUsedAt.IsZero() {
		return false
	}
	return now.Sub(a.LastUsedAt) > a.IdleTimeout
}

// Repository resolves authenticators by their id.
// Find returns ErrNotFound when no authenticator exists for id.
type Repository interface {
	Find(ctx context.Context, id string) (Authenticator, error)
}
