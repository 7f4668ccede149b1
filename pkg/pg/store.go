package pg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by Store.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store persists authenticators in a table of the following shape:
//
//	CREATE TABLE authenticators (
//	    id            TEXT PRIMARY KEY,
//	    provider_id   TEXT NOT NULL,
//	    provider_key  TEXT NOT NULL,
//	    last_used_at  TIMESTAMPTZ,
//	    expires_at    TIMESTAMPTZ,
//	    idle_timeout  BIGINT NOT NULL DEFAULT 0,
//	    fingerprint   TEXT NOT NULL DEFAULT '',
//	    client_ip     TEXT NOT NULL DEFAULT '',
//	    revoked_at    TIMESTAMPTZ
//	);
//
// Revoked rows are kept for auditing and are invisible to Find and Exists.
type Store struct {
	db Querier

	findSQL   string
	existsSQL string
	saveSQL   string
	revokeSQL string
}

// NewStore creates a store over table. The name is quoted, so it may carry a
// schema ("auth.authenticators").
func NewStore(db Querier, table string) *Store {
	t := pgx.Identifier(strings.Split(table, ".")).Sanitize()

	return &Store{
		db: db,
		findSQL: fmt.Sprintf(`SELECT id, provider_id, provider_key, last_used_at, expires_at, idle_timeout, fingerprint, client_ip
FROM %s WHERE id = $1 AND revoked_at IS NULL`, t),
		existsSQL: fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1 AND revoked_at IS NULL)`, t),
		saveSQL: fmt.Sprintf(`INSERT INTO %s (id, provider_id, provider_key, last_used_at, expires_at, idle_timeout, fingerprint, client_ip)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    last_used_at = EXCLUDED.last_used_at,
    expires_at = EXCLUDED.expires_at,
    idle_timeout = EXCLUDED.idle_timeout,
    fingerprint = EXCLUDED.fingerprint,
    client_ip = EXCLUDED.client_ip`, t),
		revokeSQL: fmt.Sprintf(`UPDATE %s SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`, t),
	}
}

// NewStoreFromConfig creates a store over cfg.AuthenticatorsTable.
func NewStoreFromConfig(db Querier, cfg Config) *Store {
	return NewStore(db, cfg.AuthenticatorsTable)
}

func (s *Store) Save(ctx context.Context, a authenticator.Authenticator) error {
	_, err := s.db.Exec(ctx, s.saveSQL,
		a.ID,
		a.LoginInfo.ProviderID,
		a.LoginInfo.ProviderKey,
		nullTime(a.LastUsedAt),
		nullTime(a.ExpiresAt),
		int64(a.IdleTimeout),
		a.Fingerprint,
		a.ClientIP,
	)
	return err
}

// Find implements authenticator.Repository.
func (s *Store) Find(ctx context.Context, id string) (authenticator.Authenticator, error) {
	var (
		a            authenticator.Authenticator
		lastUsedAt   *time.Time
		expiresAt    *time.Time
		idleTimeoutN int64
	)

	err := s.db.QueryRow(ctx, s.findSQL, id).Scan(
		&a.ID,
		&a.LoginInfo.ProviderID,
		&a.LoginInfo.ProviderKey,
		&lastUsedAt,
		&expiresAt,
		&idleTimeoutN,
		&a.Fingerprint,
		&a.ClientIP,
	)
	if IsNotFoundError(err) {
		return authenticator.Authenticator{}, authenticator.ErrNotFound
	}
	if err != nil {
		return authenticator.Authenticator{}, err
	}

	if lastUsedAt != nil {
		a.LastUsedAt = *lastUsedAt
	}
	if expiresAt != nil {
		a.ExpiresAt = *expiresAt
	}
	a.IdleTimeout = time.Duration(idleTimeoutN)

	return a, nil
}

// Revoke marks the authenticator as revoked. Revoking twice is a no-op.
func (s *Store) Revoke(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, s.revokeSQL, id)
	return err
}

// Exists reports whether a non-revoked row for a exists. It has the shape of
// a backing-store predicate.
func (s *Store) Exists(ctx context.Context, a authenticator.Authenticator) (bool, error) {
	var ok bool
	if err := s.db.QueryRow(ctx, s.existsSQL, a.ID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
