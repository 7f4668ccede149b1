package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/mongo"
	"github.com/dmitrymomot/authgate/pkg/pg"
	"github.com/dmitrymomot/authgate/pkg/redis"
	"github.com/dmitrymomot/authgate/pkg/store"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

var errUnknownStore = errors.New("unknown authenticator store")

// backend is the authenticator store the gate runs against.
type backend struct {
	repo   authenticator.Repository
	exists validator.Predicate
	checks []httpserver.Check
	close  func()
}

func memoryBackend(mem *store.Memory) backend {
	return backend{
		repo:   mem,
		exists: mem.Exists,
		close:  func() { _ = mem.Close() },
	}
}

func openBackend(ctx context.Context, kind string) (backend, error) {
	switch kind {
	case "memory":
		return memoryBackend(store.NewMemory(store.WithCleanupInterval(time.Minute))), nil

	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return backend{}, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		st := redis.NewStoreFromConfig(client, cfg)
		return backend{
			repo:   st,
			exists: st.Exists,
			checks: []httpserver.Check{{Name: "redis", Probe: redis.Healthcheck(client)}},
			close:  func() { _ = client.Close() },
		}, nil

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return backend{}, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		st := pg.NewStoreFromConfig(pool, cfg)
		return backend{
			repo:   st,
			exists: st.Exists,
			checks: []httpserver.Check{{Name: "postgres", Probe: pg.Healthcheck(pool)}},
			close:  pool.Close,
		}, nil

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return backend{}, err
		}
		st, client, err := mongo.NewStoreFromConfig(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		return backend{
			repo:   st,
			exists: st.Exists,
			checks: []httpserver.Check{{Name: "mongo", Probe: mongo.Healthcheck(client)}},
			close:  func() { _ = client.Disconnect(context.WithoutCancel(ctx)) },
		}, nil

	default:
		return backend{}, fmt.Errorf("%w: %q", errUnknownStore, kind)
	}
}
