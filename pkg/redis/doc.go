// Package redis connects to Redis and stores authenticators in it.
//
// Connect retries until the server answers, Healthcheck plugs into readiness
// probes, and Store implements authenticator.Repository with an Exists method
// usable as a backing-store predicate.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	authenticators := redis.NewStoreFromConfig(client, cfg)
//	engine := validator.Compose(validator.BackingStore(authenticators.Exists))
//
// A revoked authenticator is simply deleted; expiry is delegated to key TTLs.
// Driver errors are returned unchanged so that the validator reports them as
// an infrastructure failure rather than a rejection.
package redis
