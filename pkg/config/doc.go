// Package config loads environment variables into typed structs.
//
// Every configurable package (redis, pg, mongo, cookie, authn, logger)
// exposes a Config struct tagged for github.com/caarlos0/env/v11. Load parses
// one of them, bootstrapping ./.env through github.com/joho/godotenv on first
// use, and caches the result per type:
//
//	var rc redis.Config
//	config.MustLoad(&rc)
//
//	var ac authn.Config
//	if err := config.Load(&ac); err != nil {
//	    return err
//	}
//
// LoadEnv reads additional .env files. Reset clears the cache, which tests
// use after changing the environment.
package config
