// Package authn is net/http middleware that authenticates requests with
// previously issued authenticators.
//
// For every request the Gate builds a request pipeline, extracts a token with
// its Transport, resolves the authenticator through an
// authenticator.Repository and runs the validation engine. When fingerprint or
// client IP binding is enabled, request-scoped validators are added to the
// engine for that request only.
//
//	repo := pg.NewStoreFromConfig(pool, pgCfg)
//	engine := validator.NewEngine([]validator.Validator{
//	    validator.Expiry(nil),
//	    validator.IdleTimeout(nil),
//	    validator.BackingStore(store.Cached(repo.Exists, 10_000, 30*time.Second)),
//	}, validator.WithLogger(log), validator.WithObserver(obs))
//
//	gate := authn.New(repo, engine,
//	    authn.WithTransport(authn.NewCompositeTransport(
//	        authn.NewHeaderTransport("Authorization"),
//	        authn.NewCookieTransport(cookies, "auth"),
//	    )),
//	    authn.WithFingerprintCheck(nil),
//	    authn.WithDecisionObserver(obs),
//	)
//
//	r := chi.NewRouter()
//	r.Use(gate.Middleware)
//	r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
//	    a := authn.MustGetAuthenticatorFromContext(r.Context())
//	    ...
//	})
//
// Responses:
//
//   - 401 with every validation code when the authenticator is invalid; the
//     token is discarded through the transport (cookies are expired)
//   - 503 when the store or a validator could not decide
//   - 401 for missing tokens unless the Gate is Optional
//
// The token is the authenticator id. Issuing authenticators is up to the
// application; Gate.Fingerprint and Gate.ClientIP return the values to bind
// a new authenticator to, and Gate.Embed hands its token to the client.
package authn
