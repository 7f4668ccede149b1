package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/authgate/pkg/authn"
	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/cookie"
	"github.com/dmitrymomot/authgate/pkg/fingerprint"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/metrics"
	"github.com/dmitrymomot/authgate/pkg/requestid"
	"github.com/dmitrymomot/authgate/pkg/store"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

// Response headers set for the proxy on successful authentication.
const (
	headerAuthenticatorID = "X-Authenticator-Id"
	headerPrincipal       = "X-Auth-Principal"
	headerFingerprint     = "X-Auth-Fingerprint"
)

func newHandler(app appConfig, gateCfg authn.Config, be backend, reg *prometheus.Registry, log *slog.Logger) (http.Handler, error) {
	observer := metrics.NewObserver(reg, app.MetricsNamespace)

	exists := be.exists
	if app.ExistsCacheTTL > 0 {
		exists = store.Cached(exists, app.ExistsCacheSize, app.ExistsCacheTTL)
	}

	engine := validator.NewEngine([]validator.Validator{
		validator.Expiry(nil),
		validator.IdleTimeout(nil),
		validator.BackingStore(exists),
	},
		validator.WithLogger(log),
		validator.WithObserver(observer),
	)

	var cookies *cookie.Manager
	if gateCfg.CookieName != "" {
		var cookieCfg cookie.Config
		if err := config.Load(&cookieCfg); err != nil {
			return nil, err
		}
		m, err := cookie.NewFromConfig(cookieCfg)
		if err != nil {
			return nil, err
		}
		cookies = m
	}

	gate := authn.NewFromConfig(gateCfg, be.repo, engine, cookies,
		authn.WithLogger(log),
		authn.WithDecisionObserver(observer),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, be.checks...))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Group(func(r chi.Router) {
		r.Use(clientip.Middleware, gate.Middleware)
		r.HandleFunc("/auth", forwardAuth)
	})
	return r, nil
}

func forwardAuth(w http.ResponseWriter, r *http.Request) {
	if a, ok := authn.GetAuthenticatorFromContext(r.Context()); ok {
		w.Header().Set(headerAuthenticatorID, a.ID)
		if p := a.LoginInfo.String(); p != "" {
			w.Header().Set(headerPrincipal, p)
		}
	}
	// lets the upstream bind authenticators it issues to this client
	if fp, ok := fingerprint.FromContext(r.Context()); ok {
		w.Header().Set(headerFingerprint, fp)
	}
	w.WriteHeader(http.StatusNoContent)
}
