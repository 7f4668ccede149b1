// Command authgate is a forward-auth service for reverse proxies.
//
// The proxy sends each incoming request's headers to GET /auth. authgate
// resolves the token, runs the validation engine and answers 204 with
// X-Authenticator-Id and X-Auth-Principal on success, 401 when the
// authenticator is missing or invalid, and 503 when its store cannot be
// reached. Metrics are served on /metrics, probes on /healthz and /readyz.
//
// The backing store is selected with AUTHGATE_STORE (memory, redis, postgres
// or mongo) and configured through the matching package Config.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/authgate/pkg/authn"
	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/requestid"
)

type appConfig struct {
	Store            string        `env:"AUTHGATE_STORE" envDefault:"memory"`
	ExistsCacheSize  int           `env:"AUTHGATE_EXISTS_CACHE_SIZE" envDefault:"10000"`
	ExistsCacheTTL   time.Duration `env:"AUTHGATE_EXISTS_CACHE_TTL" envDefault:"0s"`
	MetricsNamespace string        `env:"AUTHGATE_METRICS_NAMESPACE" envDefault:"authgate"`
}

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg,
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor(), authn.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		app     appConfig
		gateCfg authn.Config
		srvCfg  httpserver.Config
	)
	config.MustLoad(&app)
	config.MustLoad(&gateCfg)
	config.MustLoad(&srvCfg)

	be, err := openBackend(ctx, app.Store)
	if err != nil {
		log.Error("cannot open authenticator store", logger.Error(err))
		os.Exit(1)
	}
	defer be.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := newHandler(app, gateCfg, be, reg, log)
	if err != nil {
		log.Error("cannot build handler", logger.Error(err))
		os.Exit(1)
	}

	srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, handler); err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}
