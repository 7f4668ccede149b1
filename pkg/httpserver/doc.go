// Package httpserver runs an http.Handler with context-driven graceful
// shutdown and provides liveness and readiness handlers.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	r.Get("/readyz", httpserver.ReadinessHandler(log,
//	    httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)},
//	))
//	if err := srv.Run(ctx, r); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Server timeouts come from Config (HTTP_ADDR, HTTP_READ_TIMEOUT, ...).
package httpserver
