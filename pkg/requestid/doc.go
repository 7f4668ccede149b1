// Package requestid tags every request with a correlation id.
//
// Middleware accepts a client supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-], otherwise it generates a UUIDv4. The id is
// stored in the request context and written back in the response header.
// LoggerExtractor plugs the id into loggers built by the logger package, so
// authentication decisions logged by the authn gate carry request_id.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware, gate.Middleware)
package requestid
