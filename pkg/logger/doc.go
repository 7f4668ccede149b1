// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped attributes from context.Context.
//
// New picks slog's text or JSON handler and wraps it in LogHandlerDecorator,
// which runs every registered ContextExtractor on each record. Environment
// presets (WithDevelopment, WithStaging, WithProduction) set level, format and
// the service/env attributes. NewFromConfig does the same from a Config loaded
// with the config package (APP_ENV, SERVICE_NAME, LOG_LEVEL, LOG_FORMAT).
//
//	log := logger.NewFromConfig(cfg,
//	    logger.WithContextExtractors(requestid.LoggerExtractor(), authn.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "authenticator rejected",
//	    logger.AuthenticatorID(a.ID),
//	    logger.ValidationCodes(verrs.Codes()),
//	)
//
// Attribute helpers (Error, Errors, AuthenticatorID, ValidationCodes, ...)
// return an empty slog.Attr for empty input, so callers can pass them
// unconditionally.
package logger
