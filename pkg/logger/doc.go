// Package logger builds *slog.Logger values with functional options and
// provides helpers for commonly used attributes.
//
// New picks slog.NewJSONHandler or slog.NewTextHandler, applies static
// attributes and, when ContextExtractor callbacks are registered, wraps the
// handler so each record also carries values pulled from its context (for
// example the request id of an HTTP request).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "miscutils"),
//	    logger.WithContextExtractors(requestIDFromContext),
//	)
//	log.InfoContext(ctx, "html cleaned", logger.Bytes(n), logger.Error(err))
//
// Error and RequestID return an empty slog.Attr for empty input, so they can
// be passed unconditionally.
package logger
