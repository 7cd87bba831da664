// Package sanitizeapi exposes an htmlsanitize.Cleaner over HTTP.
//
// Routes:
//
//	POST /clean     raw HTML in, sanitized HTML out
//	POST /markdown  markdown in, sanitized HTML out
//	GET  /healthz   liveness probe
//
// Request bodies larger than the configured limit (1 MiB by default) are
// rejected with 413.
//
//	srv := httpserver.New(httpserver.WithAddr(":8080"))
//	err := srv.Run(ctx, sanitizeapi.Router(cleaner, sanitizeapi.WithLogger(log)))
package sanitizeapi
