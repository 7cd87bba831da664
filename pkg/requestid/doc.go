// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reuses the client's X-Request-ID header when it is at most 128
// characters of [a-zA-Z0-9_-] and generates a UUIDv4 otherwise. The ID is
// stored in the request context and echoed in the response header.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	http.Handle("/", requestid.Middleware(h))
package requestid
