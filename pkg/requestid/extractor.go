package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/miscutils/pkg/logger"
)

// LoggerExtractor adds request_id to log records written with a request
// context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
