package sanitizeapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/miscutils/pkg/htmlsanitize"
	"github.com/dmitrymomot/miscutils/pkg/httpserver"
	"github.com/dmitrymomot/miscutils/pkg/logger"
	"github.com/dmitrymomot/miscutils/pkg/requestid"
)

// DefaultMaxBodyBytes caps request bodies unless WithMaxBodyBytes says otherwise.
const DefaultMaxBodyBytes int64 = 1 << 20

type config struct {
	maxBodyBytes int64
	logger       *slog.Logger
}

// Option configures the router.
type Option func(*config)

// WithLogger sets the request logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxBodyBytes limits request body size. Non-positive values keep the default.
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

type handler struct {
	cleaner *htmlsanitize.Cleaner
	cfg     config
}

// Router mounts the sanitizer routes. A nil cleaner uses htmlsanitize.DefaultCleaner.
func Router(c *htmlsanitize.Cleaner, opts ...Option) chi.Router {
	cfg := config{
		maxBodyBytes: DefaultMaxBodyBytes,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.logger = cfg.logger.With(logger.Component("sanitizeapi"))
	if c == nil {
		c = htmlsanitize.DefaultCleaner()
	}
	h := &handler{cleaner: c, cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(cfg.logger))
	r.Post("/clean", h.serve(h.cleaner.Clean))
	r.Post("/markdown", h.serve(h.cleaner.CleanMarkdown))

	return r
}

func (h *handler) serve(clean func(string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.cfg.logger.WarnContext(ctx, "request body too large", slog.Int64("limit", tooLarge.Limit))
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			h.cfg.logger.ErrorContext(ctx, "read request body", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		out, err := clean(string(body))
		if err != nil {
			h.cfg.logger.ErrorContext(ctx, "sanitize request", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		h.cfg.logger.DebugContext(ctx, "sanitized",
			slog.String("path", r.URL.Path),
			logger.Bytes(len(body)),
		)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, out)
	}
}
