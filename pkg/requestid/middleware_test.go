package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/miscutils/pkg/logger"
	"github.com/dmitrymomot/miscutils/pkg/requestid"
)

func serve(t *testing.T, header string) (ctxID, respID string) {
	t.Helper()
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return ctxID, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid when missing", func(t *testing.T) {
		t.Parallel()
		ctxID, respID := serve(t, "")
		_, err := uuid.Parse(ctxID)
		require.NoError(t, err)
		assert.Equal(t, ctxID, respID)
	})

	t.Run("reuses valid header", func(t *testing.T) {
		t.Parallel()
		ctxID, respID := serve(t, "abc_DEF-123")
		assert.Equal(t, "abc_DEF-123", ctxID)
		assert.Equal(t, "abc_DEF-123", respID)
	})

	for _, bad := range []string{
		"has space",
		"slash/es",
		"<script>alert(1)</script>",
		strings.Repeat("a", 129),
	} {
		t.Run("replaces "+bad[:min(len(bad), 16)], func(t *testing.T) {
			t.Parallel()
			ctxID, respID := serve(t, bad)
			assert.NotEqual(t, bad, ctxID)
			_, err := uuid.Parse(ctxID)
			require.NoError(t, err)
			assert.Equal(t, ctxID, respID)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Empty(t, requestid.FromContext(nil)) //nolint:staticcheck
	assert.Equal(t, "id-1", requestid.FromContext(requestid.WithContext(context.Background(), "id-1")))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(context.Background(), "no id")
	log.InfoContext(requestid.WithContext(context.Background(), "req-42"), "with id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "request_id")
	assert.Contains(t, lines[1], `"request_id":"req-42"`)
}
