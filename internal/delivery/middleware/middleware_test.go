package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"donorhub/config"
	deliverycontext "donorhub/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}

	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func TestRequestIDMiddleware(t *testing.T) {
	logger, _ := newBufferLogger()
	mw := NewRequestIDMiddleware(logger)

	t.Run("reuses caller id", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/users/health", nil)
		req.Header.Set(deliverycontext.HeaderXRequestID, "req-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var seen string
		err := mw.Process(func(c echo.Context) error {
			seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())
			assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", deliverycontext.GetRequestID(c))
		assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	})

	t.Run("mints id when absent", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, mw.Process(func(echo.Context) error { return nil })(c))
		assert.Len(t, rec.Header().Get(deliverycontext.HeaderXRequestID), 36)
	})
}

func TestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		handler   echo.HandlerFunc
		wantLevel string
		wantCode  int
	}{
		{
			name:     "success is quiet outside debug",
			handler:  func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantCode: http.StatusOK,
		},
		{
			name:      "success is logged in debug",
			debug:     true,
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantLevel: "INFO",
			wantCode:  http.StatusOK,
		},
		{
			name:      "client error is logged as warning",
			handler:   func(echo.Context) error { return echo.NewHTTPError(http.StatusNotFound) },
			wantLevel: "WARN",
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "server error is logged as error",
			handler:   func(echo.Context) error { return echo.NewHTTPError(http.StatusInternalServerError) },
			wantLevel: "ERROR",
			wantCode:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug
			mw := NewLoggerMiddleware(logger, cfg)

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users?x=1", nil), rec)

			require.NoError(t, mw.Handle(tt.handler)(c))
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantLevel == "" {
				assert.Zero(t, buf.Len())

				return
			}

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, "/users", line["uri"])
			assert.Equal(t, "x=1", line["query"])
			assert.EqualValues(t, tt.wantCode, line["status"])
		})
	}
}
