package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	md "github.com/Astemirdum/library-lending/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerConfig(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.DebugLevel)

	e := echo.New()
	e.Use(middleware.RequestID(), middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(zap.New(core))))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "Book not found") })

	for _, path := range []string{"/ok", "/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	require.Equal(t, zap.InfoLevel, entries[0].Level)
	require.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	require.Equal(t, zap.WarnLevel, entries[1].Level)
	require.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["status"])
	require.NotEmpty(t, entries[1].ContextMap()["request_id"])
}

func TestNewRateLimiter(t *testing.T) {
	t.Parallel()
	e := echo.New()
	e.Use(md.NewRateLimiter(1))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		e.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	require.Equal(t, http.StatusOK, codes[0])
	require.Contains(t, codes, http.StatusTooManyRequests)
}
