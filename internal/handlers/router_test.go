package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
	"github.com/ammerola/reorder-engine/internal/handlers"
	"github.com/ammerola/reorder-engine/internal/handlers/middleware"
	"github.com/ammerola/reorder-engine/test/helpers"
	"github.com/ammerola/reorder-engine/test/mocks"
)

func TestRouter(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.Server.EnableMetrics = true

	ctrl := gomock.NewController(t)
	service := mocks.NewMockReorderService(ctrl)
	summaries := mocks.NewMockRunSummaryStore(ctrl)
	database := mocks.NewMockDatabase(ctrl)
	r := helpers.SetupTestRedis(t)

	reorder := handlers.NewReorderHandler(service, summaries, nil, handlers.ReorderHandlerConfig{RunTimeout: time.Minute}, helpers.TestLogger())
	health := handlers.NewHealthHandler(database, r.Client, nil, nil, cfg, helpers.TestLogger())
	router := handlers.NewRouter(cfg, reorder, health, helpers.TestLogger())

	token, err := middleware.IssueToken(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, "ops", time.Hour)
	require.NoError(t, err)

	send := func(method, path string, authed bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if authed {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("trigger_requires_token", func(t *testing.T) {
		w := send(http.MethodPost, "/api/v1/reorder/run", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotEmpty(t, w.Header().Get(cfg.Security.RequestIDHeader))
	})

	t.Run("authenticated_run", func(t *testing.T) {
		service.EXPECT().RunScheduled(gomock.Any(), gomock.Any()).Return(domain.NewRunResult(time.Now()), nil)
		summaries.EXPECT().SaveLastRun(gomock.Any(), gomock.Any()).Return(nil)

		w := send(http.MethodPost, "/api/v1/reorder/run", true)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("last_run_requires_token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, send(http.MethodGet, "/api/v1/reorder/runs/last", false).Code)

		summaries.EXPECT().LastRun(gomock.Any()).Return(nil, ports.ErrCacheMiss)
		assert.Equal(t, http.StatusNotFound, send(http.MethodGet, "/api/v1/reorder/runs/last", true).Code)
	})

	t.Run("wrong_method", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, send(http.MethodGet, "/api/v1/reorder/run", true).Code)
	})

	t.Run("readiness_is_public", func(t *testing.T) {
		database.EXPECT().Ping(gomock.Any()).Return(nil)
		assert.Equal(t, http.StatusOK, send(http.MethodGet, "/ready", false).Code)
	})

	t.Run("metrics_exposed", func(t *testing.T) {
		w := send(http.MethodGet, "/metrics", false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
	})
}

func TestRouter_AuthRunsBeforeRateLimit(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.Security.RateLimitRequests = 1

	ctrl := gomock.NewController(t)
	service := mocks.NewMockReorderService(ctrl)
	summaries := mocks.NewMockRunSummaryStore(ctrl)
	r := helpers.SetupTestRedis(t)

	reorder := handlers.NewReorderHandler(service, summaries, nil, handlers.ReorderHandlerConfig{RunTimeout: time.Minute}, helpers.TestLogger())
	health := handlers.NewHealthHandler(mocks.NewMockDatabase(ctrl), r.Client, nil, nil, cfg, helpers.TestLogger())
	router := handlers.NewRouter(cfg, reorder, health, helpers.TestLogger())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reorder/run", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "unauthenticated callers never reach the limiter")
	}

	token, err := middleware.IssueToken(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, "ops", time.Hour)
	require.NoError(t, err)
	service.EXPECT().RunScheduled(gomock.Any(), gomock.Any()).Return(domain.NewRunResult(time.Now()), nil)
	summaries.EXPECT().SaveLastRun(gomock.Any(), gomock.Any()).Return(nil)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reorder/run", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
