//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	redis_a "github.com/ammerola/reorder-engine/internal/adapters/redis_adapter"
	"github.com/ammerola/reorder-engine/internal/app"
	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/handlers"
	"github.com/ammerola/reorder-engine/internal/handlers/middleware"
	"github.com/ammerola/reorder-engine/test/helpers"
)

type ReorderE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	token     string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *ReorderE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	cfg := helpers.LoadTestConfig()
	log := helpers.TestLogger()
	engine := app.NewEngine(s.testDB.Database, s.testRedis.Client, cfg, log)

	reorder := handlers.NewReorderHandler(engine.Service, engine.Summaries, engine.Locker,
		handlers.ReorderHandlerConfig{
			RunTimeout: time.Minute,
			LockKey:    redis_a.RunLockKey,
			LockTTL:    time.Minute,
			Location:   time.UTC,
		}, log)
	health := handlers.NewHealthHandler(engine.Database, engine.Redis, nil, engine.Summaries, cfg, log)

	s.server = httptest.NewServer(handlers.NewRouter(cfg, reorder, health, log))
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"

	token, err := middleware.IssueToken(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, "e2e", time.Hour)
	s.Require().NoError(err)
	s.token = token
}

func (s *ReorderE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *ReorderE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *ReorderE2ESuite) TestScheduledRunWorkflow() {
	vendorA, vendorB := uuid.New(), uuid.New()
	low := helpers.CreateTestSKU(helpers.WithVendor(vendorA))
	empty := helpers.CreateTestSKU(helpers.WithVendor(vendorA))
	other := helpers.CreateTestSKU(helpers.WithVendor(vendorB))
	stocked := helpers.CreateTestSKU(helpers.WithVendor(vendorB))
	helpers.SeedCatalog(s.T(), s.testDB.Database, helpers.CatalogFor(
		[]*domain.SKU{low, empty, other, stocked},
		map[uuid.UUID]int{low.ID: 5, empty.ID: 0, other.ID: 19, stocked.ID: 30},
	))

	// 1. No run has happened yet
	resp := s.makeRequest(http.MethodGet, "/reorder/runs/last", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// 2. Full pass creates one PO per vendor
	resp = s.makeRequest(http.MethodPost, "/reorder/run", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var run domain.RunResult
	s.decodeResponse(resp, &run)
	s.True(run.Success)
	s.Empty(run.Errors)
	s.Len(run.PurchaseOrderIDs, 2)
	s.Equal(3, run.Processed)

	// 3. The summary is cached
	resp = s.makeRequest(http.MethodGet, "/reorder/runs/last", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var last domain.RunResult
	s.decodeResponse(resp, &last)
	s.Equal(run.RunID, last.RunID)

	// 4. A second pass finds every low SKU already in flight
	resp = s.makeRequest(http.MethodPost, "/reorder/run", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var again domain.RunResult
	s.decodeResponse(resp, &again)
	s.Empty(again.PurchaseOrderIDs)
	s.Len(again.Skipped, 3)
}

func (s *ReorderE2ESuite) TestManualTriggerWorkflow() {
	vendorID := uuid.New()
	sku := helpers.CreateTestSKU(helpers.WithVendor(vendorID), func(sku *domain.SKU) {
		sku.AutoReorderEnabled = false
	})
	stocked := helpers.CreateTestSKU(helpers.WithVendor(vendorID))
	helpers.SeedCatalog(s.T(), s.testDB.Database, helpers.CatalogFor(
		[]*domain.SKU{sku, stocked},
		map[uuid.UUID]int{sku.ID: 2, stocked.ID: 50},
	))

	// 1. Manual trigger ignores the auto flag
	resp := s.makeRequest(http.MethodPost, "/reorder/skus/"+sku.ID.String(), map[string]string{"trigger": "manual"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var result domain.ManualResult
	s.decodeResponse(resp, &result)
	s.True(result.Success)
	s.Require().NotNil(result.PurchaseOrderID)

	// 2. Repeating it is rejected while the first order is in flight
	resp = s.makeRequest(http.MethodPost, "/reorder/skus/"+sku.ID.String(), nil)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.decodeResponse(resp, &result)
	s.False(result.Success)
	s.NotEmpty(result.Error)

	// 3. Stocked SKU is not below threshold
	resp = s.makeRequest(http.MethodPost, "/reorder/skus/"+stocked.ID.String(), nil)
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// 4. Unknown SKU
	resp = s.makeRequest(http.MethodPost, "/reorder/skus/"+uuid.NewString(), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *ReorderE2ESuite) TestRequiresToken() {
	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/reorder/run", nil)
	s.Require().NoError(err)

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *ReorderE2ESuite) TestHealth() {
	resp, err := s.client.Get(s.server.URL + "/ready")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *ReorderE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *ReorderE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func TestReorderE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(ReorderE2ESuite))
}
