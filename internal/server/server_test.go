package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InvestAdvisor/internal/collector"
	"InvestAdvisor/internal/config"
	"InvestAdvisor/internal/metrics"
	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/recorder"
	"InvestAdvisor/internal/service"
	"InvestAdvisor/internal/strategy"
)

var now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gen := collector.NewGenerator(21, now)
	clients := gen.Clients(3)
	portfolios := []model.Portfolio{gen.Portfolio(&clients[0]), gen.Portfolio(&clients[1])}
	bad := model.ClientProfile{ClientID: "BROKEN", RiskTolerance: "Reckless", FinancialGoal: model.GoalRetirement}
	store := collector.NewFileStore(append(clients, bad), append(portfolios, model.Portfolio{ClientID: "BROKEN"}), gen.MarketTrends())

	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })

	m := metrics.New()
	adv := strategy.NewAdvisor(zerolog.Nop()).WithClock(func() time.Time { return now })
	svc := service.New(collector.NewCollector(store, zerolog.Nop()), adv,
		service.NewSourceFactory(0, true, config.ExplanationRandom), rec, m, zerolog.Nop())

	return New(Config{Addr: ":0", CORSOrigins: []string{"*"}, Log: zerolog.Nop(), Service: svc, Metrics: m}).Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAdviceEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/api/advice/CLIENT0001")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CLIENT0001", body["client_id"])
	assert.Equal(t, strategy.ModelUsed, body["model_used"])
	assert.Len(t, body["overall_advice"], 3)
	assert.Contains(t, body["investment_factors"], model.FactorGoalAlignment)
	runID, ok := body["run_id"].(string)
	require.True(t, ok)

	var resp model.AdviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Recommendations)

	run := get(t, h, "/api/runs/"+runID)
	require.Equal(t, http.StatusOK, run.Code)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(run.Body.Bytes(), &stored))
	assert.Equal(t, "API", stored["trigger"])
	assert.Equal(t, body["recommendations"], stored["recommendations"])

	runs := get(t, h, "/api/clients/CLIENT0001/runs?limit=5")
	require.Equal(t, http.StatusOK, runs.Code)
	var summaries []map[string]any
	require.NoError(t, json.Unmarshal(runs.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, runID, summaries[0]["run_id"])
}

func TestAdviceEndpoint_Errors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/api/advice/CLIENT9999", http.StatusNotFound, "client not found"},
		{"/api/advice/CLIENT0003", http.StatusNotFound, "portfolio not found"},
		{"/api/advice/BROKEN", http.StatusUnprocessableEntity, "invalid enumeration"},
		{"/api/runs/not-a-uuid", http.StatusBadRequest, "invalid run id"},
		{"/api/runs/7b2f4a1e-3c5d-4e6f-8a9b-0c1d2e3f4a5b", http.StatusNotFound, "advice run not found"},
		{"/api/clients/CLIENT0001/runs?limit=zero", http.StatusBadRequest, "limit"},
		{"/api/clients/NOBODY/runs", http.StatusNotFound, "client not found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			assert.Equal(t, tt.status, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.msg)
		})
	}
}

func TestClientsAndMarket(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/api/clients")
	require.Equal(t, http.StatusOK, rec.Code)
	// The listing is raw data, so the invalid BROKEN profile is served as-is.
	var clients []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 4)
	assert.Equal(t, "BROKEN", clients[3]["client_id"])
	assert.Equal(t, "Reckless", clients[3]["risk_tolerance"])

	rec = get(t, h, "/api/market")
	require.Equal(t, http.StatusOK, rec.Code)
	var m model.MarketTrends
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Len(t, m.Trends, len(model.Sectors))
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","clients":4}`, rec.Body.String())

	get(t, h, "/api/advice/CLIENT0002")
	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `investadvisor_advice_requests_total{outcome="ok",trigger="API"} 1`))
}

func TestCORS(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
