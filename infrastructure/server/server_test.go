package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldane/qcost/internal/application"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	pipeline, err := application.NewEstimationPipeline(application.DefaultEngineConfig(), nil)
	require.NoError(t, err)
	return New(pipeline, nil, DefaultConfig())
}

func postEstimate(t *testing.T, s *Server, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleEstimateSuccess(t *testing.T) {
	s := newTestServer(t)

	rec := postEstimate(t, s, map[string]any{
		"domain":              "chemistry",
		"system_size":         10,
		"precision":           0.001,
		"physical_error_rate": 0.0001,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Feasible       bool           `json:"feasible"`
		LogicalQubits  int64          `json:"logical_qubits"`
		PhysicalQubits int64          `json:"physical_qubits"`
		TotalGates     int64          `json:"total_gates"`
		CodeDistance   int            `json:"code_distance"`
		ErrorBudget    map[string]any `json:"error_budget_breakdown"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Feasible)
	assert.Equal(t, int64(13), resp.LogicalQubits)
	assert.Equal(t, int64(2106), resp.PhysicalQubits)
	assert.Equal(t, int64(1_002_000), resp.TotalGates)
	assert.Equal(t, 9, resp.CodeDistance)
	assert.Len(t, resp.ErrorBudget, 2)
}

func TestHandleEstimateInfeasible(t *testing.T) {
	s := newTestServer(t)

	rec := postEstimate(t, s, map[string]any{
		"domain":              "optimization",
		"system_size":         20,
		"precision":           0.01,
		"physical_error_rate": 0.02,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp infeasibleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Feasible)
	assert.Contains(t, resp.Reason, "threshold")
}

func TestHandleEstimateValidationFailure(t *testing.T) {
	s := newTestServer(t)

	rec := postEstimate(t, s, map[string]any{
		"domain":              "chemistry",
		"system_size":         0,
		"precision":           0.001,
		"physical_error_rate": 0.0001,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ValidationError", resp.Error)
	assert.Equal(t, "system_size", resp.Field)
	assert.Equal(t, "must be ≥ 1", resp.Constraint)
}

func TestHandleEstimateUnknownDomainSuggests(t *testing.T) {
	s := newTestServer(t)

	rec := postEstimate(t, s, map[string]any{
		"domain":              "chemisty",
		"system_size":         10,
		"precision":           0.001,
		"physical_error_rate": 0.0001,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "domain", resp.Field)
	assert.Contains(t, resp.Constraint, `did you mean "chemistry"`)
}

func TestHandleEstimateMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "body", resp.Field)
}

func TestHandleDomains(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/domains", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Domains []struct {
			Domain     string   `json:"domain"`
			Name       string   `json:"name"`
			Primitives []string `json:"primitives"`
		} `json:"domains"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Domains, 4)
	assert.Equal(t, "fermi_hubbard", resp.Domains[0].Domain)
	assert.NotEmpty(t, resp.Domains[0].Primitives)
}

func TestHandlePrimitives(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/primitives", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Primitives []struct {
			Type string `json:"type"`
		} `json:"primitives"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Primitives, 4)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRateLimiting(t *testing.T) {
	pipeline, err := application.NewEstimationPipeline(application.DefaultEngineConfig(), nil)
	require.NoError(t, err)

	config := DefaultConfig()
	config.RateLimit = 1
	config.RateBurst = 2
	s := New(pipeline, nil, config)

	body := map[string]any{
		"domain":              "chemistry",
		"system_size":         4,
		"precision":           0.01,
		"physical_error_rate": 0.0001,
	}

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		codes = append(codes, postEstimate(t, s, body).Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Contains(t, codes, http.StatusTooManyRequests)

	// Read-only endpoints are not rate limited.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
