package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/bigm"
	"github.com/askiada/bigm/internal/logging"
	"github.com/askiada/bigm/internal/metrics"
)

func newHandler(t *testing.T) (http.Handler, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	s, err := bigm.NewSolver(bigm.WithHooks(m.Hooks()), bigm.WithInfeasibilityCheck(true))
	require.NoError(t, err)
	return NewHandler(s, Options{Metrics: m.Handler(), Logger: logging.NewNop()}), m
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	h, _ := newHandler(t)
	rr := do(h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestSolve(t *testing.T) {
	h, _ := newHandler(t)
	rr := do(h, http.MethodPost, "/v1/solve", `{
		"direction": "max",
		"objective": [3, 5],
		"constraints": [
			{"coefficients": [1, 0], "relation": "<=", "rhs": 4},
			{"coefficients": [0, 2], "relation": "<=", "rhs": 12},
			{"coefficients": [3, 2], "relation": ">=", "rhs": 6}
		]
	}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp struct {
		StandardizedForm bigm.StandardizedForm `json:"standardizedForm"`
		History          []json.RawMessage     `json:"history"`
		Solution         bigm.Solution         `json:"solution"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 42.0, resp.Solution.OptimalValue, 1e-6)
	assert.InDeltaSlice(t, []float64{4, 6}, resp.Solution.Variables, 1e-6)
	assert.Len(t, resp.History, 5)
	assert.Equal(t, 1, resp.StandardizedForm.VariablesAdded.Artificial)
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			name:   "malformed",
			body:   `{"direction":`,
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name:   "unknown field",
			body:   `{"direction":"max","objective":[1],"weights":[1]}`,
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name:   "invalid",
			body:   `{"direction":"max","objective":[1,2],"constraints":[{"coefficients":[1],"relation":"<=","rhs":1}]}`,
			status: http.StatusBadRequest,
			code:   metrics.OutcomeInvalid,
		},
		{
			name:   "unbounded",
			body:   `{"direction":"max","objective":[1,0],"constraints":[{"coefficients":[1,-1],"relation":"<=","rhs":1}]}`,
			status: http.StatusUnprocessableEntity,
			code:   metrics.OutcomeUnbounded,
		},
		{
			name: "infeasible",
			body: `{"direction":"max","objective":[1],"constraints":[` +
				`{"coefficients":[1],"relation":"<=","rhs":1},{"coefficients":[1],"relation":">=","rhs":2}]}`,
			status: http.StatusUnprocessableEntity,
			code:   metrics.OutcomeInfeasible,
		},
	}
	h, _ := newHandler(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(h, http.MethodPost, "/v1/solve", tc.body)
			assert.Equal(t, tc.status, rr.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

type cancelledSolver struct{}

func (cancelledSolver) Solve(ctx context.Context, _ bigm.Problem) (*bigm.Result, error) {
	return nil, context.Canceled
}

func TestSolveCancelled(t *testing.T) {
	h := NewHandler(cancelledSolver{}, Options{Logger: logging.NewNop()})
	rr := do(h, http.MethodPost, "/v1/solve", `{"direction":"max","objective":[1],"constraints":[]}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestBodyLimit(t *testing.T) {
	h := NewHandler(cancelledSolver{}, Options{Logger: logging.NewNop(), MaxBodyBytes: 8})
	rr := do(h, http.MethodPost, "/v1/solve", `{"direction":"max","objective":[1,2,3]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newHandler(t)
	do(h, http.MethodPost, "/v1/solve", `{"direction":"max","objective":[1,2],"constraints":[{"coefficients":[1,1],"relation":"<=","rhs":6}]}`)

	rr := do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `bigm_solves_total{outcome="optimal"} 1`)

	h = NewHandler(cancelledSolver{}, Options{Logger: logging.NewNop()})
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/metrics", "").Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newHandler(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodGet, "/v1/solve", "").Code)
}
