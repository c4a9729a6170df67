package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/bigm"
	"github.com/askiada/bigm/internal/config"
	"github.com/askiada/bigm/internal/logging"
)

const problemYAML = `
direction: max
objective: [3, 5]
constraints:
  - {coefficients: [1, 0], relation: "<=", rhs: 4}
  - {coefficients: [0, 2], relation: "<=", rhs: 12}
  - {coefficients: [3, 2], relation: ">=", rhs: 6}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func problemFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSolveText(t *testing.T) {
	out, err := run(t, "solve", problemFile(t, problemYAML))
	require.NoError(t, err)

	assert.Contains(t, out, "Maximize Z = 3x1 + 5x2")
	assert.Contains(t, out, "Constraint 3: add surplus variable E1 and artificial variable A1")
	assert.Contains(t, out, "Iteration 4")
	assert.Contains(t, out, "Optimal value: 42")
}

func TestSolveJSON(t *testing.T) {
	out, err := run(t, "solve", "--output", "json", "--rule", "bland", problemFile(t, problemYAML))
	require.NoError(t, err)

	var res struct {
		Solution bigm.Solution `json:"solution"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 42.0, res.Solution.OptimalValue, 1e-6)
}

func TestSolveFlagErrors(t *testing.T) {
	path := problemFile(t, problemYAML)

	_, err := run(t, "solve", "--max-iter", "2", path)
	assert.ErrorIs(t, err, bigm.ErrIterationLimit)

	_, err = run(t, "solve", "--rule", "random", path)
	assert.ErrorIs(t, err, bigm.ErrInvalidOption)

	_, err = run(t, "solve", "--output", "xml", path)
	assert.Error(t, err)

	_, err = run(t, "solve")
	assert.Error(t, err)

	_, err = run(t, "solve", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLogLevelFlagValidated(t *testing.T) {
	path := problemFile(t, problemYAML)

	_, err := run(t, "--log-level", "verbose", "solve", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")

	_, err = run(t, "--log-level", "DEBUG", "solve", path)
	assert.NoError(t, err)
}

func TestSolveInfeasible(t *testing.T) {
	path := problemFile(t, `
objective: [1]
constraints:
  - {coefficients: [1], relation: "<=", rhs: 1}
  - {coefficients: [1], relation: ">=", rhs: 2}
`)
	_, err := run(t, "solve", path)
	require.NoError(t, err)

	_, err = run(t, "solve", "--check-feasibility", path)
	assert.ErrorIs(t, err, bigm.ErrInfeasible)
}

func TestServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	conf, err := config.Load("")
	require.NoError(t, err)
	conf.Server.Addr = addr
	a := &app{conf: conf, logger: logging.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
