package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfeed/digest"
	"dailyfeed/logger"
	"dailyfeed/metrics"
	"dailyfeed/orchestrator"
	"dailyfeed/summarizer"
	"dailyfeed/types"
)

type fakeRunner struct {
	resp    orchestrator.Response
	report  *orchestrator.Report
	err     error
	runs    int
	ctxErr  error
	block   chan struct{}
	started chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context) orchestrator.Response {
	f.runs++
	f.ctxErr = ctx.Err()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.resp
}

func (f *fakeRunner) Prepare(ctx context.Context) (*orchestrator.Report, error) {
	f.ctxErr = ctx.Err()
	return f.report, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := NewRouter(NewServer(&fakeRunner{}, logger.NewNop()))

	w := serve(r, http.MethodGet, "/api/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRunSuccess(t *testing.T) {
	runner := &fakeRunner{resp: orchestrator.Response{StatusCode: 200, Body: orchestrator.BodySuccess}}
	r := NewRouter(NewServer(runner, logger.NewNop()))

	w := serve(r, http.MethodPost, "/api/run")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"statusCode":200,"body":"Daily Feed Summary process completed successfully"}`, w.Body.String())
	assert.Equal(t, 1, runner.runs)
}

func TestRunFailureStatus(t *testing.T) {
	runner := &fakeRunner{resp: orchestrator.Response{StatusCode: 500, Body: "Error: boom"}}
	r := NewRouter(NewServer(runner, logger.NewNop()))

	w := serve(r, http.MethodPost, "/api/run")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error: boom")
}

func TestRunRejectsOverlap(t *testing.T) {
	runner := &fakeRunner{
		resp:    orchestrator.Response{StatusCode: 200},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	r := NewRouter(NewServer(runner, logger.NewNop()))

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- serve(r, http.MethodPost, "/api/run") }()

	select {
	case <-runner.started:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not start")
	}

	w := serve(r, http.MethodPost, "/api/run")
	assert.Equal(t, http.StatusConflict, w.Code)

	close(runner.block)
	first := <-done
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, runner.runs)
}

func TestRunMethodNotRouted(t *testing.T) {
	r := NewRouter(NewServer(&fakeRunner{}, logger.NewNop()))

	w := serve(r, http.MethodGet, "/api/run")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreview(t *testing.T) {
	report := &orchestrator.Report{
		Date:    time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		Entries: []types.FeedEntry{{Title: "Fresh post", Link: "https://example.com/fresh"}},
		Summary: summarizer.Result{Text: "Models shipped."},
		Digest:  digest.Digest{Text: "DAILY FEED SUMMARY"},
	}
	r := NewRouter(NewServer(&fakeRunner{report: report}, logger.NewNop()))

	w := serve(r, http.MethodGet, "/api/preview")
	require.Equal(t, http.StatusOK, w.Code)

	var got previewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Friday, March 07, 2025", got.Date)
	assert.Equal(t, "Daily Feed Summary - 2025-03-07", got.Subject)
	assert.Equal(t, "Models shipped.", got.Summary)
	assert.True(t, got.SummaryOK)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "Fresh post", got.Entries[0].Title)
}

func TestPreviewError(t *testing.T) {
	r := NewRouter(NewServer(&fakeRunner{err: errors.New("render failed")}, logger.NewNop()))

	w := serve(r, http.MethodGet, "/api/preview")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "render failed")
}

func TestMetricsRecordRuns(t *testing.T) {
	m := metrics.NewMetrics(nil)
	runner := &fakeRunner{resp: orchestrator.Response{StatusCode: 200}}
	r := NewRouter(NewServer(runner, logger.NewNop(), WithMetrics(m)))

	serve(r, http.MethodPost, "/api/run")
	w := serve(r, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `dailyfeed_runs_total{status="200"} 1`)
	assert.Contains(t, w.Body.String(), "dailyfeed_run_duration_seconds_count 1")
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Sub: "scheduler",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthRequiredWhenSecretSet(t *testing.T) {
	runner := &fakeRunner{resp: orchestrator.Response{StatusCode: 200}}
	r := NewRouter(NewServer(runner, logger.NewNop(), WithAuthSecret("s3cret")))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signToken(t, "other"), http.StatusUnauthorized},
		{"valid token", "Bearer " + signToken(t, "s3cret"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/run", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
	assert.Equal(t, 1, runner.runs)
}

func TestHealthSkipsAuth(t *testing.T) {
	r := NewRouter(NewServer(&fakeRunner{}, logger.NewNop(), WithAuthSecret("s3cret")))

	w := serve(r, http.MethodGet, "/api/health")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunOutlivesClientDisconnect(t *testing.T) {
	runner := &fakeRunner{resp: orchestrator.Response{StatusCode: 200}}
	r := NewRouter(NewServer(runner, logger.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/run", nil).WithContext(ctx))

	assert.Equal(t, 1, runner.runs)
	assert.NoError(t, runner.ctxErr)
}

func TestPreviewOutlivesClientDisconnect(t *testing.T) {
	runner := &fakeRunner{report: &orchestrator.Report{Empty: true}}
	r := NewRouter(NewServer(runner, logger.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/preview", nil).WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, runner.ctxErr)
}
