package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/portfolio-optimizer/internal/catalog"
	"github.com/iwvelando/portfolio-optimizer/internal/config"
	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
	"github.com/iwvelando/portfolio-optimizer/pkg/optimization"
	"github.com/iwvelando/portfolio-optimizer/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandler(t *testing.T, maxUploadSize int64) http.Handler {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("data", 0o755))
	require.NoError(t, afero.WriteFile(fs, "data/abc.csv", []byte(testutil.ABCCSV), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/actions.csv", []byte(testutil.ActionsCSV), 0o644))

	return NewHandler(zap.NewNop(), config.Default(), catalog.NewDirSource(fs, "data"), maxUploadSize, "1.2.3")
}

// performUpload posts a multipart form to path. An empty filename sends no file part.
func performUpload(t *testing.T, handler http.Handler, path, content, filename string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp["error"]
}

func TestHandleSolveSuccess(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := performUpload(t, handler, "/api/solve", testutil.ABCCSV, "uploads/abc.csv",
		map[string]string{"budget": "500", "strategy": "dp"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var report optimization.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))

	assert.NotEmpty(t, report.RequestID)
	assert.Equal(t, rr.Header().Get(RequestIDHeader), report.RequestID)
	assert.Equal(t, "abc.csv", report.Dataset)
	assert.Equal(t, knapsack.StrategyDynamic, report.Strategy)
	assert.True(t, report.Exact)
	assert.Equal(t, 500.0, report.Budget)
	assert.Equal(t, []string{"A", "C"}, report.IDs())
	assert.InDelta(t, 150.0, report.TotalProfit, 1e-9)
	assert.InDelta(t, 350.0, report.TotalCost, 1e-9)
	assert.NotNil(t, report.Skipped)
}

func TestHandleSolveDefaultsAndDataset(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := performUpload(t, handler, "/api/solve", "", "", map[string]string{"dataset": "actions.csv"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var report optimization.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, "actions.csv", report.Dataset)
	assert.Equal(t, constants.DefaultBudget, report.Budget)
	assert.Equal(t, constants.DefaultStrategy, report.Strategy)
	assert.Equal(t, 20, report.Candidates)
	assert.LessOrEqual(t, report.TotalCost, constants.DefaultBudget)

	rr = performUpload(t, handler, "/api/solve", "", "", map[string]string{"dataset": "missing.csv"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, decodeError(t, rr))
}

func TestHandleSolveNamedDatasetErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("data", 0o755))
	require.NoError(t, afero.WriteFile(fs, "data/broken.csv", []byte("name,price,profit\nA,abc,1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/columns.csv", []byte("name,price\nA,1\n"), 0o644))
	handler := NewHandler(zap.NewNop(), config.Default(), catalog.NewDirSource(fs, "data"), constants.DefaultMaxUploadSizeBytes, "1.2.3")

	tests := []struct {
		name    string
		dataset string
		status  int
		message string
	}{
		{"Malformed record", "broken.csv", http.StatusUnprocessableEntity, "line 2"},
		{"Missing column", "columns.csv", http.StatusUnprocessableEntity, "invalid catalog"},
		{"Unknown dataset", "missing.csv", http.StatusNotFound, "unknown dataset"},
		{"Path traversal", "../x.csv", http.StatusBadRequest, "invalid dataset name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := performUpload(t, handler, "/api/solve", "", "", map[string]string{"dataset": tt.dataset})
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Contains(t, decodeError(t, rr), tt.message)
		})
	}
}

func TestHandleSolveErrors(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	tests := []struct {
		name     string
		content  string
		filename string
		fields   map[string]string
		status   int
		message  string
	}{
		{"Missing file", "", "", nil, http.StatusBadRequest, "missing catalog file"},
		{"Malformed budget", testutil.ABCCSV, "abc.csv", map[string]string{"budget": "lots"}, http.StatusBadRequest, "invalid budget"},
		{"Negative budget", testutil.ABCCSV, "abc.csv", map[string]string{"budget": "-5"}, http.StatusUnprocessableEntity, "negative"},
		{"Budget above maximum", testutil.ABCCSV, "abc.csv", map[string]string{"budget": "1e16"}, http.StatusUnprocessableEntity, "exceeds the supported maximum"},
		{"Infinite budget", testutil.ABCCSV, "abc.csv", map[string]string{"budget": "+Inf"}, http.StatusUnprocessableEntity, "finite"},
		{"Unknown strategy", testutil.ABCCSV, "abc.csv", map[string]string{"strategy": "annealing"}, http.StatusUnprocessableEntity, "unknown strategy"},
		{"Missing column", "name,price\nA,1\n", "abc.csv", nil, http.StatusUnprocessableEntity, "invalid catalog"},
		{"Malformed cost", "name,price,profit\nA,abc,1\n", "abc.csv", nil, http.StatusUnprocessableEntity, "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := performUpload(t, handler, "/api/solve", tt.content, tt.filename, tt.fields)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Contains(t, decodeError(t, rr), tt.message)
			assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
		})
	}
}

func TestHandleSolveMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	for _, path := range []string{"/api/solve", "/api/compare"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, path)
		assert.Equal(t, http.StatusText(http.StatusMethodNotAllowed), decodeError(t, rr))
	}
}

func TestHandleSolveUploadTooLarge(t *testing.T) {
	handler := newTestHandler(t, 64)

	rr := performUpload(t, handler, "/api/solve", strings.Repeat("a", 128), "abc.csv", nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, decodeError(t, rr), "upload exceeds limit")
}

func TestHandleCompare(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := performUpload(t, handler, "/api/compare", testutil.ABCCSV, "abc.csv",
		map[string]string{"budget": "500", "strategies": "dynamic, ratio"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var comparison optimization.Comparison
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &comparison))
	assert.Equal(t, rr.Header().Get(RequestIDHeader), comparison.RequestID)
	assert.InDelta(t, 150.0, comparison.Optimum, 1e-9)
	require.Len(t, comparison.Entries, 2)
	assert.Equal(t, knapsack.StrategyDynamic, comparison.Entries[0].Report.Strategy)
	assert.Equal(t, knapsack.StrategyGreedy, comparison.Entries[1].Report.Strategy)
	assert.Equal(t, comparison.RequestID, comparison.Entries[1].Report.RequestID)

	rr = performUpload(t, handler, "/api/compare", testutil.ABCCSV, "abc.csv",
		map[string]string{"strategies": "dynamic,annealing"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleCompareAllStrategies(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := performUpload(t, handler, "/api/compare", "", "", map[string]string{"dataset": "abc.csv", "budget": "100"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var comparison optimization.Comparison
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &comparison))
	assert.Len(t, comparison.Entries, len(knapsack.Strategies()))
	for _, entry := range comparison.Entries {
		assert.True(t, entry.MatchesOptimum, entry.Report.Strategy)
		assert.Equal(t, []string{"A"}, entry.Report.IDs())
	}
}

func TestHandleMetadataEndpoints(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, path)
		return rr
	}

	var version map[string]string
	require.NoError(t, json.Unmarshal(get("/api/version").Body.Bytes(), &version))
	assert.Equal(t, "1.2.3", version["version"])

	var strategies struct {
		Default            string         `json:"default"`
		ExhaustiveMaxItems int            `json:"exhaustiveMaxItems"`
		Strategies         []strategyInfo `json:"strategies"`
	}
	require.NoError(t, json.Unmarshal(get("/api/strategies").Body.Bytes(), &strategies))
	assert.Equal(t, constants.DefaultStrategy, strategies.Default)
	assert.Equal(t, constants.DefaultExhaustiveMaxItems, strategies.ExhaustiveMaxItems)
	require.Len(t, strategies.Strategies, 4)
	assert.Equal(t, strategyInfo{Name: knapsack.StrategyRecursive, Exact: true, Exponential: true}, strategies.Strategies[1])
	assert.False(t, strategies.Strategies[3].Exact)

	var datasets map[string][]string
	require.NoError(t, json.Unmarshal(get("/api/datasets").Body.Bytes(), &datasets))
	assert.Equal(t, []string{"abc.csv", "actions.csv"}, datasets["datasets"])

	var conf map[string]string
	require.NoError(t, json.Unmarshal(get("/api/config").Body.Bytes(), &conf))
	assert.Contains(t, conf["configYaml"], "budget: 500")
	assert.Contains(t, conf["configYaml"], "strategy: dynamic")

	req := httptest.NewRequest(http.MethodPost, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandlerWithoutSource(t *testing.T) {
	handler := NewHandler(nil, nil, nil, 0, " ")

	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"datasets":[]}`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.JSONEq(t, `{"version":"dev"}`, rr.Body.String())

	rr = performUpload(t, handler, "/api/solve", "", "", map[string]string{"dataset": "abc.csv"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerOverHTTP(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, constants.DefaultMaxUploadSizeBytes))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/version")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"version":"1.2.3"}`, string(body))
}

func TestListenAndServe(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	cfg.Address = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, zap.NewNop(), cfg, http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServeInvalidAddress(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	cfg.Address = "not-an-address"

	err = ListenAndServe(context.Background(), nil, cfg, http.NotFoundHandler())
	assert.Error(t, err)
}
