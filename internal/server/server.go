package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/portfolio-optimizer/internal/catalog"
	"github.com/iwvelando/portfolio-optimizer/internal/config"
	"github.com/iwvelando/portfolio-optimizer/internal/optimizer"
	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
	"github.com/iwvelando/portfolio-optimizer/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RequestIDHeader carries the identifier assigned to each API request.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger        *zap.Logger
	conf          *config.Configuration
	source        catalog.Source
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the optimization API.
// Datasets named in requests are read from source; a nil source limits the
// API to uploaded catalogs.
func NewHandler(logger *zap.Logger, conf *config.Configuration, source catalog.Source, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = config.Default()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		conf:          conf,
		source:        source,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Single strategy run (file upload or named dataset)
	mux.HandleFunc("/api/solve", h.handleSolve)

	// Strategy comparison
	mux.HandleFunc("/api/compare", h.handleCompare)

	mux.HandleFunc("/api/strategies", h.handleStrategies)
	mux.HandleFunc("/api/datasets", h.handleDatasets)
	mux.HandleFunc("/api/config", h.handleConfig)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// ListenAndServe serves handler on cfg.Address until ctx is cancelled, then
// shuts the server down gracefully.
func ListenAndServe(ctx context.Context, logger *zap.Logger, cfg *Config, handler http.Handler) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "server.ListenAndServe"),
			zap.String("address", cfg.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	logger.Info("shutting down HTTP server", zap.String("op", "server.ListenAndServe"))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusError pairs an error message with the HTTP status it maps to.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string { return e.msg }

func badRequest(format string, args ...any) *statusError {
	return &statusError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func unprocessable(format string, args ...any) *statusError {
	return &statusError{status: http.StatusUnprocessableEntity, msg: fmt.Sprintf(format, args...)}
}

// request is the parsed form shared by solve and compare.
type request struct {
	id      string
	catalog *catalog.Catalog
	runner  *optimizer.Runner
}

func (h *handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSolve"
	req, ok := h.prepare(w, r, op)
	if !ok {
		return
	}

	strategy := strings.TrimSpace(r.FormValue("strategy"))
	if strategy == "" {
		strategy = h.conf.Strategy
	}
	if _, err := knapsack.Lookup(strategy); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op, req.id)
		return
	}

	report, err := req.runner.Run(req.catalog, strategy)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op, req.id)
		return
	}
	report.RequestID = req.id

	h.logger.Info("solve request served",
		zap.String("op", op),
		zap.String("requestId", req.id),
		zap.String("strategy", report.Strategy),
		zap.Int("items", report.Candidates),
		zap.Float64("budget", report.Budget),
		zap.Float64("profit", report.TotalProfit),
	)
	h.writeJSON(w, http.StatusOK, report)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	req, ok := h.prepare(w, r, op)
	if !ok {
		return
	}

	strategies, err := validation.ValidateStrategies(r.FormValue("strategies"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op, req.id)
		return
	}

	comparison, err := req.runner.Compare(req.catalog, strategies)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op, req.id)
		return
	}
	comparison.RequestID = req.id
	for _, entry := range comparison.Entries {
		entry.Report.RequestID = req.id
	}

	h.logger.Info("compare request served",
		zap.String("op", op),
		zap.String("requestId", req.id),
		zap.Strings("strategies", strategies),
		zap.Int("items", comparison.Candidates),
		zap.Float64("budget", comparison.Budget),
		zap.Float64("profit", comparison.Optimum),
	)
	h.writeJSON(w, http.StatusOK, comparison)
}

// prepare assigns a request id, parses the upload and budget and loads the
// catalog. It writes the error response itself and reports false on failure.
func (h *handler) prepare(w http.ResponseWriter, r *http.Request, op string) (*request, bool) {
	id := uuid.NewString()
	w.Header().Set(RequestIDHeader, id)

	if r.Method != http.MethodPost {
		h.respondErrorWithOp(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), op, id)
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op, id)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op, id)
		return nil, false
	}

	runner, err := h.runnerFor(r.FormValue("budget"))
	if err != nil {
		h.respondStatusError(w, err, op, id)
		return nil, false
	}
	cat, err := h.loadCatalog(r)
	if err != nil {
		h.respondStatusError(w, err, op, id)
		return nil, false
	}
	return &request{id: id, catalog: cat, runner: runner}, true
}

func (h *handler) respondStatusError(w http.ResponseWriter, err error, op string, requestID string) {
	var se *statusError
	if !errors.As(err, &se) {
		se = unprocessable("%v", err)
	}
	h.respondErrorWithOp(w, se.status, se.msg, op, requestID)
}

func (h *handler) runnerFor(rawBudget string) (*optimizer.Runner, error) {
	budget := h.conf.Budget
	if trimmed := strings.TrimSpace(rawBudget); trimmed != "" {
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, badRequest("invalid budget %q", rawBudget)
		}
		budget = parsed
	}
	if err := validation.ValidateBudget(budget); err != nil {
		return nil, unprocessable("%v", err)
	}

	conf := *h.conf
	conf.Budget = budget
	return optimizer.NewRunner(h.logger, &conf)
}

func (h *handler) loadCatalog(r *http.Request) (*catalog.Catalog, error) {
	schema := h.conf.Catalog.Columns

	file, header, err := r.FormFile("file")
	if err == nil {
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				h.logger.Warn("failed to close uploaded file", zap.Error(closeErr))
			}
		}()
		cat, err := catalog.Load(file, schema)
		if err != nil {
			return nil, unprocessable("invalid catalog: %v", err)
		}
		cat.Name = filepath.Base(header.Filename)
		return cat, nil
	}
	if !errors.Is(err, http.ErrMissingFile) {
		return nil, badRequest("failed to read upload: %v", err)
	}

	name := strings.TrimSpace(r.FormValue("dataset"))
	if name == "" || h.source == nil {
		return nil, badRequest("missing catalog file")
	}
	cat, err := catalog.LoadFrom(h.source, name, schema)
	switch {
	case err == nil:
		return cat, nil
	case errors.Is(err, catalog.ErrInvalidDatasetName):
		return nil, badRequest("%v", err)
	case errors.Is(err, fs.ErrNotExist):
		return nil, &statusError{status: http.StatusNotFound, msg: fmt.Sprintf("unknown dataset %q", name)}
	default:
		return nil, unprocessable("invalid catalog: %v", err)
	}
}

type strategyInfo struct {
	Name        string `json:"name"`
	Exact       bool   `json:"exact"`
	Exponential bool   `json:"exponential"`
}

func (h *handler) handleStrategies(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r, "server.handleStrategies") {
		return
	}

	names := knapsack.Strategies()
	infos := make([]strategyInfo, 0, len(names))
	for _, name := range names {
		s, err := knapsack.Lookup(name)
		if err != nil {
			continue
		}
		infos = append(infos, strategyInfo{Name: s.Name(), Exact: s.Exact(), Exponential: s.Exponential()})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"default":            h.conf.Strategy,
		"exhaustiveMaxItems": h.conf.Limits.ExhaustiveMaxItems,
		"strategies":         infos,
	})
}

func (h *handler) handleDatasets(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDatasets"
	if !h.allowGet(w, r, op) {
		return
	}

	names := []string{}
	if h.source != nil {
		listed, err := h.source.Datasets()
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op, "")
			return
		}
		names = append(names, listed...)
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"datasets": names})
}

func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfig"
	if !h.allowGet(w, r, op) {
		return
	}

	yamlBytes, err := yaml.Marshal(h.conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op, "")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r, "server.handleVersion") {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) allowGet(w http.ResponseWriter, r *http.Request, op string) bool {
	if r.Method == http.MethodGet {
		return true
	}
	h.respondErrorWithOp(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), op, "")
	return false
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string, requestID string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
