package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/defi-nest/internal/config"
	"github.com/iwvelando/defi-nest/internal/forecast"
	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/internal/simulation"
	"github.com/iwvelando/defi-nest/pkg/constants"
	"github.com/iwvelando/defi-nest/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	engine         *simulation.Engine
	maxTrials      int
	maxRequestSize int64
	version        string
	metrics        *metrics
}

// NewHandler constructs the HTTP handler that serves the simulation API and
// its prometheus metrics.
func NewHandler(logger *zap.Logger, maxTrials int, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxTrials <= 0 {
		maxTrials = constants.DefaultServerMaxTrials
	}
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		engine:         simulation.NewEngine(logger),
		maxTrials:      maxTrials,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		metrics:        newMetrics(),
	}

	mux := http.NewServeMux()
	mux.Handle("/api/presets", h.metrics.instrument("presets", http.HandlerFunc(h.handlePresets)))
	mux.Handle("/api/simulate", h.metrics.instrument("simulate", http.HandlerFunc(h.handleSimulate)))
	mux.Handle("/api/export", h.metrics.instrument("export", http.HandlerFunc(h.handleExport)))
	mux.Handle("/api/version", h.metrics.instrument("version", http.HandlerFunc(h.handleVersion)))
	mux.Handle("/metrics", h.metrics.handler())

	return mux
}

// simulateRequest is the body accepted by the simulate and export endpoints.
type simulateRequest struct {
	Preset     string                    `json:"preset"`
	Parameters config.ParameterOverrides `json:"parameters"`
	Limits     map[string]scenario.Range `json:"limits,omitempty"`
	Trials     int                       `json:"trials"`
	Quarterly  bool                      `json:"quarterly"`
	Seed       *int64                    `json:"seed,omitempty"`
	Bins       int                       `json:"bins"`
	Breakeven  bool                      `json:"breakeven"`
}

type simulateResponse struct {
	forecast.Summary
	CSV string `json:"csv"`
}

type presetResponse struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Parameters  map[string]float64        `json:"parameters"`
	Limits      map[string]scenario.Range `json:"limits"`
}

type presetsResponse struct {
	Presets []presetResponse          `json:"presets"`
	Default string                    `json:"default"`
	Domain  map[string]scenario.Range `json:"domain"`
}

func (h *handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	limits := scenario.DefaultLimits().Ranges()
	domain := make(map[string]scenario.Range, len(scenario.Fields()))
	for _, f := range scenario.Fields() {
		if rng, ok := scenario.DomainRange(f); ok {
			domain[string(f)] = rng
		}
	}

	presets := scenario.Presets()
	response := presetsResponse{
		Presets: make([]presetResponse, 0, len(presets)),
		Default: scenario.DefaultPreset,
		Domain:  domain,
	}
	for _, p := range presets {
		response.Presets = append(response.Presets, presetResponse{
			Name:        p.Name,
			Description: p.Description,
			Parameters:  p.Parameters.Values(),
			Limits:      limits,
		})
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	result, status, err := h.runForecast(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, simulateResponse{
		Summary: result.Summary(),
		CSV:     output.CsvString(result.Results),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	result, status, err := h.runForecast(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.CSVFileName))
	w.Header().Set("X-Run-Id", result.RunID)
	w.WriteHeader(http.StatusOK)
	if err := output.CsvFormat(w, result.Results); err != nil {
		h.logger.Error("failed to write CSV export",
			zap.String("op", op),
			zap.String("run_id", result.RunID),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// runForecast decodes the request body and computes the forecast. The
// returned status is meaningful only when err is non-nil.
func (h *handler) runForecast(w http.ResponseWriter, r *http.Request) (*forecast.Forecast, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var body simulateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request exceeds limit of %d bytes", h.maxRequestSize)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("failed to decode request: %v", err)
	}

	if body.Trials == 0 {
		body.Trials = constants.DefaultTrials
	}
	if body.Trials > h.maxTrials {
		return nil, http.StatusBadRequest,
			fmt.Errorf("trials %d exceeds the server limit of %d", body.Trials, h.maxTrials)
	}

	conf := &config.Configuration{
		Simulation: config.SimulationConfig{
			Preset:     body.Preset,
			Trials:     body.Trials,
			Quarterly:  body.Quarterly,
			Seed:       body.Seed,
			Breakeven:  body.Breakeven,
			Parameters: body.Parameters,
			Limits:     body.Limits,
		},
		Output: config.OutputConfig{
			Histogram: body.Bins > 0,
			Bins:      body.Bins,
		},
	}

	req, err := forecast.FromConfiguration(conf)
	if err != nil {
		return nil, statusFor(err), err
	}

	result, err := forecast.Run(h.logger, h.engine, req)
	if err != nil {
		return nil, statusFor(err), err
	}

	h.metrics.observeForecast(result)
	return result, http.StatusOK, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, scenario.ErrUnknownPreset),
		errors.Is(err, scenario.ErrInvalidParameter),
		errors.Is(err, scenario.ErrInvalidRange),
		errors.Is(err, simulation.ErrInvalidTrials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
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

// statusRecorder captures the response code for the request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func elapsedSeconds(start time.Time) float64 {
	return time.Since(start).Seconds()
}
