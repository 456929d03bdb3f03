// Package server exposes the appraisal engine over a small JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/project-appraisal/internal/appraisal"
	"github.com/iwvelando/project-appraisal/internal/config"
	"github.com/iwvelando/project-appraisal/pkg/constants"
	"github.com/iwvelando/project-appraisal/pkg/output"
	"github.com/iwvelando/project-appraisal/pkg/preoperative"
	"github.com/iwvelando/project-appraisal/pkg/sensitivity"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the appraisal API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Appraisal API endpoint (YAML file upload)
	mux.HandleFunc("/api/appraise", h.handleAppraise)

	// Appraisal API endpoint for editor-driven JSON payloads
	mux.HandleFunc("/api/editor/appraise", h.handleAppraiseEditor)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type appraiseResponse struct {
	Name           string                         `json:"name"`
	RevenueSeries  []float64                      `json:"revenueSeries"`
	ExpenseSeries  []float64                      `json:"expenseSeries"`
	CashFlowSeries []float64                      `json:"cashFlowSeries"`
	Preoperative   []preoperative.BalanceRecord   `json:"preoperative,omitempty"`
	CarryOver      float64                        `json:"carryOver"`
	Indicators     indicatorsPayload              `json:"indicators"`
	Sensitivity    *sensitivity.Grid              `json:"sensitivity,omitempty"`
	ExpenseDetail  []map[string]float64           `json:"expenseDetail,omitempty"`
	Warnings       []string                       `json:"warnings,omitempty"`
	CSV            string                         `json:"csv"`
	Duration       string                         `json:"duration"`
	Config         map[string]interface{}         `json:"config,omitempty"`
}

type indicatorsPayload struct {
	IRRPeriodic   *float64 `json:"irrPeriodic,omitempty"`
	IRRAnnualized *float64 `json:"irrAnnualized,omitempty"`
	IRRComputable bool     `json:"irrComputable"`
	NPV           float64  `json:"npv"`
	ROI           float64  `json:"roi"`
	DiscountRate  float64  `json:"discountRate"`
	PaybackMonths float64  `json:"paybackMonths"`
	PaybackYears  float64  `json:"paybackYears"`
	Recovered     bool     `json:"recovered"`
	Shortfall     float64  `json:"shortfall,omitempty"`
}

func (h *handler) handleAppraise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleAppraise")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleAppraise")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleAppraise")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleAppraise"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleAppraise")
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleAppraise")
		return
	}

	h.runAppraisal(w, configBytes, configMap, start, "server.handleAppraise")
}

func (h *handler) handleAppraiseEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleAppraiseEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleAppraiseEditor")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleAppraiseEditor")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), "server.handleAppraiseEditor")
		return
	}

	h.runAppraisal(w, configBytes, configMap, start, "server.handleAppraiseEditor")
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

func (h *handler) runAppraisal(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	result, err := appraisal.Run(h.logger, *cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to compute appraisal: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := appraiseResponse{
		Name:           result.Name,
		RevenueSeries:  result.RevenueSeries,
		ExpenseSeries:  result.ExpenseSeries,
		CashFlowSeries: result.CashFlowSeries,
		Preoperative:   result.Preoperative,
		CarryOver:      result.CarryOver,
		Indicators:     buildIndicators(result.Indicators),
		Sensitivity:    result.Sensitivity,
		ExpenseDetail:  result.ExpenseDetail,
		Warnings:       warnings,
		CSV:            output.CsvString(result),
		Duration:       elapsed.String(),
		Config:         configMap,
	}

	h.logger.Info("appraisal computed",
		zap.String("op", op),
		zap.String("project", result.Name),
		zap.Int("months", len(result.CashFlowSeries)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func buildIndicators(ind appraisal.Indicators) indicatorsPayload {
	payload := indicatorsPayload{
		IRRComputable: ind.IRRComputable,
		NPV:           ind.NPV,
		ROI:           ind.ROI,
		DiscountRate:  ind.DiscountRate,
		PaybackMonths: ind.Payback.Months,
		PaybackYears:  ind.Payback.Years,
		Recovered:     ind.Payback.Recovered,
		Shortfall:     ind.Payback.Shortfall,
	}
	if ind.IRRComputable {
		periodic := ind.IRRPeriodic
		annualized := ind.IRRAnnualized
		payload.IRRPeriodic = &periodic
		payload.IRRAnnualized = &annualized
	}
	return payload
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("appraisal request failed",
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
