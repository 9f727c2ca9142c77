package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/household-budget/internal/budget"
	"github.com/iwvelando/household-budget/internal/config"
	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	engine        *budget.Engine
	maxUploadSize int64
	version       string
}

// expenseEdits are applied to the configured expense list before recomputing:
// removals first, then additions.
type expenseEdits struct {
	Add    []expenseInput
	Remove []int
}

type expenseInput struct {
	Name   string
	Amount string
}

// NewHandler constructs the HTTP handler that serves the budget API.
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

	h := &handler{
		logger:        logger,
		engine:        budget.NewEngine(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Budget endpoint for editor-driven updates
	mux.HandleFunc("/api/budget", h.handleBudget)

	// Budget endpoint (file upload)
	mux.HandleFunc("/api/budget/upload", h.handleBudgetUpload)

	// Default configuration for new editors
	mux.HandleFunc("/api/defaults", h.handleDefaults)

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	mux.HandleFunc("/api/version", h.handleVersion)

	return withRequestID(logger, mux)
}

type budgetResponse struct {
	Totals     budget.DerivedTotals     `json:"totals"`
	Projection []budget.ProjectionPoint `json:"projection"`
	Expenses   []budget.Expense         `json:"expenses"`
	Loan       budget.LoanSummary       `json:"loan"`
	CSV        string                   `json:"csv"`
	Warnings   []string                 `json:"warnings,omitempty"`
	Duration   string                   `json:"duration"`
	Config     map[string]interface{}   `json:"config,omitempty"`
	ConfigYAML string                   `json:"configYaml,omitempty"`
}

func (h *handler) handleBudget(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBudget"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := make(map[string]interface{})
	if rawConfig, ok := payload["config"]; ok && rawConfig != nil {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "invalid config payload: expected object", op)
			return
		}
		configPayload = cfgMap
	}

	edits, err := parseExpenseEdits(payload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.runBudget(w, r, configBytes, edits, start, op)
}

func (h *handler) handleBudgetUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBudgetUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	h.runBudget(w, r, buf.Bytes(), expenseEdits{}, start, op)
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, config.Default())
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

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// configKeyOrder is the order sections appear in exported YAML; any other
// keys follow alphabetically.
var configKeyOrder = []string{"loan", "income", "household", "expenses", "logging", "output"}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range configKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runBudget(w http.ResponseWriter, r *http.Request, configBytes []byte, edits expenseEdits, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	state, err := cfg.State()
	if err != nil {
		h.respondErrorWithOp(w, r, statusFor(err), err.Error(), op)
		return
	}

	for _, id := range edits.Remove {
		if !state.Expenses.Remove(id) {
			warnings = append(warnings, fmt.Sprintf("expense %d not found, nothing removed", id))
		}
	}
	for _, input := range edits.Add {
		if _, ok := state.Expenses.Add(input.Name, input.Amount); !ok {
			warnings = append(warnings, fmt.Sprintf("expense %q with amount %q skipped", input.Name, input.Amount))
		}
	}

	result, err := h.engine.Recompute(state)
	if err != nil {
		h.respondErrorWithOp(w, r, statusFor(err), fmt.Sprintf("failed to compute budget: %v", err), op)
		return
	}

	// Echo the configuration the result was computed from, edits included.
	cfg.Expenses = cfg.Expenses[:0]
	for _, expense := range result.Expenses {
		cfg.Expenses = append(cfg.Expenses, config.ExpenseConfig{Name: expense.Name, Amount: expense.Amount.InexactFloat64()})
	}
	configMap, configYAML := h.echoConfig(cfg, op)

	elapsed := time.Since(start)
	response := budgetResponse{
		Totals:     result.Totals,
		Projection: result.Projection,
		Expenses:   result.Expenses,
		Loan:       result.Loan,
		CSV:        output.CsvString(result),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: configYAML,
	}

	h.logger.Info("budget computed",
		zap.String("op", op),
		zap.String("request_id", requestID(r)),
		zap.Int("expenses", len(result.Expenses)),
		zap.Float64("net_after_expenses", result.Totals.NetAfterExpenses),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) echoConfig(cfg *config.Configuration, op string) (map[string]interface{}, string) {
	configBytes, err := yaml.Marshal(cfg)
	if err != nil {
		h.logger.Warn("failed to marshal configuration",
			zap.String("op", op),
			zap.Error(err),
		)
		return nil, ""
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.logger.Warn("failed to decode configuration map",
			zap.String("op", op),
			zap.Error(err),
		)
		return nil, string(configBytes)
	}
	return configMap, string(configBytes)
}

func parseExpenseEdits(payload map[string]interface{}) (expenseEdits, error) {
	var edits expenseEdits

	if raw, ok := payload["removeExpenses"]; ok && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return edits, errors.New("invalid removeExpenses payload: expected array")
		}
		for _, item := range list {
			id, ok := coerceID(item)
			if !ok {
				return edits, fmt.Errorf("invalid expense id %v", item)
			}
			edits.Remove = append(edits.Remove, id)
		}
	}

	if raw, ok := payload["addExpenses"]; ok && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return edits, errors.New("invalid addExpenses payload: expected array")
		}
		for _, item := range list {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return edits, errors.New("invalid addExpenses entry: expected object")
			}
			name, _ := entry["name"].(string)
			edits.Add = append(edits.Add, expenseInput{Name: name, Amount: amountText(entry["amount"])})
		}
	}

	return edits, nil
}

// amountText renders a JSON amount as the text a user would have typed.
func amountText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func coerceID(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(v))
		return id, err == nil
	}
	return 0, false
}

func statusFor(err error) int {
	if errors.Is(err, budget.ErrInvalidInput) || errors.Is(err, budget.ErrDuplicateIdentifier) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
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

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("budget request failed",
		zap.String("op", op),
		zap.String("request_id", requestID(r)),
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
