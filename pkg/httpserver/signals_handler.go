package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
	"go.uber.org/zap"
)

// SignalSource exposes the most recent signals produced by the engine.
type SignalSource interface {
	RecentSignals() []types.Signal
}

// SignalsHandler handles HTTP requests for recent trading signals.
type SignalsHandler struct {
	source SignalSource
	logger *zap.Logger
}

// NewSignalsHandler creates a new signals handler.
func NewSignalsHandler(source SignalSource, logger *zap.Logger) *SignalsHandler {
	return &SignalsHandler{
		source: source,
		logger: logger,
	}
}

// SignalsResponse represents the HTTP response for recent signals.
type SignalsResponse struct {
	Count   int            `json:"count"`
	Signals []types.Signal `json:"signals"`
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleSignals handles GET /api/signals?strategy=<name> requests.
// The strategy filter is optional; without it all recent signals are returned.
func (h *SignalsHandler) HandleSignals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	strategy := r.URL.Query().Get("strategy")

	h.logger.Debug("signals-request-received", zap.String("strategy", strategy))

	signals := h.source.RecentSignals()

	if strategy != "" {
		filtered := make([]types.Signal, 0, len(signals))
		for _, sig := range signals {
			if strings.EqualFold(sig.StrategyName, strategy) {
				filtered = append(filtered, sig)
			}
		}
		signals = filtered
	}

	response := SignalsResponse{
		Count:   len(signals),
		Signals: signals,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

// writeError writes a JSON error response.
func (h *SignalsHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: message}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-error-response", zap.Error(err))
	}
}
