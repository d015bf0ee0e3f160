package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tariff-engine/core/quote"
	"tariff-engine/internal/errors"
	"tariff-engine/internal/logging"
)

// Handler handles quote requests. It delegates everything to the engine;
// transport concerns stay here.
type Handler struct {
	engine   *quote.Engine
	metrics  *Metrics
	validate *validator.Validate
}

// NewHandler creates a handler over a quote engine.
func NewHandler(engine *quote.Engine, metrics *Metrics) *Handler {
	return &Handler{
		engine:   engine,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// HandleQuote handles POST /quote.
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestIDFrom(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var dto QuoteRequestDTO
	if err := dec.Decode(&dto); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_input", "")
		return
	}

	// Shape checks on the DTO; range and ordering rules run inside the
	// engine's validator.
	if err := h.validate.Struct(&dto); err != nil {
		field := ""
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			field = jsonFieldName(verrs[0].Field())
		}
		h.writeError(w, http.StatusBadRequest, "invalid_input", field)
		return
	}

	decision, err := h.engine.Quote(dto.toRaw())
	if err != nil {
		if errors.IsType(err, errors.TypeValidation) {
			h.writeError(w, http.StatusBadRequest, "invalid_input", errors.Field(err))
			return
		}
		logging.Error("quote failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	h.metrics.ObserveQuote(string(decision.Verdict), time.Since(start))
	logging.Info("quote served",
		zap.String("request_id", requestID),
		zap.String("verdict", string(decision.Verdict)),
		zap.String("tariff_version", decision.TariffVersion))

	h.writeJSON(w, http.StatusOK, newQuoteResponse(requestID, decision))
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponseDTO{
		Status:        "ok",
		TariffVersion: h.engine.TariffVersion(),
	})
}

// HandleVersion handles GET /version.
func (h *Handler) HandleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"engine":  "tariff-engine",
		"version": Version,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, field string) {
	h.writeJSON(w, status, ErrorResponseDTO{
		Error: ErrorDetailDTO{Code: code, Field: field},
	})
}

// jsonFieldName maps DTO struct field names to their wire names for error
// reporting.
func jsonFieldName(structField string) string {
	switch structField {
	case "CargoClassID":
		return "cargo_class_id"
	case "SumInsured":
		return "sum_insured"
	case "Condition":
		return "condition"
	case "Franchise":
		return "franchise"
	case "IsReefer":
		return "is_reefer"
	case "RouteZone":
		return "route_zone"
	}
	return structField
}
