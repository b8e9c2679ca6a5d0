package scenario

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/events"
)

// BaselineSource provides stored risk baselines for scenario analysis.
// Implemented by the risks repository.
type BaselineSource interface {
	// BaselineForWorkPackage returns the baseline risk for a work package,
	// or ErrBaselineNotFound when no risk record exists for it.
	BaselineForWorkPackage(workPackageID string) (*RiskBaseline, error)
}

// ErrBaselineNotFound is returned by a BaselineSource when a work package
// has no stored risk record.
var ErrBaselineNotFound = errors.New("no risk baseline for work package")

// Handler handles scenario analysis HTTP requests
type Handler struct {
	baselines     BaselineSource
	bus           *events.Bus
	remainingDays int
	log           zerolog.Logger
	now           func() time.Time
}

// NewHandler creates a new scenario handler. remainingDays is the configured
// number of days to contractual completion absent any delay.
func NewHandler(baselines BaselineSource, bus *events.Bus, remainingDays int, log zerolog.Logger) *Handler {
	return &Handler{
		baselines:     baselines,
		bus:           bus,
		remainingDays: remainingDays,
		log:           log.With().Str("handler", "scenario").Logger(),
		now:           time.Now,
	}
}

// RegisterRoutes registers scenario analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/scenario", func(r chi.Router) {
		r.Post("/analyze", h.HandleAnalyze)
	})
}

// HandleAnalyze handles POST /api/scenario/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.WorkPackageID == "" {
		h.writeError(w, http.StatusBadRequest, "work_package_id is required")
		return
	}

	// The baseline lookup happens before any calculation: a missing record
	// is a 404, never a computed result.
	baseline, err := h.baselines.BaselineForWorkPackage(req.WorkPackageID)
	if err != nil {
		if errors.Is(err, ErrBaselineNotFound) {
			h.writeError(w, http.StatusNotFound, "Risk not found")
			return
		}
		h.log.Error().Err(err).Str("work_package_id", req.WorkPackageID).Msg("Failed to load risk baseline")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := Compute(*baseline, req, h.remainingDays, h.now())
	if err != nil {
		if errors.Is(err, ErrInvalidDelay) {
			h.writeError(w, http.StatusBadRequest, "delay_weeks must be positive")
			return
		}
		h.log.Error().Err(err).Str("work_package_id", req.WorkPackageID).Msg("Scenario calculation failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.bus != nil {
		h.bus.Publish(&events.ScenarioAnalyzedData{
			WorkPackageID: req.WorkPackageID,
			DelayWeeks:    req.DelayWeeks,
			BudgetImpact:  result.BudgetImpact,
			RiskLevel:     string(result.RiskLevel),
		})
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
