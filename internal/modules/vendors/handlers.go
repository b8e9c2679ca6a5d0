package vendors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/events"
)

// Handler handles vendor HTTP requests
type Handler struct {
	repo *Repository
	bus  *events.Bus
	log  zerolog.Logger
}

// NewHandler creates a new vendor handler
func NewHandler(repo *Repository, bus *events.Bus, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		bus:  bus,
		log:  log.With().Str("handler", "vendors").Logger(),
	}
}

// RegisterRoutes registers vendor routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/vendors", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/{vendor_id}/score", h.HandleUpdateScore)
	})
}

// HandleList handles GET /api/vendors
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list vendors")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	alerts, err := h.repo.ActiveAlerts()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load vendor alerts")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		messages := alerts[v.ID]
		if messages == nil {
			messages = []string{}
		}

		summaries = append(summaries, VendorSummary{
			ID:             v.ID,
			Name:           v.Name,
			Score:          CompositeScore(v.Scores),
			Trend:          v.Trend,
			Alerts:         messages,
			DetailedScores: v.Scores,
		})
	}

	h.writeJSON(w, http.StatusOK, summaries)
}

// HandleUpdateScore handles POST /api/vendors/{vendor_id}/score
func (h *Handler) HandleUpdateScore(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendor_id")
	if vendorID == "" {
		h.writeError(w, http.StatusBadRequest, "Vendor ID is required")
		return
	}

	var scores ScoreInput
	if err := json.NewDecoder(r.Body).Decode(&scores); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	composite := CompositeScore(scores)

	if err := h.repo.UpdateScores(vendorID, scores, composite); err != nil {
		if errors.Is(err, ErrVendorNotFound) {
			h.writeError(w, http.StatusNotFound, "Vendor not found")
			return
		}
		h.log.Error().Err(err).Str("vendor_id", vendorID).Msg("Failed to update vendor scores")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.bus != nil {
		h.bus.Publish(&events.VendorScoreUpdatedData{
			VendorID: vendorID,
			NewScore: composite,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"new_score": composite,
	})
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
