package risks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles risk HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "risks").Logger(),
	}
}

// RegisterRoutes registers risk routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risks", func(r chi.Router) {
		r.Get("/top", h.HandleTopRisks)
		r.Get("/{risk_id}/mitigations", h.HandleGetMitigations)
	})
}

// HandleGetMitigations handles GET /api/risks/{risk_id}/mitigations
func (h *Handler) HandleGetMitigations(w http.ResponseWriter, r *http.Request) {
	riskID := chi.URLParam(r, "risk_id")
	if riskID == "" {
		h.writeError(w, http.StatusBadRequest, "Risk ID is required")
		return
	}

	if _, err := h.repo.Get(riskID); err != nil {
		if errors.Is(err, ErrRiskNotFound) {
			h.writeError(w, http.StatusNotFound, "Risk not found")
			return
		}
		h.log.Error().Err(err).Str("risk_id", riskID).Msg("Failed to load risk")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	mitigations, err := h.repo.MitigationsForRisk(riskID)
	if err != nil {
		h.log.Error().Err(err).Str("risk_id", riskID).Msg("Failed to load mitigations")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if mitigations == nil {
		mitigations = []Mitigation{}
	}

	h.writeJSON(w, http.StatusOK, mitigations)
}

// HandleTopRisks handles GET /api/risks/top?limit=N
func (h *Handler) HandleTopRisks(w http.ResponseWriter, r *http.Request) {
	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	top, err := h.repo.TopByCostImpact(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load top risks")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if top == nil {
		top = []Risk{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"risks": top,
		"count": len(top),
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
