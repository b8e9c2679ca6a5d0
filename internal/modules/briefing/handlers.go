package briefing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/modules/projects"
)

// Handler handles executive brief HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new briefing handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "briefing").Logger(),
	}
}

// RegisterRoutes registers executive brief routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/executive-brief", func(r chi.Router) {
		r.Post("/generate", h.HandleGenerate)
		r.Get("/latest", h.HandleLatest)
	})
}

// HandleGenerate handles POST /api/executive-brief/generate?project_id=
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		h.writeError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	brief, err := h.service.Generate(projectID)
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			h.writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.log.Error().Err(err).Str("project_id", projectID).Msg("Failed to generate brief")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, brief)
}

// HandleLatest handles GET /api/executive-brief/latest?project_id=
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		h.writeError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	brief, err := h.service.Latest(projectID)
	if err != nil {
		if errors.Is(err, ErrNoBriefs) {
			h.writeError(w, http.StatusNotFound, "No briefs generated for this project")
			return
		}
		h.log.Error().Err(err).Str("project_id", projectID).Msg("Failed to load latest brief")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, brief)
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
