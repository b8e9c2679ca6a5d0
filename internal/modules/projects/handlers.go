package projects

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/modules/risks"
)

const topRiskCount = 3

// Handler handles project dashboard HTTP requests
type Handler struct {
	repo     *Repository
	riskRepo *risks.Repository
	log      zerolog.Logger
}

// NewHandler creates a new project handler
func NewHandler(repo *Repository, riskRepo *risks.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		riskRepo: riskRepo,
		log:      log.With().Str("handler", "projects").Logger(),
	}
}

// RegisterRoutes registers project routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.Get("/{project_id}/dashboard", h.HandleDashboard)
	})
}

// HandleDashboard handles GET /api/projects/{project_id}/dashboard.
// It assembles the Monday-morning briefing view: project header, work
// packages with vendor names, the top risks, and critical items.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	project, err := h.repo.Get(projectID)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			h.writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.log.Error().Err(err).Str("project_id", projectID).Msg("Failed to load project")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	packages, err := h.repo.WorkPackagesForProject(projectID)
	if err != nil {
		h.log.Error().Err(err).Str("project_id", projectID).Msg("Failed to load work packages")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if packages == nil {
		packages = []WorkPackage{}
	}

	topRisks, err := h.riskRepo.TopByCostImpact(topRiskCount)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load top risks")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if topRisks == nil {
		topRisks = []risks.Risk{}
	}

	criticalItems := make([]CriticalItem, 0)
	for _, risk := range topRisks {
		if risk.RiskLevel != "HIGH" && risk.RiskLevel != "CRITICAL" {
			continue
		}
		criticalItems = append(criticalItems, CriticalItem{
			Title:     risk.Title,
			Impact:    fmt.Sprintf("$%.1fM cost, %.0f days delay", risk.ImpactCost/1000000, risk.ImpactDays),
			Reasoning: risk.Reasoning,
		})
	}

	h.writeJSON(w, http.StatusOK, DashboardResponse{
		Project:       project,
		WorkPackages:  packages,
		CriticalItems: criticalItems,
		Summary:       Summarize(packages),
		TopRisks:      topRisks,
		// Demo metric carried over from the prototype dashboard
		TimeSavedToday: "4.5 hrs",
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
