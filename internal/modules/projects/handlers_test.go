package projects

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latsoguy/latso-mvp-demo/internal/modules/risks"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/vendors"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, vendors.InitSchema(db))
	require.NoError(t, InitSchema(db))
	require.NoError(t, risks.InitSchema(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func TestHandleDashboard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())
	riskRepo := risks.NewRepository(db, 2.0, zerolog.Nop())
	handler := NewHandler(repo, riskRepo, zerolog.Nop())

	vendorRepo := vendors.NewRepository(db, zerolog.Nop())
	require.NoError(t, vendorRepo.Create(&vendors.Vendor{
		ID: "v-abc", Name: "ABC Electrical", PerformanceScore: 67,
		Scores: vendors.ScoreInput{OnTime: 60, Quality: 80, Cost: 65, Communication: 70},
		Trend:  "down",
	}))

	require.NoError(t, repo.Create(&Project{
		ID:     "proj-port",
		Name:   "Port Expansion Project - Phase 2",
		Budget: 75000000,
		Status: "active",
	}))
	require.NoError(t, repo.CreateWorkPackage(&WorkPackage{
		ID: "wp-electrical", ProjectID: "proj-port", Name: "Electrical Systems",
		Budget: 18000000, CompletionPercentage: 45, Status: "at-risk",
		RiskLevel: "HIGH", VendorID: "v-abc",
	}))
	require.NoError(t, repo.CreateWorkPackage(&WorkPackage{
		ID: "wp-struct", ProjectID: "proj-port", Name: "Foundation & Structural",
		Budget: 12000000, CompletionPercentage: 78, Status: "in-progress",
		RiskLevel: "LOW", VendorID: "v-abc",
	}))
	require.NoError(t, riskRepo.Create(&risks.Risk{
		ID: "risk-electrical", WorkPackageID: "wp-electrical",
		Title: "Vendor performance decline", ImpactCost: 2300000, ImpactDays: 18,
		RiskLevel: "HIGH", Reasoning: "Missed 3/5 recent milestones",
	}))

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest("GET", "/projects/proj-port/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "Port Expansion Project - Phase 2", response.Project.Name)
	require.Len(t, response.WorkPackages, 2)

	// Vendor names are joined in
	for _, wp := range response.WorkPackages {
		assert.Equal(t, "ABC Electrical", wp.VendorName)
	}

	require.Len(t, response.TopRisks, 1)
	assert.Equal(t, "Electrical Systems", response.TopRisks[0].WorkPackageName)

	require.Len(t, response.CriticalItems, 1)
	assert.Equal(t, "Vendor performance decline", response.CriticalItems[0].Title)
	assert.Equal(t, "$2.3M cost, 18 days delay", response.CriticalItems[0].Impact)
	assert.Equal(t, "Missed 3/5 recent milestones", response.CriticalItems[0].Reasoning)

	assert.Equal(t, 1, response.Summary.AtRiskPackages)
	assert.Equal(t, 18000000.0, response.Summary.AtRiskBudget)
	assert.Equal(t, "4.5 hrs", response.TimeSavedToday)
}

func TestHandleDashboard_CriticalItemsSeverity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())
	riskRepo := risks.NewRepository(db, 2.0, zerolog.Nop())
	handler := NewHandler(repo, riskRepo, zerolog.Nop())

	require.NoError(t, repo.Create(&Project{
		ID: "proj-port", Name: "Port Expansion Project - Phase 2",
		Budget: 75000000, Status: "active",
	}))
	require.NoError(t, repo.CreateWorkPackage(&WorkPackage{
		ID: "wp-electrical", ProjectID: "proj-port", Name: "Electrical Systems",
		Budget: 18000000, Status: "at-risk", RiskLevel: "HIGH",
	}))

	// Escalated scenario risks carry CRITICAL and must stay on the board
	seedRisks := []risks.Risk{
		{ID: "risk-crit", WorkPackageID: "wp-electrical", Title: "Switchgear recall",
			ImpactCost: 4100000, ImpactDays: 30, RiskLevel: "CRITICAL"},
		{ID: "risk-high", WorkPackageID: "wp-electrical", Title: "Vendor performance decline",
			ImpactCost: 2300000, ImpactDays: 18, RiskLevel: "HIGH"},
		{ID: "risk-med", WorkPackageID: "wp-electrical", Title: "Permit review backlog",
			ImpactCost: 900000, ImpactDays: 5, RiskLevel: "MEDIUM"},
	}
	for i := range seedRisks {
		require.NoError(t, riskRepo.Create(&seedRisks[i]))
	}

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest("GET", "/projects/proj-port/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.CriticalItems, 2)
	assert.Equal(t, "Switchgear recall", response.CriticalItems[0].Title)
	assert.Equal(t, "Vendor performance decline", response.CriticalItems[1].Title)
}

func TestHandleDashboard_UnknownProject(t *testing.T) {
	db := setupTestDB(t)
	handler := NewHandler(
		NewRepository(db, zerolog.Nop()),
		risks.NewRepository(db, 2.0, zerolog.Nop()),
		zerolog.Nop(),
	)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest("GET", "/projects/proj-missing/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
