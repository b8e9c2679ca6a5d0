package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latsoguy/latso-mvp-demo/internal/config"
	"github.com/latsoguy/latso-mvp-demo/internal/database"
	"github.com/latsoguy/latso-mvp-demo/internal/events"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/briefing"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/projects"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/risks"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/vendors"
	"github.com/latsoguy/latso-mvp-demo/pkg/logger"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Pretty: false})

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(
		vendors.Schema,
		projects.Schema,
		risks.Schema,
		briefing.Schema,
	))

	bus := events.NewBus(log)
	projectRepo := projects.NewRepository(db.Conn(), log)
	vendorRepo := vendors.NewRepository(db.Conn(), log)
	riskRepo := risks.NewRepository(db.Conn(), 2.0, log)
	briefRepo := briefing.NewRepository(db.Conn(), log)

	return New(Config{
		Log:          log,
		DB:           db,
		Cfg:          &config.Config{Port: 0, DevMode: true, RemainingDays: 127},
		Bus:          bus,
		ProjectRepo:  projectRepo,
		VendorRepo:   vendorRepo,
		RiskRepo:     riskRepo,
		BriefService: briefing.NewService(projectRepo, riskRepo, briefRepo, bus, 127, log),
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "latso", response["service"])
}

func TestModuleRoutesMounted(t *testing.T) {
	srv := setupServer(t)

	// Each module surface answers under /api; empty DB still returns
	// well-formed responses rather than routing misses.
	routes := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/vendors", http.StatusOK},
		{"GET", "/api/risks/top", http.StatusOK},
		{"GET", "/api/projects/missing/dashboard", http.StatusNotFound},
		{"GET", "/api/executive-brief/latest?project_id=missing", http.StatusNotFound},
		{"POST", "/api/scenario/analyze", http.StatusBadRequest},
		{"GET", "/api/system/database/stats", http.StatusOK},
		{"GET", "/api/system/backups/latest", http.StatusNotFound},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, route.status, w.Code, "%s %s", route.method, route.path)
	}
}
