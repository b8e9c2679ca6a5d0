package server

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/latsoguy/latso-mvp-demo/internal/database"
	"github.com/latsoguy/latso-mvp-demo/internal/reliability"
)

var startTime = time.Now()

// SystemHandlers serves operational endpoints: system status, database
// stats, and backup inspection.
type SystemHandlers struct {
	db     *database.DB
	backup *reliability.BackupService
	log    zerolog.Logger
}

// NewSystemHandlers creates system handlers. backup may be nil.
func NewSystemHandlers(db *database.DB, backup *reliability.BackupService, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		db:     db,
		backup: backup,
		log:    log.With().Str("handler", "system").Logger(),
	}
}

// HandleSystemStatus returns host and process metrics
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response := map[string]interface{}{
		"status":         "running",
		"uptime_seconds": int64(time.Since(startTime).Seconds()),
		"cpu_percent":    cpuPercent,
		"memory_percent": memPercent,
		"process": map[string]interface{}{
			"goroutines":    runtime.NumGoroutine(),
			"heap_alloc_mb": float64(memStats.HeapAlloc) / 1024 / 1024,
			"gc_cycles":     memStats.NumGC,
		},
	}

	h.writeJSON(w, response)
}

// HandleDatabaseStats returns database size and connection pool stats
// GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	sizeMB := 0.0
	if info, err := os.Stat(h.db.Path()); err == nil {
		sizeMB = float64(info.Size()) / 1024 / 1024
	}

	poolStats := h.db.Conn().Stats()

	response := map[string]interface{}{
		"path":    h.db.Path(),
		"size_mb": sizeMB,
		"pool": map[string]interface{}{
			"open_connections": poolStats.OpenConnections,
			"in_use":           poolStats.InUse,
			"idle":             poolStats.Idle,
		},
	}

	h.writeJSON(w, response)
}

// HandleLatestBackup returns metadata for the most recent backup archive
// GET /api/system/backups/latest
func (h *SystemHandlers) HandleLatestBackup(w http.ResponseWriter, r *http.Request) {
	if h.backup == nil {
		http.Error(w, "Backups not configured", http.StatusNotFound)
		return
	}

	meta, err := h.backup.Latest()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read backup metadata")
		http.Error(w, "Failed to read backup metadata", http.StatusInternalServerError)
		return
	}
	if meta == nil {
		http.Error(w, "No backups yet", http.StatusNotFound)
		return
	}

	h.writeJSON(w, meta)
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a 100ms sampling interval to avoid blocking the API call.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
