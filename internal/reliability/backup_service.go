// Package reliability provides database backups with local retention and
// optional off-site upload to S3-compatible object storage.
package reliability

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/database"
	"github.com/latsoguy/latso-mvp-demo/internal/events"
)

// RetainedBackups is how many archives are kept locally before pruning
const RetainedBackups = 14

// BackupMetadata describes a completed backup archive
type BackupMetadata struct {
	Archive   string    `json:"archive"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
	SHA256    string    `json:"sha256"`
	Database  string    `json:"database"`
}

// BackupService snapshots the SQLite database with VACUUM INTO, verifies the
// copy, compresses it, and prunes old archives.
type BackupService struct {
	db        *database.DB
	backupDir string
	uploader  *S3Uploader // nil when off-site upload is not configured
	bus       *events.Bus
	log       zerolog.Logger
}

// NewBackupService creates a new backup service. uploader may be nil.
func NewBackupService(
	db *database.DB,
	backupDir string,
	uploader *S3Uploader,
	bus *events.Bus,
	log zerolog.Logger,
) *BackupService {
	return &BackupService{
		db:        db,
		backupDir: backupDir,
		uploader:  uploader,
		bus:       bus,
		log:       log.With().Str("service", "backup").Logger(),
	}
}

// Backup performs a full backup cycle: snapshot, verify, archive, prune,
// and upload when an uploader is configured.
func (s *BackupService) Backup(ctx context.Context) (*BackupMetadata, error) {
	s.log.Info().Msg("Starting backup")
	startTime := time.Now()

	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := time.Now().UTC().Format("2006-01-02_150405")
	snapshotPath := filepath.Join(s.backupDir, fmt.Sprintf("latso_%s.db", timestamp))

	// VACUUM INTO gives an atomic copy with no WAL sidecar files
	if _, err := s.db.Exec(fmt.Sprintf("VACUUM INTO '%s'", snapshotPath)); err != nil {
		return nil, fmt.Errorf("VACUUM INTO failed: %w", err)
	}
	defer os.Remove(snapshotPath)

	if err := s.verifySnapshot(snapshotPath); err != nil {
		return nil, fmt.Errorf("backup verification failed: %w", err)
	}

	archivePath := snapshotPath + ".tar.gz"
	if err := s.archive(snapshotPath, archivePath); err != nil {
		return nil, fmt.Errorf("failed to archive snapshot: %w", err)
	}

	meta, err := s.describe(archivePath)
	if err != nil {
		os.Remove(archivePath)
		return nil, err
	}

	if err := s.writeMetadata(meta); err != nil {
		s.log.Warn().Err(err).Msg("Failed to write backup metadata")
	}

	if err := s.prune(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to prune old backups")
	}

	uploaded := false
	if s.uploader != nil {
		if err := s.uploader.Upload(ctx, archivePath); err != nil {
			s.log.Error().Err(err).Msg("Off-site upload failed")
		} else {
			uploaded = true
		}
	}

	if s.bus != nil {
		s.bus.Publish(&events.BackupCompletedData{
			Archive:   filepath.Base(archivePath),
			SizeBytes: meta.SizeBytes,
			Uploaded:  uploaded,
		})
	}

	s.log.Info().
		Dur("duration_ms", time.Since(startTime)).
		Str("archive", archivePath).
		Int64("size_bytes", meta.SizeBytes).
		Bool("uploaded", uploaded).
		Msg("Backup completed")

	return meta, nil
}

// Latest returns metadata for the most recent archive, or nil when none exist
func (s *BackupService) Latest() (*BackupMetadata, error) {
	archives, err := s.listArchives()
	if err != nil || len(archives) == 0 {
		return nil, err
	}

	metaPath := strings.TrimSuffix(archives[len(archives)-1], ".tar.gz") + ".json"
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup metadata: %w", err)
	}

	var meta BackupMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse backup metadata: %w", err)
	}
	return &meta, nil
}

func (s *BackupService) verifySnapshot(path string) error {
	snap, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer snap.Close()

	var result string
	if err := snap.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check query failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

func (s *BackupService) archive(snapshotPath, archivePath string) error {
	src, err := os.Open(snapshotPath)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	hdr := &tar.Header{
		Name:    filepath.Base(snapshotPath),
		Mode:    0644,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := io.Copy(tw, src); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}

func (s *BackupService) describe(archivePath string) (*BackupMetadata, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return nil, fmt.Errorf("failed to hash archive: %w", err)
	}

	return &BackupMetadata{
		Archive:   filepath.Base(archivePath),
		CreatedAt: time.Now().UTC(),
		SizeBytes: size,
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		Database:  filepath.Base(s.db.Path()),
	}, nil
}

func (s *BackupService) writeMetadata(meta *BackupMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	metaPath := filepath.Join(s.backupDir, strings.TrimSuffix(meta.Archive, ".tar.gz")+".json")
	return os.WriteFile(metaPath, data, 0644)
}

// prune deletes the oldest archives beyond the retention count, together
// with their metadata files
func (s *BackupService) prune() error {
	archives, err := s.listArchives()
	if err != nil {
		return err
	}
	if len(archives) <= RetainedBackups {
		return nil
	}

	for _, path := range archives[:len(archives)-RetainedBackups] {
		if err := os.Remove(path); err != nil {
			s.log.Warn().Str("path", path).Err(err).Msg("Failed to delete old backup")
			continue
		}
		os.Remove(strings.TrimSuffix(path, ".tar.gz") + ".json")
		s.log.Debug().Str("path", path).Msg("Deleted old backup")
	}
	return nil
}

// listArchives returns archive paths sorted oldest first. Timestamps are
// embedded in the filenames so lexical order is chronological order.
func (s *BackupService) listArchives() ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var archives []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tar.gz") {
			continue
		}
		archives = append(archives, filepath.Join(s.backupDir, entry.Name()))
	}
	sort.Strings(archives)
	return archives, nil
}

// BackupJob wraps BackupService.Backup for the scheduler
type BackupJob struct {
	service *BackupService
}

// NewBackupJob creates a new backup job
func NewBackupJob(service *BackupService) *BackupJob {
	return &BackupJob{service: service}
}

// Run executes a backup cycle
func (j *BackupJob) Run() error {
	_, err := j.service.Backup(context.Background())
	return err
}

// Name returns the job name for scheduler
func (j *BackupJob) Name() string {
	return "database_backup"
}
