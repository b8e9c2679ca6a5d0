package reliability

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latsoguy/latso-mvp-demo/internal/database"
	"github.com/latsoguy/latso-mvp-demo/internal/events"
	"github.com/latsoguy/latso-mvp-demo/pkg/logger"
)

func setupBackupTest(t *testing.T) (*database.DB, string) {
	t.Helper()
	tempDir := t.TempDir()

	db, err := database.New(filepath.Join(tempDir, "latso.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("CREATE TABLE projects (id TEXT PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO projects (id, name) VALUES ('p1', 'Port Expansion'), ('p2', 'Terminal Upgrade')")
	require.NoError(t, err)

	return db, filepath.Join(tempDir, "backups")
}

func TestBackupService_Backup(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})

	t.Run("creates verified archive with metadata", func(t *testing.T) {
		db, backupDir := setupBackupTest(t)
		service := NewBackupService(db, backupDir, nil, nil, log)

		meta, err := service.Backup(context.Background())
		require.NoError(t, err)
		require.NotNil(t, meta)

		assert.Greater(t, meta.SizeBytes, int64(0))
		assert.Len(t, meta.SHA256, 64)
		assert.Equal(t, "latso.db", meta.Database)

		archivePath := filepath.Join(backupDir, meta.Archive)
		info, err := os.Stat(archivePath)
		require.NoError(t, err)
		assert.Equal(t, meta.SizeBytes, info.Size())

		// Archive should contain the database snapshot
		f, err := os.Open(archivePath)
		require.NoError(t, err)
		defer f.Close()

		gz, err := gzip.NewReader(f)
		require.NoError(t, err)
		tr := tar.NewReader(gz)
		hdr, err := tr.Next()
		require.NoError(t, err)
		assert.Contains(t, hdr.Name, "latso_")

		// Raw snapshot is removed after archiving
		entries, err := os.ReadDir(backupDir)
		require.NoError(t, err)
		for _, entry := range entries {
			assert.NotEqual(t, ".db", filepath.Ext(entry.Name()))
		}
	})

	t.Run("Latest returns most recent metadata", func(t *testing.T) {
		db, backupDir := setupBackupTest(t)
		service := NewBackupService(db, backupDir, nil, nil, log)

		meta, err := service.Latest()
		require.NoError(t, err)
		assert.Nil(t, meta, "no backups yet")

		created, err := service.Backup(context.Background())
		require.NoError(t, err)

		meta, err = service.Latest()
		require.NoError(t, err)
		require.NotNil(t, meta)
		assert.Equal(t, created.Archive, meta.Archive)
		assert.Equal(t, created.SHA256, meta.SHA256)
	})

	t.Run("publishes completion event", func(t *testing.T) {
		db, backupDir := setupBackupTest(t)
		bus := events.NewBus(log)
		ch, unsubscribe := bus.Subscribe()
		defer unsubscribe()

		service := NewBackupService(db, backupDir, nil, bus, log)
		meta, err := service.Backup(context.Background())
		require.NoError(t, err)

		select {
		case event := <-ch:
			assert.Equal(t, events.BackupCompleted, event.Type)
			data, ok := event.Data.(*events.BackupCompletedData)
			require.True(t, ok)
			assert.Equal(t, meta.Archive, data.Archive)
			assert.False(t, data.Uploaded)
		default:
			t.Fatal("expected a backup completed event")
		}
	})
}

func TestBackupJob(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	db, backupDir := setupBackupTest(t)

	job := NewBackupJob(NewBackupService(db, backupDir, nil, nil, log))
	assert.Equal(t, "database_backup", job.Name())
	require.NoError(t, job.Run())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
