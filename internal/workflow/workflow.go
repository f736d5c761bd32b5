// Package workflow orchestrates the backup lifecycle: preflight, dump,
// packaging, upload, retention, and the restore path.
package workflow

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"mongo-backup/internal/archive"
	"mongo-backup/internal/config"
	"mongo-backup/internal/database"
	"mongo-backup/internal/errdefs"
	"mongo-backup/internal/metrics"
	"mongo-backup/internal/ratelimit"
	"mongo-backup/internal/retry"
	"mongo-backup/internal/storage"
)

// Database bundles the database operations the workflow drives.
type Database interface {
	database.Dumper
	database.Restorer
	database.HealthChecker
}

// Params collects the dependencies of a Workflow.
type Params struct {
	Config *config.Config
	DB     Database
	Store  storage.ObjectStore
	Guard  ratelimit.Guard
	Logger *zap.Logger

	// DBName is the database name from the credential bundle, recorded in
	// object metadata.
	DBName string

	// Tools lists the client binaries verified during preflight.
	Tools []string
}

// Workflow runs backup, restore, and retention operations against one
// database and one object store.
type Workflow struct {
	cfg    *config.Config
	db     Database
	store  storage.ObjectStore
	guard  ratelimit.Guard
	logger *zap.Logger
	dbName string
	tools  []string
	now    func() time.Time
}

// New creates a workflow from its dependencies.
func New(p Params) *Workflow {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		cfg:    p.Config,
		db:     p.DB,
		store:  p.Store,
		guard:  p.Guard,
		logger: logger,
		dbName: p.DBName,
		tools:  p.Tools,
		now:    time.Now,
	}
}

func (w *Workflow) tempDir() string {
	if w.cfg.TempDir != "" {
		return w.cfg.TempDir
	}
	return os.TempDir()
}

func (w *Workflow) provider() string {
	return w.cfg.StorageProvider
}

// Backup performs one complete backup run. A run skipped by the
// minimum-interval guard is not an error.
func (w *Workflow) Backup(ctx context.Context) error {
	skipped, err := w.run(ctx)
	if skipped {
		metrics.RunsSkipped.Inc()
		return nil
	}
	metrics.RecordBackupAttempt(err == nil)
	return err
}

func (w *Workflow) run(ctx context.Context) (skipped bool, err error) {
	start := w.now().UTC()
	id := NewRunID(start)
	log := w.logger.With(zap.String("run", id))

	tempDir := w.tempDir()
	if err := CheckTools(w.tools); err != nil {
		return false, err
	}
	if err := CheckDiskSpace(tempDir, w.cfg.MinFreeBytes); err != nil {
		return false, err
	}

	// Connectivity is verified before anything touches disk.
	if err := w.db.Ping(ctx); err != nil {
		return false, err
	}
	log.Info("database reachable", zap.String("database", w.dbName))

	info, err := w.db.Info(ctx)
	if err != nil {
		log.Warn("could not collect database statistics", zap.Error(err))
		info = &database.Info{}
	} else {
		metrics.DatabaseObjects.Set(float64(info.Objects))
		log.Info("database statistics",
			zap.String("version", info.Version),
			zap.Int64("collections", info.Collections),
			zap.Int64("objects", info.Objects))
	}

	last, err := w.store.LastBackupTime(ctx, w.cfg.RemotePrefix())
	if err != nil {
		log.Warn("could not determine last backup time", zap.Error(err))
		last = time.Time{}
	}
	run, reason := w.guard.ShouldRun(last)
	if !run {
		log.Info("skipping backup", zap.String("reason", reason))
		return true, nil
	}
	log.Info("starting backup", zap.String("reason", reason))

	dumpDir := filepath.Join(tempDir, id)
	defer os.RemoveAll(dumpDir)

	dumpStart := w.now()
	err = retry.Do(ctx, retry.Config{
		Attempts:  w.cfg.DumpAttempts,
		Delay:     w.cfg.DumpRetryDelay,
		Retryable: database.IsRetryable,
	}, func() error {
		// A partial dump from a failed attempt must not leak into the next.
		if err := os.RemoveAll(dumpDir); err != nil {
			return errdefs.New(errdefs.KindDump, "dump", err)
		}
		if err := os.MkdirAll(dumpDir, 0o700); err != nil {
			return errdefs.New(errdefs.KindDump, "dump", err)
		}
		return w.db.Dump(ctx, dumpDir)
	})
	if err != nil {
		return false, err
	}
	metrics.PhaseDuration.WithLabelValues("dump").Observe(w.now().Sub(dumpStart).Seconds())
	log.Info("dump complete", zap.Duration("took", w.now().Sub(dumpStart)))

	packStart := w.now()
	archivePath := filepath.Join(tempDir, id+archiveSuffix)
	defer os.Remove(archivePath)

	size, err := archive.Pack(dumpDir, archivePath)
	if err != nil {
		return false, errdefs.New(errdefs.KindPackaging, "package", err)
	}
	if err := os.RemoveAll(dumpDir); err != nil {
		log.Warn("could not remove dump directory", zap.Error(err))
	}
	metrics.BackupSize.Set(float64(size))
	metrics.PhaseDuration.WithLabelValues("package").Observe(w.now().Sub(packStart).Seconds())
	log.Info("archive ready", zap.Int64("size_bytes", size))

	uploadStart := w.now()
	key := archiveKey(w.cfg.RemotePrefix(), id)
	if err := w.uploadArchive(ctx, key, archivePath, start); err != nil {
		metrics.RecordStorageOperation("upload", w.provider(), false)
		return false, err
	}
	metrics.RecordStorageOperation("upload", w.provider(), true)

	ok, err := w.store.Exists(ctx, key)
	if err != nil {
		return false, errdefs.New(errdefs.KindTransfer, "verify", err)
	}
	if !ok {
		return false, errdefs.Newf(errdefs.KindTransfer, "verify",
			"uploaded archive %s not found in object storage", key)
	}
	metrics.PhaseDuration.WithLabelValues("upload").Observe(w.now().Sub(uploadStart).Seconds())

	meta := &RunMetadata{
		ID:            id,
		Timestamp:     start,
		Service:       w.cfg.Service,
		Database:      w.dbName,
		ArchiveKey:    key,
		SizeBytes:     size,
		DurationMS:    w.now().Sub(start).Milliseconds(),
		ServerVersion: info.Version,
		Collections:   info.Collections,
		Objects:       info.Objects,
		Status:        "success",
	}
	if err := w.uploadMetadata(ctx, id, meta); err != nil {
		return false, err
	}

	metrics.LastSuccessTimestamp.SetToCurrentTime()
	log.Info("backup complete",
		zap.String("key", key),
		zap.Int64("size_bytes", size),
		zap.Duration("took", w.now().Sub(start)))

	if w.cfg.RetentionDays > 0 {
		if _, err := w.Prune(ctx); err != nil {
			log.Warn("retention cleanup failed", zap.Error(err))
		}
	}
	return false, nil
}

func (w *Workflow) uploadArchive(ctx context.Context, key, archivePath string, start time.Time) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errdefs.New(errdefs.KindTransfer, "upload", err)
	}
	defer f.Close()

	metadata := map[string]string{
		"backup-timestamp": start.Format(time.RFC3339),
		"service":          w.cfg.Service,
		"database":         w.dbName,
	}
	tags := map[string]string{
		"retention-days": strconv.Itoa(w.cfg.RetentionDays),
		"created-date":   start.Format("2006-01-02"),
	}
	if err := w.store.Upload(ctx, key, f, metadata, tags); err != nil {
		return errdefs.New(errdefs.KindTransfer, "upload", err)
	}
	return nil
}

func (w *Workflow) uploadMetadata(ctx context.Context, id string, meta *RunMetadata) error {
	data, err := meta.Marshal()
	if err != nil {
		return errdefs.New(errdefs.KindTransfer, "metadata", err)
	}
	key := metadataKey(w.cfg.MetadataPrefix(), id)
	metadata := map[string]string{
		"backup-timestamp": meta.Timestamp.Format(time.RFC3339),
		"service":          w.cfg.Service,
	}
	if err := w.store.Upload(ctx, key, bytes.NewReader(data), metadata, nil); err != nil {
		return errdefs.New(errdefs.KindTransfer, "metadata", err)
	}
	return nil
}

// Test verifies the tools, credentials, and database connectivity without
// producing a backup.
func (w *Workflow) Test(ctx context.Context) (*database.Info, error) {
	if err := CheckTools(w.tools); err != nil {
		return nil, err
	}
	if err := w.db.Ping(ctx); err != nil {
		return nil, err
	}
	info, err := w.db.Info(ctx)
	if err != nil {
		w.logger.Warn("could not collect database statistics", zap.Error(err))
		return &database.Info{}, nil
	}
	return info, nil
}

// Entry describes one stored backup.
type Entry struct {
	ID        string
	Timestamp time.Time
	Key       string
	Size      int64
}

// List returns all stored backups, newest first. Objects under the prefix
// that are not backup archives, such as metadata records, are ignored.
func (w *Workflow) List(ctx context.Context) ([]Entry, error) {
	objects, err := w.store.List(ctx, w.cfg.RemotePrefix())
	if err != nil {
		return nil, errdefs.New(errdefs.KindTransfer, "list", err)
	}

	entries := make([]Entry, 0, len(objects))
	for _, obj := range objects {
		id, err := runIDFromKey(w.cfg.RemotePrefix(), obj.Key)
		if err != nil {
			continue
		}
		ts, _ := ParseRunID(id)
		entries = append(entries, Entry{
			ID:        id,
			Timestamp: ts,
			Key:       obj.Key,
			Size:      obj.Size,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

// Restore downloads the backup identified by id, validates and unpacks
// it, and loads it into targetDB. An empty targetDB restores into the
// original database name.
func (w *Workflow) Restore(ctx context.Context, id, targetDB string) error {
	if _, err := ParseRunID(id); err != nil {
		return errdefs.New(errdefs.KindRestore, "restore", err)
	}
	if err := CheckTools(w.tools); err != nil {
		return err
	}

	key := archiveKey(w.cfg.RemotePrefix(), id)
	ok, err := w.store.Exists(ctx, key)
	if err != nil {
		return errdefs.New(errdefs.KindTransfer, "restore", err)
	}
	if !ok {
		return errdefs.Newf(errdefs.KindRestore, "restore",
			"no backup found for timestamp %s", id)
	}

	workDir, err := os.MkdirTemp(w.tempDir(), "restore-")
	if err != nil {
		return errdefs.New(errdefs.KindRestore, "restore", err)
	}
	defer os.RemoveAll(workDir)

	archivePath := filepath.Join(workDir, id+archiveSuffix)
	if err := w.downloadArchive(ctx, key, archivePath); err != nil {
		metrics.RecordStorageOperation("download", w.provider(), false)
		return err
	}
	metrics.RecordStorageOperation("download", w.provider(), true)

	if err := archive.Validate(archivePath); err != nil {
		return errdefs.New(errdefs.KindRestore, "restore", err)
	}

	dumpDir := filepath.Join(workDir, "dump")
	if err := archive.Unpack(archivePath, dumpDir); err != nil {
		return errdefs.New(errdefs.KindRestore, "restore", err)
	}

	if err := w.db.Restore(ctx, dumpDir, targetDB); err != nil {
		return err
	}

	target := targetDB
	if target == "" {
		target = w.dbName
	}
	w.logger.Info("restore complete",
		zap.String("run", id),
		zap.String("target_database", target))
	return nil
}

func (w *Workflow) downloadArchive(ctx context.Context, key, dstPath string) error {
	rc, err := w.store.Download(ctx, key)
	if err != nil {
		return errdefs.New(errdefs.KindTransfer, "download", err)
	}
	defer rc.Close()

	out, err := os.Create(dstPath)
	if err != nil {
		return errdefs.New(errdefs.KindRestore, "download", err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return errdefs.New(errdefs.KindTransfer, "download", err)
	}
	if err := out.Close(); err != nil {
		return errdefs.New(errdefs.KindRestore, "download", err)
	}
	return nil
}

// Prune deletes backups older than the retention window together with
// their metadata records. A failure on one object is logged and does not
// stop the pass; only a failed listing aborts.
func (w *Workflow) Prune(ctx context.Context) (int, error) {
	if w.cfg.RetentionDays <= 0 {
		return 0, nil
	}
	cutoff := w.now().UTC().AddDate(0, 0, -w.cfg.RetentionDays)

	objects, err := w.store.List(ctx, w.cfg.RemotePrefix())
	if err != nil {
		return 0, errdefs.New(errdefs.KindTransfer, "prune", err)
	}

	deleted := 0
	for _, obj := range objects {
		id, err := runIDFromKey(w.cfg.RemotePrefix(), obj.Key)
		if err != nil {
			continue
		}
		ts, _ := ParseRunID(id)
		if !ts.Before(cutoff) {
			continue
		}

		if err := w.store.Delete(ctx, obj.Key); err != nil {
			w.logger.Warn("could not delete expired backup",
				zap.String("key", obj.Key), zap.Error(err))
			metrics.RecordStorageOperation("delete", w.provider(), false)
			continue
		}
		metrics.RecordStorageOperation("delete", w.provider(), true)

		metaKey := metadataKey(w.cfg.MetadataPrefix(), id)
		if err := w.store.Delete(ctx, metaKey); err != nil {
			w.logger.Warn("could not delete metadata for expired backup",
				zap.String("key", metaKey), zap.Error(err))
		}

		deleted++
		metrics.BackupsPruned.Inc()
		w.logger.Info("deleted expired backup",
			zap.String("key", obj.Key),
			zap.Time("created", ts))
	}
	return deleted, nil
}
