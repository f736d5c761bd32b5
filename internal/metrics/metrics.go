// Package metrics provides Prometheus metrics for the backup agent.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackupAttempts tracks the total number of backup attempts.
	BackupAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mongo_backup_attempts_total",
		Help: "Total number of backup attempts",
	}, []string{"status"})

	// PhaseDuration tracks the duration of the workflow phases.
	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mongo_backup_phase_duration_seconds",
		Help:    "Duration of workflow phases in seconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1s to ~17min
	}, []string{"phase"})

	// BackupSize tracks the size of the last uploaded archive.
	BackupSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongo_backup_archive_size_bytes",
		Help: "Size of the last backup archive in bytes",
	})

	// DatabaseObjects tracks the document count of the database at dump time.
	DatabaseObjects = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongo_backup_database_objects",
		Help: "Number of documents in the database at dump time",
	})

	// StorageOperations tracks object storage operations.
	StorageOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mongo_backup_storage_operations_total",
		Help: "Total number of object storage operations",
	}, []string{"operation", "provider", "status"})

	// RunsSkipped tracks runs skipped by the minimum-interval guard.
	RunsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mongo_backup_runs_skipped_total",
		Help: "Total number of backups skipped by the minimum-interval guard",
	})

	// LastSuccessTimestamp tracks when the last successful backup occurred.
	LastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongo_backup_last_success_timestamp",
		Help: "Unix timestamp of the last successful backup",
	})

	// BackupsPruned tracks the number of expired backups deleted.
	BackupsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mongo_backup_pruned_total",
		Help: "Total number of expired backups deleted",
	})

	// Info provides static information about the agent.
	Info = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mongo_backup_info",
		Help: "Information about the backup agent",
	}, []string{"version", "storage_provider"})
)

// RecordBackupAttempt records a backup attempt with its status.
func RecordBackupAttempt(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	BackupAttempts.WithLabelValues(status).Inc()
}

// RecordStorageOperation records an object storage operation.
func RecordStorageOperation(operation, provider string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	StorageOperations.WithLabelValues(operation, provider, status).Inc()
}
