// Package ratelimit guards against rapid repeat backup runs.
package ratelimit

import (
	"time"
)

// Guard decides whether a backup run should proceed.
type Guard interface {
	// ShouldRun determines if a backup should proceed based on the last
	// backup time. The string return value contains a human-readable
	// reason when the run is skipped.
	ShouldRun(lastBackup time.Time) (bool, string)

	// MinInterval returns the minimum time interval between backups.
	MinInterval() time.Duration
}

// Config holds configuration for the guard.
type Config struct {
	// MinInterval is the minimum time between backups. Zero disables the
	// guard.
	MinInterval time.Duration

	// Force overrides the guard when true.
	Force bool
}
