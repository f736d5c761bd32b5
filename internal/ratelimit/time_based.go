package ratelimit

import (
	"fmt"
	"time"
)

// TimeBasedGuard implements Guard with a minimum-interval rule.
type TimeBasedGuard struct {
	config Config
}

// NewTimeBasedGuard creates a new time-based guard.
func NewTimeBasedGuard(config Config) *TimeBasedGuard {
	return &TimeBasedGuard{config: config}
}

// ShouldRun implements Guard.
func (t *TimeBasedGuard) ShouldRun(lastBackup time.Time) (bool, string) {
	if t.config.Force {
		return true, "forced backup requested"
	}
	if t.config.MinInterval <= 0 {
		return true, "minimum interval disabled"
	}
	if lastBackup.IsZero() {
		return true, "no previous backup found"
	}

	sinceLast := time.Since(lastBackup)
	if sinceLast < t.config.MinInterval {
		untilNext := t.config.MinInterval - sinceLast
		return false, fmt.Sprintf(
			"last backup was %s ago, next backup allowed in %s",
			formatDuration(sinceLast),
			formatDuration(untilNext),
		)
	}

	return true, fmt.Sprintf("last backup was %s ago", formatDuration(sinceLast))
}

// MinInterval implements Guard.
func (t *TimeBasedGuard) MinInterval() time.Duration {
	return t.config.MinInterval
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0f seconds", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0f minutes", d.Minutes())
	}
	return fmt.Sprintf("%.1f hours", d.Hours())
}
