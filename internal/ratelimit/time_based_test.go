package ratelimit

import (
	"testing"
	"time"
)

func TestShouldRun(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		lastBackup time.Time
		want       bool
	}{
		{
			name:       "forced always runs",
			config:     Config{MinInterval: 24 * time.Hour, Force: true},
			lastBackup: time.Now().Add(-time.Minute),
			want:       true,
		},
		{
			name:       "disabled interval always runs",
			config:     Config{MinInterval: 0},
			lastBackup: time.Now().Add(-time.Minute),
			want:       true,
		},
		{
			name:       "no previous backup runs",
			config:     Config{MinInterval: 24 * time.Hour},
			lastBackup: time.Time{},
			want:       true,
		},
		{
			name:       "too soon is skipped",
			config:     Config{MinInterval: 24 * time.Hour},
			lastBackup: time.Now().Add(-time.Hour),
			want:       false,
		},
		{
			name:       "interval elapsed runs",
			config:     Config{MinInterval: 24 * time.Hour},
			lastBackup: time.Now().Add(-25 * time.Hour),
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewTimeBasedGuard(tt.config)
			got, reason := guard.ShouldRun(tt.lastBackup)
			if got != tt.want {
				t.Errorf("ShouldRun() = %v (%s), want %v", got, reason, tt.want)
			}
			if reason == "" {
				t.Error("expected a non-empty reason")
			}
		})
	}
}

func TestMinInterval(t *testing.T) {
	guard := NewTimeBasedGuard(Config{MinInterval: time.Hour})
	if guard.MinInterval() != time.Hour {
		t.Errorf("MinInterval() = %v, want %v", guard.MinInterval(), time.Hour)
	}
}
