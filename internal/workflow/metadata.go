package workflow

import (
	"encoding/json"
	"fmt"
	"time"
)

// RunMetadata is the per-run record uploaded next to each archive.
type RunMetadata struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Service       string    `json:"service"`
	Database      string    `json:"database"`
	ArchiveKey    string    `json:"archive_key"`
	SizeBytes     int64     `json:"size_bytes"`
	DurationMS    int64     `json:"duration_ms"`
	ServerVersion string    `json:"server_version,omitempty"`
	Collections   int64     `json:"collections"`
	Objects       int64     `json:"objects"`
	Status        string    `json:"status"`
}

// Marshal encodes the record as indented JSON.
func (m *RunMetadata) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata JSON: %w", err)
	}
	return data, nil
}
