package workflow

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout names one run. Dashes instead of colons keep the
// identifier filesystem-safe.
const TimestampLayout = "2006-01-02T15-04-05Z"

const archiveSuffix = ".tar.gz"

// NewRunID formats a timestamp identifier for a run starting at t.
func NewRunID(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseRunID parses a timestamp identifier back into a time.
func ParseRunID(id string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp identifier %q: %w", id, err)
	}
	return t.UTC(), nil
}

// archiveKey builds the remote key of a run's archive:
// <prefix>/<service>/<timestamp>.tar.gz.
func archiveKey(remotePrefix, id string) string {
	return remotePrefix + id + archiveSuffix
}

// metadataKey builds the remote key of a run's metadata object:
// <prefix>/<service>/metadata/<timestamp>.json.
func metadataKey(metadataPrefix, id string) string {
	return metadataPrefix + id + ".json"
}

// runIDFromKey extracts the timestamp identifier from an archive key.
func runIDFromKey(remotePrefix, key string) (string, error) {
	name := strings.TrimPrefix(key, remotePrefix)
	if !strings.HasSuffix(name, archiveSuffix) || strings.Contains(name, "/") {
		return "", fmt.Errorf("key %q is not a backup archive", key)
	}
	id := strings.TrimSuffix(name, archiveSuffix)
	if _, err := ParseRunID(id); err != nil {
		return "", err
	}
	return id, nil
}
