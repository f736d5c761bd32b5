package storage

import (
	"net/url"
	"testing"
)

func TestEncodeTags(t *testing.T) {
	tags := map[string]string{
		"retention-days": "365",
		"created-date":   "2026-08-31",
	}

	parsed, err := url.ParseQuery(encodeTags(tags))
	if err != nil {
		t.Fatalf("encoded tag set is not valid query syntax: %v", err)
	}
	if got := parsed.Get("retention-days"); got != "365" {
		t.Errorf("retention-days = %q, want 365", got)
	}
	if got := parsed.Get("created-date"); got != "2026-08-31" {
		t.Errorf("created-date = %q, want 2026-08-31", got)
	}
}

func TestEncodeTagsEscapes(t *testing.T) {
	tags := map[string]string{"owner": "data platform"}

	encoded := encodeTags(tags)
	parsed, err := url.ParseQuery(encoded)
	if err != nil {
		t.Fatalf("ParseQuery(%q): %v", encoded, err)
	}
	if got := parsed.Get("owner"); got != "data platform" {
		t.Errorf("owner = %q after round trip", got)
	}
}
