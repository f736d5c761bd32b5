package workflow

import (
	"testing"
	"time"
)

func TestRunIDRoundTrip(t *testing.T) {
	ts := time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)
	id := NewRunID(ts)

	if id != "2026-08-31T14-30-05Z" {
		t.Errorf("NewRunID() = %q", id)
	}

	parsed, err := ParseRunID(id)
	if err != nil {
		t.Fatalf("ParseRunID: %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("round trip lost precision: %v != %v", parsed, ts)
	}
}

func TestNewRunIDNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2026, 8, 31, 16, 30, 5, 0, loc)

	if id := NewRunID(local); id != "2026-08-31T14-30-05Z" {
		t.Errorf("NewRunID() = %q, want the UTC rendering", id)
	}
}

func TestRunIDFromKey(t *testing.T) {
	const prefix = "backups/orders/"

	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{
			name: "archive key",
			key:  "backups/orders/2026-08-31T14-30-05Z.tar.gz",
			want: "2026-08-31T14-30-05Z",
		},
		{
			name:    "metadata object",
			key:     "backups/orders/metadata/2026-08-31T14-30-05Z.json",
			wantErr: true,
		},
		{
			name:    "stray object",
			key:     "backups/orders/README.txt",
			wantErr: true,
		},
		{
			name:    "bad timestamp",
			key:     "backups/orders/not-a-timestamp.tar.gz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runIDFromKey(prefix, tt.key)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("runIDFromKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyLayout(t *testing.T) {
	const id = "2026-08-31T14-30-05Z"

	if got, want := archiveKey("backups/orders/", id), "backups/orders/2026-08-31T14-30-05Z.tar.gz"; got != want {
		t.Errorf("archiveKey() = %q, want %q", got, want)
	}
	if got, want := metadataKey("backups/orders/metadata/", id), "backups/orders/metadata/2026-08-31T14-30-05Z.json"; got != want {
		t.Errorf("metadataKey() = %q, want %q", got, want)
	}
}
