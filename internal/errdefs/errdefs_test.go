package errdefs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "direct",
			err:  New(KindDump, "dump", errors.New("boom")),
			want: KindDump,
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("operation failed after 3 attempts: %w", New(KindDump, "dump", errors.New("boom"))),
			want: KindDump,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "",
		},
		{
			name: "nil",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"prerequisite", New(KindPrerequisite, "preflight", errors.New("no tool")), 2},
		{"credential", New(KindCredential, "fetch", errors.New("missing field")), 3},
		{"connectivity", New(KindConnectivity, "ping", errors.New("refused")), 4},
		{"dump", New(KindDump, "dump", errors.New("exit 1")), 5},
		{"packaging", New(KindPackaging, "package", errors.New("disk full")), 6},
		{"transfer", New(KindTransfer, "upload", errors.New("403")), 7},
		{"restore", New(KindRestore, "restore", errors.New("not found")), 8},
		{"unclassified", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}

	// Every kind must map to a distinct code.
	seen := map[int]string{}
	for _, tt := range tests {
		if tt.err == nil {
			continue
		}
		code := ExitCode(tt.err)
		if prev, ok := seen[code]; ok && prev != tt.name {
			t.Errorf("exit code %d shared by %s and %s", code, prev, tt.name)
		}
		seen[code] = tt.name
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(KindTransfer, "upload", errors.New("access denied"))
	want := "upload: transfer error: access denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(err, err.Err) && !errors.Is(err, errors.Unwrap(err)) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}
