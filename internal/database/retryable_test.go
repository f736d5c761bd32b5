package database

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil",
			err:  nil,
			want: false,
		},
		{
			name: "connection refused",
			err:  errors.New("mongodump failed: connection refused"),
			want: true,
		},
		{
			name: "no reachable servers",
			err:  errors.New("Failed: no reachable servers"),
			want: true,
		},
		{
			name: "server selection",
			err:  errors.New("server selection error: context deadline exceeded"),
			want: true,
		},
		{
			name: "dns failure",
			err:  errors.New("lookup mongo.internal: no such host"),
			want: true,
		},
		{
			name: "io timeout",
			err:  errors.New("read tcp 10.0.0.5:41232: i/o timeout"),
			want: true,
		},
		{
			name: "wrapped transient",
			err:  fmt.Errorf("mongo.dump: dump error: %w", errors.New("connection reset by peer")),
			want: true,
		},
		{
			name: "authentication failure",
			err:  errors.New("Failed: can't create session: auth error: sasl conversation error"),
			want: false,
		},
		{
			name: "unknown database",
			err:  errors.New("Failed: error counting appdb.users: not authorized"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMaskArgs(t *testing.T) {
	args := []string{
		"--host=db.internal",
		"--username=admin",
		"--password=hunter2",
		"--authenticationDatabase=admin",
	}
	masked := maskArgs(args)

	for _, a := range masked {
		if a == "--password=hunter2" {
			t.Fatal("password leaked into masked args")
		}
	}
	if masked[2] != "--password=<redacted>" {
		t.Errorf("expected redacted password, got %q", masked[2])
	}
	if masked[0] != args[0] || masked[3] != args[3] {
		t.Error("non-secret args were modified")
	}
}
