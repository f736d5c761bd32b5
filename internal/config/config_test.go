package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Service:         "orders",
		KeyPrefix:       "backups",
		SecretProvider:  "awssm",
		SecretName:      "prod/orders/mongodb",
		AWSRegion:       "eu-west-1",
		StorageProvider: "s3",
		S3:              S3Config{Region: "eu-west-1", Bucket: "team-backups"},
		RetentionDays:   365,
		DumpAttempts:    3,
		DumpRetryDelay:  10 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing service",
			mutate:  func(c *Config) { c.Service = "" },
			wantErr: "service",
		},
		{
			name:    "missing secret name",
			mutate:  func(c *Config) { c.SecretName = "" },
			wantErr: "secret_name",
		},
		{
			name:    "unknown secret provider",
			mutate:  func(c *Config) { c.SecretProvider = "sops" },
			wantErr: "secret_provider",
		},
		{
			name:    "awssm without region",
			mutate:  func(c *Config) { c.AWSRegion = "" },
			wantErr: "aws_region",
		},
		{
			name: "vault needs no region",
			mutate: func(c *Config) {
				c.SecretProvider = "vault"
				c.AWSRegion = ""
			},
		},
		{
			name:    "unknown storage provider",
			mutate:  func(c *Config) { c.StorageProvider = "ftp" },
			wantErr: "storage_provider",
		},
		{
			name:    "s3 without region or endpoint",
			mutate:  func(c *Config) { c.S3.Region = "" },
			wantErr: "s3.region",
		},
		{
			name: "s3 custom endpoint without region",
			mutate: func(c *Config) {
				c.S3.Region = ""
				c.S3.Endpoint = "http://minio.internal:9000"
			},
		},
		{
			name: "gcs without bucket",
			mutate: func(c *Config) {
				c.StorageProvider = "gcs"
			},
			wantErr: "gcs.bucket",
		},
		{
			name:    "negative retention",
			mutate:  func(c *Config) { c.RetentionDays = -1 },
			wantErr: "retention_days",
		},
		{
			name:    "zero dump attempts",
			mutate:  func(c *Config) { c.DumpAttempts = 0 },
			wantErr: "dump_attempts",
		},
		{
			name:    "negative min interval",
			mutate:  func(c *Config) { c.MinInterval = -time.Hour },
			wantErr: "min_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MONGO_BACKUP_SERVICE", "orders")
	t.Setenv("MONGO_BACKUP_SECRET_NAME", "prod/orders/mongodb")
	t.Setenv("MONGO_BACKUP_AWS_REGION", "eu-west-1")
	t.Setenv("MONGO_BACKUP_S3_REGION", "eu-west-1")
	t.Setenv("MONGO_BACKUP_MIN_INTERVAL", "12h")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Service != "orders" {
		t.Errorf("Service = %q, want orders", cfg.Service)
	}
	if cfg.MinInterval != 12*time.Hour {
		t.Errorf("MinInterval = %v, want 12h", cfg.MinInterval)
	}

	// Defaults fill what the environment leaves out.
	if cfg.RetentionDays != 365 {
		t.Errorf("RetentionDays = %d, want 365", cfg.RetentionDays)
	}
	if cfg.DumpAttempts != 3 {
		t.Errorf("DumpAttempts = %d, want 3", cfg.DumpAttempts)
	}
	if cfg.DumpRetryDelay != 10*time.Second {
		t.Errorf("DumpRetryDelay = %v, want 10s", cfg.DumpRetryDelay)
	}
	if cfg.KeyPrefix != "backups" {
		t.Errorf("KeyPrefix = %q, want backups", cfg.KeyPrefix)
	}
}

func TestRemotePrefixes(t *testing.T) {
	cfg := validConfig()

	if got, want := cfg.RemotePrefix(), "backups/orders/"; got != want {
		t.Errorf("RemotePrefix() = %q, want %q", got, want)
	}
	if got, want := cfg.MetadataPrefix(), "backups/orders/metadata/"; got != want {
		t.Errorf("MetadataPrefix() = %q, want %q", got, want)
	}
}
