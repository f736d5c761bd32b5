// Package config loads and validates agent configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all agent configuration. Values come from environment
// variables with the MONGO_BACKUP_ prefix, optionally merged with a YAML
// file.
type Config struct {
	// Service names the backed-up service and forms the remote key prefix
	// together with KeyPrefix: <key_prefix>/<service>/.
	Service   string `mapstructure:"service"`
	KeyPrefix string `mapstructure:"key_prefix"`

	// Secret store configuration
	SecretProvider string      `mapstructure:"secret_provider"` // "vault" or "awssm"
	SecretName     string      `mapstructure:"secret_name"`
	Vault          VaultConfig `mapstructure:"vault"`
	AWSRegion      string      `mapstructure:"aws_region"`

	// Object storage configuration
	StorageProvider string    `mapstructure:"storage_provider"` // "s3" or "gcs"
	S3              S3Config  `mapstructure:"s3"`
	GCS             GCSConfig `mapstructure:"gcs"`

	// Retention and run policy
	RetentionDays  int           `mapstructure:"retention_days"`
	MinFreeBytes   int64         `mapstructure:"min_free_bytes"`
	DumpAttempts   int           `mapstructure:"dump_attempts"`
	DumpRetryDelay time.Duration `mapstructure:"dump_retry_delay"`
	MinInterval    time.Duration `mapstructure:"min_interval"`
	ForceBackup    bool          `mapstructure:"force_backup"`

	// Observability
	MetricsPort int    `mapstructure:"metrics_port"`
	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"`

	// TempDir holds dump directories and archives while a run is in
	// flight. Empty means the OS default.
	TempDir string `mapstructure:"temp_dir"`
}

// VaultConfig holds connection settings for HashiCorp Vault.
type VaultConfig struct {
	Address     string `mapstructure:"address"`
	Token       string `mapstructure:"token"`
	AppRoleID   string `mapstructure:"approle_id"`
	AppRoleName string `mapstructure:"approle_name"`
}

// S3Config holds S3 settings. Bucket may be left empty when the secret
// bundle supplies the bucket identifier.
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// GCSConfig holds Google Cloud Storage settings.
type GCSConfig struct {
	Bucket             string `mapstructure:"bucket"`
	ProjectID          string `mapstructure:"project_id"`
	ServiceAccountJSON string `mapstructure:"service_account_json"`
}

// Load reads configuration from the environment and, when path is
// non-empty, merges a YAML file underneath it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MONGO_BACKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults declares every key so AutomaticEnv can populate Unmarshal;
// viper only considers keys it has seen.
func setDefaults(v *viper.Viper) {
	v.SetDefault("service", "mongodb")
	v.SetDefault("key_prefix", "backups")
	v.SetDefault("secret_provider", "awssm")
	v.SetDefault("secret_name", "")
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.approle_id", "")
	v.SetDefault("vault.approle_name", "")
	v.SetDefault("aws_region", "")
	v.SetDefault("storage_provider", "s3")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("gcs.bucket", "")
	v.SetDefault("gcs.project_id", "")
	v.SetDefault("gcs.service_account_json", "")
	v.SetDefault("retention_days", 365)
	v.SetDefault("min_free_bytes", int64(5)<<30)
	v.SetDefault("dump_attempts", 3)
	v.SetDefault("dump_retry_delay", 10*time.Second)
	v.SetDefault("min_interval", time.Duration(0))
	v.SetDefault("force_backup", false)
	v.SetDefault("metrics_port", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("temp_dir", "")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("service is required")
	}
	if c.SecretName == "" {
		return fmt.Errorf("secret_name is required")
	}

	switch c.SecretProvider {
	case "vault":
		// Address and token may come from VAULT_ADDR / VAULT_TOKEN.
	case "awssm":
		if c.AWSRegion == "" {
			return fmt.Errorf("aws_region is required for the awssm secret provider")
		}
	default:
		return fmt.Errorf("invalid secret_provider: %s (must be 'vault' or 'awssm')", c.SecretProvider)
	}

	switch c.StorageProvider {
	case "s3":
		if c.S3.Region == "" && c.S3.Endpoint == "" {
			return fmt.Errorf("s3.region is required for S3 storage (unless s3.endpoint is set)")
		}
	case "gcs":
		if c.GCS.Bucket == "" {
			return fmt.Errorf("gcs.bucket is required for GCS storage")
		}
	default:
		return fmt.Errorf("invalid storage_provider: %s (must be 's3' or 'gcs')", c.StorageProvider)
	}

	if c.RetentionDays < 0 {
		return fmt.Errorf("retention_days must be non-negative")
	}
	if c.DumpAttempts < 1 {
		return fmt.Errorf("dump_attempts must be at least 1")
	}
	if c.MinInterval < 0 {
		return fmt.Errorf("min_interval must be non-negative")
	}
	if c.MinFreeBytes < 0 {
		return fmt.Errorf("min_free_bytes must be non-negative")
	}

	return nil
}

// RemotePrefix returns the key prefix backup archives live under.
func (c *Config) RemotePrefix() string {
	return c.KeyPrefix + "/" + c.Service + "/"
}

// MetadataPrefix returns the key prefix per-run metadata objects live under.
func (c *Config) MetadataPrefix() string {
	return c.RemotePrefix() + "metadata/"
}
