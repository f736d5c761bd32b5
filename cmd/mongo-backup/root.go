package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mongo-backup/internal/config"
	"mongo-backup/internal/database"
	"mongo-backup/internal/errdefs"
	"mongo-backup/internal/logging"
	"mongo-backup/internal/ratelimit"
	"mongo-backup/internal/secrets"
	"mongo-backup/internal/storage"
	"mongo-backup/internal/workflow"
)

var (
	cfgFile  string
	logLevel string

	forceBackup bool
	schedule    string
)

var rootCmd = &cobra.Command{
	Use:   "mongo-backup",
	Short: "MongoDB backup agent for object storage",
	Long: `mongo-backup dumps a MongoDB database, packages the dump as a
tar.gz archive, and uploads it to S3 or GCS together with a per-run
metadata record. Credentials are fetched from Vault or AWS Secrets
Manager at runtime. Without a subcommand one backup run is performed.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBackup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.Flags().BoolVar(&forceBackup, "force", false, "run even when the minimum interval has not elapsed")
	rootCmd.Flags().StringVar(&schedule, "schedule", "", "cron expression; stay resident and back up on schedule")

	rootCmd.AddCommand(testCmd, listCmd, restoreCmd, pruneCmd)
}

// app bundles everything a command needs after configuration, secret
// fetch, and client construction.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	wf     *workflow.Workflow
	store  storage.ObjectStore
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, errdefs.New(errdefs.KindPrerequisite, "config", err)
	}
	if forceBackup {
		cfg.ForceBackup = true
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, errdefs.New(errdefs.KindPrerequisite, "logging", err)
	}

	secretStore, err := secrets.NewStore(ctx, cfg)
	if err != nil {
		return nil, errdefs.New(errdefs.KindCredential, "secrets", err)
	}
	creds, err := secretStore.Fetch(ctx, cfg.SecretName)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewObjectStore(ctx, cfg, creds.Bucket)
	if err != nil {
		return nil, errdefs.New(errdefs.KindPrerequisite, "storage", err)
	}

	mongo := database.NewMongo(creds, logger)
	guard := ratelimit.NewTimeBasedGuard(ratelimit.Config{
		MinInterval: cfg.MinInterval,
		Force:       cfg.ForceBackup,
	})

	wf := workflow.New(workflow.Params{
		Config: cfg,
		DB:     mongo,
		Store:  store,
		Guard:  guard,
		Logger: logger,
		DBName: creds.Database,
		Tools:  mongo.Tools(),
	})

	return &app{cfg: cfg, logger: logger, wf: wf, store: store}, nil
}

func (a *app) close() {
	if c, ok := a.store.(io.Closer); ok {
		_ = c.Close()
	}
	_ = a.logger.Sync()
}
