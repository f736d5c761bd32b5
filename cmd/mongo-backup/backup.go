package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mongo-backup/internal/errdefs"
	"mongo-backup/internal/health"
	"mongo-backup/internal/logging"
	"mongo-backup/internal/metrics"
	"mongo-backup/internal/server"
)

func runBackup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if schedule != "" {
		return runScheduled(ctx, a)
	}
	return a.wf.Backup(ctx)
}

// runScheduled keeps the process resident and backs up on a cron
// schedule. The metrics server is only started in this mode; a one-shot
// run has nothing to scrape.
func runScheduled(ctx context.Context, a *app) error {
	cronLog := logging.NewCronLogger(a.logger)
	c := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.SkipIfStillRunning(cronLog)),
	)

	if _, err := c.AddFunc(schedule, func() {
		if err := a.wf.Backup(ctx); err != nil {
			a.logger.Error("scheduled backup failed", zap.Error(err))
		}
	}); err != nil {
		return errdefs.Newf(errdefs.KindPrerequisite, "schedule",
			"invalid cron expression %q: %v", schedule, err)
	}

	var srv *server.Server
	if a.cfg.MetricsPort > 0 {
		srvCfg := server.DefaultConfig()
		srvCfg.Port = a.cfg.MetricsPort
		srv = server.New(srvCfg, a.logger)
		srv.RegisterHealthCheck("scheduler", func(context.Context) health.Check {
			return health.Check{Status: health.StatusHealthy, Timestamp: time.Now()}
		})
		go func() {
			if err := srv.Start(); err != nil {
				a.logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	metrics.Info.WithLabelValues(version, a.cfg.StorageProvider).Set(1)
	a.logger.Info("scheduler started", zap.String("schedule", schedule))
	c.Start()

	<-ctx.Done()
	a.logger.Info("shutting down, waiting for running jobs")
	<-c.Stop().Done()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return nil
}
