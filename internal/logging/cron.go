package logging

import (
	"go.uber.org/zap"
)

// CronLogger adapts a zap logger to the cron scheduler's logging interface.
type CronLogger struct {
	log *zap.SugaredLogger
}

// NewCronLogger creates a cron logger backed by the given zap logger.
func NewCronLogger(logger *zap.Logger) *CronLogger {
	return &CronLogger{log: logger.Sugar()}
}

// Info logs routine scheduler events.
func (c *CronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Infow(msg, keysAndValues...)
}

// Error logs scheduler errors.
func (c *CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
