// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// When Config.File is set, output is additionally written to a rotating
// file managed by lumberjack.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Core starting", zap.String("endpoint", cfg.API.Endpoint))
//	logger.Error("Operation failed", zap.Error(err))
package logging
