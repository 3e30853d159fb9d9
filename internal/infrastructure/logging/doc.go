// Package logging provides structured logging for rig-calc.
//
// It wraps log/slog with the output, format and level taken from the
// logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Every entry carries service=rigcalc and the build version.
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("rig loaded", "lines", n)
//	logger.Error("persisting rig failed", "error", err)
package logging
