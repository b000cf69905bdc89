// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with the level selected by the debug and quiet flags.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
