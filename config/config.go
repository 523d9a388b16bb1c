// Package config holds the logger and command line options shared by the
// emulator packages.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// Logger is the default logger used by packages that were not given one.
var Logger = CreateLogger(false, false)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// SetLogger replaces the default logger.
func SetLogger(logger *log.Logger) {
	if logger != nil {
		Logger = logger
	}
}
