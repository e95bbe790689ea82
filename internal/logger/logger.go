package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global logger.
// - debugMode param still works, but we also honor DEBUG=true env var (case-insensitive)
// - if ENVIRONMENT=development we use a human-friendly console writer
func Setup(debugMode bool) {
	if os.Getenv("ENVIRONMENT") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	if debugMode || strings.EqualFold(os.Getenv("DEBUG"), "true") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = log.With().
		Str("service", "jmx2influx").
		Timestamp().
		Logger()
}

// Get returns the configured global logger.
func Get() zerolog.Logger {
	return log.Logger
}
