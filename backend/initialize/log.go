package initialize

import (
	"io"
	"os"
	"strings"

	"monitor-hub/backend/config"
	"monitor-hub/backend/global"

	"github.com/rs/zerolog"
)

func init() {
	// basic zerolog setup: console writer to stdout until config is loaded
	global.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

// SetupLogger rebuilds global.Logger from the log section of the config.
func SetupLogger(cfg config.Log) {
	global.Logger = NewLogger(os.Stdout, cfg)
}

func NewLogger(out io.Writer, cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	w := out
	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
