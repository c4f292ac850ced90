package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var L = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

// Init sends agent logs to path (appending) or to stdout when path is empty.
func Init(path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		w = file
	}
	L = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: path != ""}).With().Timestamp().Logger()
	return nil
}

func Infof(f string, v ...interface{})  { L.Info().Msgf(f, v...) }
func Warnf(f string, v ...interface{})  { L.Warn().Msgf(f, v...) }
func Errorf(f string, v ...interface{}) { L.Error().Msgf(f, v...) }
