package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// viper keys, bound in cmd/root.go
const (
	LevelKey   = "log.level"
	FormatKey  = "log.format"
	NoColorKey = "log.no_color"
)

// InitDefault sets up a console logger before flags are parsed, so early
// failures still log readably.
func InitDefault() {
	log.Logger = zerolog.New(consoleWriter(os.Stderr, false)).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
}

// Init configures the global logger from viper (level, format, color).
// Pass a writer to redirect output, nil for stderr.
func Init(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(LevelKey)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if viper.GetString(FormatKey) != "json" {
		out = consoleWriter(w, viper.GetBool(NoColorKey))
	}

	log.Logger = zerolog.New(out).
		With().Timestamp().Logger().
		Level(level)
}

func consoleWriter(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}
}
