package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
)

var (
	greenCheck = color.GreenString("✓")
	redCross   = color.RedString("✗")

	bold  = color.New(color.Bold).Sprint
	faint = color.New(color.Faint).Sprint
)

// BeQuietError signals that the error was already logged in a readable
// form; Execute exits non-zero without printing it again.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "exiting due to previous error"
}

func logError(err error, msg string) error {
	log.Error().Msgf("%s %s", redCross, msg)
	log.Error().Msgf("error: %v", err)
	return BeQuietError{}
}

func logSuccess(format string, args ...any) {
	log.Info().Msgf(greenCheck+" "+format, args...)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	return t
}

func applyTableFormat(t table.Writer) {
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = 0 // keep header casing as given
}
