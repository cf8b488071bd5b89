// Package reporter renders the inspection report. The console renderer
// writes human-readable sections to stdout; the JSON renderer marshals the
// report verbatim. An optional output file always receives the JSON document
// regardless of the console format.
package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/common/errorwrapper"
	"github.com/pagevet/pagevet/internal/models"
)

// Format selects the stdout rendering.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// ParseFormat maps a config string to a Format, defaulting to console.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatConsole
}

// Config controls report rendering.
type Config struct {
	Format     Format
	OutputFile string
}

// Reporter renders inspection reports.
type Reporter struct {
	config Config
	logger zerolog.Logger
	out    io.Writer
}

// New creates a Reporter writing to stdout.
func New(cfg Config, logger zerolog.Logger) *Reporter {
	return &Reporter{
		config: cfg,
		logger: logger.With().Str("component", "Reporter").Logger(),
		out:    os.Stdout,
	}
}

// Report renders the report to stdout in the configured format and, when an
// output file is configured, writes the JSON document there as well.
func (r *Reporter) Report(report *models.InspectionReport) error {
	var err error
	switch r.config.Format {
	case FormatJSON:
		err = WriteJSON(r.out, report)
	default:
		err = WriteConsole(r.out, report)
	}
	if err != nil {
		return errorwrapper.WrapError(err, "failed to render report")
	}

	if r.config.OutputFile != "" {
		if err := r.writeOutputFile(report); err != nil {
			return err
		}
		r.logger.Info().Str("path", r.config.OutputFile).Msg("Report written")
	}

	return nil
}

func (r *Reporter) writeOutputFile(report *models.InspectionReport) error {
	if dir := filepath.Dir(r.config.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errorwrapper.WrapError(err, "failed to create report directory")
		}
	}

	file, err := os.Create(r.config.OutputFile)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create report file")
	}
	defer file.Close()

	if err := WriteJSON(file, report); err != nil {
		return errorwrapper.WrapError(err, "failed to write report file")
	}
	return nil
}
