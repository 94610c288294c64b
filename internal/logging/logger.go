// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Format selects how log records are encoded.
type Format string

const (
	// FormatText writes human-readable, optionally colored lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
	// FormatLogfmt writes key=value pairs.
	FormatLogfmt Format = "logfmt"
)

// defaultLogger is the package-level default logger instance.
//
//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New(os.Stderr, "info")
	})
	return defaultLogger
}

// ParseLevel parses a configured level. "warning" is accepted for "warn"
// and an empty level means info.
func ParseLevel(level string) (log.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return log.InfoLevel, nil
	case "warning":
		return log.WarnLevel, nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q; must be one of: debug, info, warn, error", level)
	}
	return parsed, nil
}

// ParseFormat parses a configured log format. An empty format means text.
func ParseFormat(format string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatLogfmt:
		return FormatLogfmt, nil
	default:
		return FormatText, fmt.Errorf("invalid log format %q; must be one of: text, json, logfmt", format)
	}
}

// New creates a logger writing to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})

	parsed, _ := ParseLevel(level)
	logger.SetLevel(parsed)

	return logger
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultLogger = logger
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	parsed, _ := ParseLevel(level)
	getDefaultLogger().SetLevel(parsed)
}

// SetFormat switches the record encoding of the default logger. Machine
// formats carry timestamps.
func SetFormat(format Format) {
	logger := getDefaultLogger()
	switch format {
	case FormatJSON:
		logger.SetFormatter(log.JSONFormatter)
		logger.SetReportTimestamp(true)
	case FormatLogfmt:
		logger.SetFormatter(log.LogfmtFormatter)
		logger.SetReportTimestamp(true)
	default:
		logger.SetFormatter(log.TextFormatter)
		logger.SetReportTimestamp(false)
	}
}

// NewInteractive creates a logger for messages addressed to the user of a
// command, such as the path of a written file.
func NewInteractive(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  log.InfoLevel,
		Prefix: "livemd",
	})
}
