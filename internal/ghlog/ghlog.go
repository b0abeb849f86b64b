// Package ghlog builds the *slog.Logger handed to gherkin.WithLogger for
// the cmd/gherkinfmt CLI, the only caller in this module that needs a
// configurable log level/format rather than slog.Default().
package ghlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Format selects the slog.Handler's wire shape.
type Format string

const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewWithStrings builds a *slog.Logger from level and format strings, as
// read from the CLI's log_level and log_format config keys.
func NewWithStrings(w io.Writer, logLevel, logFormat string) (*slog.Logger, error) {
	lvl, err := ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	fmtv, err := ParseFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return slog.New(NewHandler(w, lvl, fmtv)), nil
}

// NewHandler builds a slog.Handler for the given level and format.
func NewHandler(w io.Writer, lvl slog.Level, f Format) slog.Handler {
	switch f {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
}

// ParseLevel parses a level string from config/flags.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, ErrUnknownLogLevel
}

// ParseFormat parses a format string from config/flags.
func ParseFormat(format string) (Format, error) {
	if format == "" {
		return FormatLogfmt, nil
	}
	f := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatJSON, FormatLogfmt}, f) {
		return f, nil
	}
	return "", ErrUnknownLogFormat
}
