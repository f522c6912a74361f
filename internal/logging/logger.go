// Package logging builds zerolog loggers from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/sghaida/classhelper/internal/config"
)

// NewLogger creates a zerolog.Logger from LoggingConfig.
// The returned closer releases the output file when Output names one; it is a no-op
// for stdout and stderr.
func NewLogger(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	output, outputFile, err := selectOutput(cfg.Output)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log output: %w", err)
	}

	closer := io.Closer(nopCloser{})
	if outputFile != nil && outputFile != os.Stdout && outputFile != os.Stderr {
		closer = outputFile
	}

	if shouldUsePretty(cfg, outputFile) {
		output = buildConsoleWriter(output)
	}

	logger := zerolog.New(output).
		Level(cfg.ParseLevel()).
		With().
		Timestamp().
		Logger()

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// selectOutput returns the output writer and file handle for the given output config.
func selectOutput(outputCfg string) (io.Writer, *os.File, error) {
	switch outputCfg {
	case "", "stdout":
		return os.Stdout, os.Stdout, nil
	case "stderr":
		return os.Stderr, os.Stderr, nil
	default:
		outputCfg = filepath.Clean(outputCfg)
		f, err := os.OpenFile(outputCfg, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	}
}

// shouldUsePretty determines if console formatting should be used.
func shouldUsePretty(cfg config.LoggingConfig, outputFile *os.File) bool {
	if cfg.Pretty {
		return true
	}

	switch strings.ToLower(cfg.Format) {
	case "pretty":
		return true
	case "json":
		return false
	default:
		// console, text or empty: pretty only on a terminal
		return outputFile != nil && isatty.IsTerminal(outputFile.Fd())
	}
}

// buildConsoleWriter creates a zerolog.ConsoleWriter with compact formatting.
func buildConsoleWriter(output io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:             output,
		TimeFormat:      "15:04:05",
		FormatLevel:     formatLevel,
		FormatMessage:   formatMessage,
		FormatFieldName: formatFieldName,
		FormatFieldValue: func(i any) string {
			return fmt.Sprintf("%s", i)
		},
	}
}

var levelColors = map[string]string{
	"debug": "\033[36mDBG\033[0m",
	"info":  "\033[32mINF\033[0m",
	"warn":  "\033[33mWRN\033[0m",
	"error": "\033[31mERR\033[0m",
	"fatal": "\033[35mFTL\033[0m",
	"panic": "\033[35mPNC\033[0m",
}

// formatLevel formats the log level with ANSI colors.
func formatLevel(i any) string {
	levelStr, ok := i.(string)
	if !ok {
		return ""
	}
	if colored, exists := levelColors[levelStr]; exists {
		return colored
	}
	return levelStr
}

func formatMessage(i any) string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("-> %s", i)
}

func formatFieldName(i any) string {
	return fmt.Sprintf("\033[2m%s=\033[0m", i)
}
