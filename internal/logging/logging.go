// Package logging builds the zerolog loggers used across esgsync and carries
// them, together with a per-invocation trace id, through context.Context.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output targets accepted by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Format values accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Standard structured field names.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldResource   = "resource"
	FieldCompanyID  = "company_id"
	FieldStatus     = "status"
	FieldDurationMs = "duration_ms"
	FieldTraceID    = "trace_id"
)

// Config describes how a logger is built.
type Config struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`
	File   string `yaml:"file" json:"file"`
	Caller bool   `yaml:"caller" json:"caller"`
}

// Result is the outcome of NewLoggerWithPath. Close releases the log file.
type Result struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close closes the underlying log file, if one was opened.
func (r *Result) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg. File output problems fall back to stderr.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath builds a logger and reports where it writes. When the
// configured file cannot be opened the logger writes to stderr and the
// fallback reason is recorded.
func NewLoggerWithPath(cfg Config) Result {
	var res Result
	var w io.Writer = os.Stderr

	switch strings.ToLower(cfg.Output) {
	case OutputStdout:
		w = os.Stdout
	case OutputFile:
		if cfg.File == "" {
			res.FallbackUsed = true
			res.FallbackReason = "no log file configured"
			break
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			res.FallbackUsed = true
			res.FallbackReason = err.Error()
			break
		}
		w = f
		res.file = f
		res.UsingFile = true
		res.FilePath = cfg.File
	}

	if strings.EqualFold(cfg.Format, FormatConsole) && !res.UsingFile {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	res.Logger = ctx.Logger()
	return res
}

// ParseLevel parses level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str(FieldComponent, component).Logger()
}

// FromContext returns the logger stored in ctx. A context without a logger
// yields a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// Discard returns a logger that writes nothing, for tests.
func Discard() zerolog.Logger {
	return zerolog.Nop()
}
