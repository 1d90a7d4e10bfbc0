package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level       // tracing level
	Format     Format      // FormatAuto picks by OutputPath extension
	Output     io.Writer   // if nil, OutputPath is opened
	OutputPath string      // "-" for stderr, "" disables the stream sink
	Logger     *zap.Logger // optional: mirror events into the log
}

// New creates a Tracer based on Config. With neither an output nor a logger
// configured the result is Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	var sinks []Tracer
	if cfg.Output != nil || cfg.OutputPath != "" {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		if format := resolveFormat(cfg); format == FormatOTel {
			ot, err := NewOTelTracer(w, cfg.Level)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, ot)
		} else {
			sinks = append(sinks, NewStreamTracer(w, cfg.Level, format))
		}
	}
	if cfg.Logger != nil {
		sinks = append(sinks, NewZapTracer(cfg.Logger, cfg.Level))
	}

	switch len(sinks) {
	case 0:
		return Nop, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiTracer(cfg.Level, sinks...), nil
	}
}

func resolveFormat(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// openOutput opens the output writer from config.
func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return nopCloser{cfg.Output}, nil
	}
	if cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser keeps Close from shutting writers we do not own.
type nopCloser struct{ io.Writer }
