package trace

import (
	"fmt"
	"io"
	"os"
)

// Tracer receives events. Implementations must be safe for concurrent Emit.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	// Close flushes and releases the output, unless the output belongs to
	// someone else (stderr or Config.Output).
	Close() error
	Level() Level
	Enabled() bool
}

// Config describes the tracer New builds.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer // stream output; wins over OutputPath
	OutputPath string    // "" or "-" is stderr
	RingSize   int       // <= 0 means 4096
}

// Nop is the tracer of a context without one and of LevelOff.
var Nop Tracer = off{}

type off struct{}

func (off) Emit(*Event)   {}
func (off) Flush() error  { return nil }
func (off) Close() error  { return nil }
func (off) Level() Level  { return LevelOff }
func (off) Enabled() bool { return false }

// New builds a tracer for cfg. ModeBoth gives a MultiTracer whose Ring is
// available for panic dumps.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode == ModeRing {
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}
	if cfg.Mode != ModeStream && cfg.Mode != ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	w, err := cfg.output()
	if err != nil {
		return nil, err
	}
	format := cfg.Format
	if format == FormatAuto {
		format = detectFormat(cfg.OutputPath)
	}
	stream := NewStreamTracer(w, cfg.Level, format)
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
}

// borrowed hides Close of writers the tracer does not own.
type borrowed struct{ io.Writer }

func (cfg Config) output() (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return borrowed{cfg.Output}, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return borrowed{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}
