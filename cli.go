package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/massung/CHIP-8/chip8"
	"github.com/retroenv/retrogolib/log"
)

const (
	/// DefaultScale is the size of a CHIP-8 pixel in the SDL window.
	///
	DefaultScale = 5

	/// MaxScale is the largest pixel size allowed.
	///
	MaxScale = 10
)

/// Options holds the parsed command line.
///
type Options struct {
	ROM   string
	Speed int
	Seed  int64
	Scale int

	Debug bool
	Quiet bool
	Term  bool
	Asm   bool
}

/// UsageError is returned when the command line can't be used and the
/// usage text should be shown.
///
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

/// ShowUsage prints the reason (if any) followed by the flag defaults.
///
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}

	fmt.Printf("usage: chip8 [options] [program]\n\n")

	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

/// ParseFlags parses the command line arguments (without the program name).
///
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options

	flags.IntVar(&opts.Speed, "speed", chip8.DefaultSpeed, "instructions executed per 60 Hz frame")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 seeds from the clock")
	flags.IntVar(&opts.Scale, "scale", DefaultScale, "size of a CHIP-8 pixel in the window")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.Term, "term", false, "run in the terminal instead of a window")
	flags.BoolVar(&opts.Asm, "asm", false, "assemble the program from source before running it")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		opts.ROM = rest[0]
	default:
		return opts, &UsageError{flags: flags, msg: "only a single program can be run"}
	}

	if opts.Term && opts.ROM == "" {
		return opts, &UsageError{flags: flags, msg: "a program is required in terminal mode"}
	}

	if opts.Scale < 1 || opts.Scale > MaxScale {
		return opts, fmt.Errorf("scale must be between 1 and %d, got %d", MaxScale, opts.Scale)
	}

	return opts, nil
}

/// CreateLogger creates a logger for the selected verbosity.
///
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}

	return log.NewWithConfig(cfg)
}

/// MachineConfig builds the virtual machine configuration from options.
///
func MachineConfig(opts Options, logger *log.Logger) (chip8.Config, error) {
	cfg := chip8.DefaultConfig()
	cfg.Speed = opts.Speed
	cfg.Logger = logger

	if opts.Seed != 0 {
		cfg.Random = chip8.NewRandomSource(opts.Seed)
	}

	return cfg, cfg.Validate()
}
