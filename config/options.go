package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// Defaults of the host loop.
const (
	DefaultCycleRate  = 500
	DefaultTimerRate  = 60
	DefaultStackDepth = 16
	DefaultScale      = 10
)

// Options contains the command line options of the emulator.
type Options struct {
	ROM string

	CycleRate  int
	TimerRate  int
	StackDepth int
	Seed       uint64
	Scale      int

	Headless bool
	Disasm   bool
	Trace    bool
	Debug    bool
	Quiet    bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	if e.msg != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	_, _ = fmt.Fprintf(w, "usage: chip8 [options] <rom file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	_, _ = fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return opts, &UsageError{flags: flags, msg: "no ROM file given"}
	case len(rest) > 1:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("potential argument %s found after ROM file, please pass the ROM file as last argument", rest[1]),
		}
	}
	opts.ROM = rest[0]

	if err := validateOptions(opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.IntVar(&opts.CycleRate, "hz", DefaultCycleRate, "instruction cycles executed per second")
	flags.IntVar(&opts.TimerRate, "timerhz", DefaultTimerRate, "delay and sound timer decrements per second")
	flags.IntVar(&opts.StackDepth, "stack", DefaultStackDepth, "maximum call stack depth")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 seeds from the clock")
	flags.IntVar(&opts.Scale, "scale", DefaultScale, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.Headless, "headless", false, "run in the terminal without opening a window")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly of the ROM and exit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func validateOptions(opts Options) error {
	switch {
	case opts.CycleRate <= 0:
		return fmt.Errorf("invalid cycle rate %d", opts.CycleRate)
	case opts.TimerRate <= 0:
		return fmt.Errorf("invalid timer rate %d", opts.TimerRate)
	case opts.StackDepth <= 0:
		return fmt.Errorf("invalid stack depth %d", opts.StackDepth)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid scale %d", opts.Scale)
	}
	return nil
}
