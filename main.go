// Package main implements a CHIP-8 emulator with a desktop window, a terminal
// frontend and a ROM disassembler.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	stlerr "github.com/kkkunny/stl/error"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	guiapp "github.com/kkkunny/chip8vm/app"
	"github.com/kkkunny/chip8vm/config"
	"github.com/kkkunny/chip8vm/console"
	"github.com/kkkunny/chip8vm/emulator"
	"github.com/kkkunny/chip8vm/vm"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			usageErr.ShowUsage(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug || opts.Trace, opts.Quiet)
	config.SetLogger(logger)

	if !opts.Disasm {
		printBanner(opts)
	}

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(opts config.Options) {
	if opts.Quiet {
		return
	}
	fmt.Println("[------------------------------]")
	fmt.Println("[ chip8 - CHIP-8 emulator      ]")
	fmt.Printf("[------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	rom, err := stlerr.ErrorWith(os.ReadFile(opts.ROM))
	if err != nil {
		return fmt.Errorf("reading ROM file '%s': %w", opts.ROM, err)
	}
	logger.Debug("Loaded ROM", log.String("file", opts.ROM), log.Int("size", len(rom)))

	switch {
	case opts.Disasm:
		return vm.Disassemble(os.Stdout, rom)

	case opts.Headless:
		return runHeadless(ctx, logger, opts, rom)

	default:
		guiapp.NewApp(opts, logger).Run(ctx, rom)
		return nil
	}
}

func runHeadless(ctx context.Context, logger *log.Logger, opts config.Options, rom []uint8) error {
	emu, err := emulator.NewFromOptions(rom, opts, logger)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	renderer := console.New(os.Stdout, logger)
	defer func() { _ = renderer.Close() }()

	emu.SetOnFrame(func(frame vm.Frame) {
		if err := renderer.Render(frame); err != nil {
			logger.Warn("Rendering frame failed", log.Err(err))
		}
	})
	return emu.Run(ctx)
}
