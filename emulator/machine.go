package emulator

import (
	"github.com/retroenv/retrogolib/log"
	exprand "golang.org/x/exp/rand"

	"github.com/kkkunny/chip8vm/config"
	"github.com/kkkunny/chip8vm/vm"
)

// NewMachine creates a machine for the ROM configured by the command line
// options.
func NewMachine(rom []uint8, opts config.Options, logger *log.Logger) (*vm.Machine, error) {
	machineOpts := []vm.Option{
		vm.WithStackDepth(opts.StackDepth),
		vm.WithLogger(logger),
		vm.WithTrace(opts.Trace),
	}
	if opts.Seed != 0 {
		machineOpts = append(machineOpts, vm.WithRandomSource(exprand.NewSource(opts.Seed)))
	}
	return vm.NewMachine(rom, machineOpts...)
}

// NewFromOptions creates a machine for the ROM and an emulator running it,
// both configured by the command line options.
func NewFromOptions(rom []uint8, opts config.Options, logger *log.Logger) (*Emulator, error) {
	machine, err := NewMachine(rom, opts, logger)
	if err != nil {
		return nil, err
	}
	return New(machine, Options{CycleRate: opts.CycleRate, TimerRate: opts.TimerRate}, logger), nil
}
