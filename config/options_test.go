package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags([]string{"pong.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.ROM)
	assert.Equal(t, DefaultCycleRate, opts.CycleRate)
	assert.Equal(t, DefaultTimerRate, opts.TimerRate)
	assert.Equal(t, DefaultStackDepth, opts.StackDepth)
	assert.Equal(t, DefaultScale, opts.Scale)
	assert.False(t, opts.Headless)
	assert.False(t, opts.Disasm)
}

func TestParseFlags(t *testing.T) {
	opts, err := ParseFlags([]string{"-hz", "700", "-stack", "12", "-seed", "42", "-headless", "-trace", "ibm.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "ibm.ch8", opts.ROM)
	assert.Equal(t, 700, opts.CycleRate)
	assert.Equal(t, 12, opts.StackDepth)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.True(t, opts.Headless)
	assert.True(t, opts.Trace)
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no rom", nil},
		{"flag after rom", []string{"ibm.ch8", "-q"}},
		{"unknown flag", []string{"-nope", "ibm.ch8"}},
		{"zero cycle rate", []string{"-hz", "0", "ibm.ch8"}},
		{"negative stack", []string{"-stack", "-1", "ibm.ch8"}},
		{"help", []string{"-h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))

			var buf bytes.Buffer
			usageErr.ShowUsage(&buf)
			assert.Contains(t, buf.String(), "usage: chip8")
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))

	previous := Logger
	defer SetLogger(previous)

	logger := CreateLogger(false, false)
	SetLogger(logger)
	assert.Equal(t, logger, Logger)
	SetLogger(nil)
	assert.Equal(t, logger, Logger)
}
