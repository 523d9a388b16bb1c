package emulator

import (
	"github.com/kkkunny/stl/container/tuple"
	"github.com/retroenv/retrogolib/log"
)

type KeyEvent uint8

const (
	KeyEventDown KeyEvent = iota
	KeyEventUp
)

func (e KeyEvent) String() string {
	switch e {
	case KeyEventDown:
		return "down"
	case KeyEventUp:
		return "up"
	default:
		return "unknown"
	}
}

// KeyDown returns the event of pressing a keypad key.
func KeyDown(key uint8) tuple.Tuple2[KeyEvent, uint8] { return tuple.Pack2(KeyEventDown, key) }

// KeyUp returns the event of releasing a keypad key.
func KeyUp(key uint8) tuple.Tuple2[KeyEvent, uint8] { return tuple.Pack2(KeyEventUp, key) }

// inputBuffer is the number of key events that can be queued between cycles.
const inputBuffer = 64

// applyInput moves the queued key events into the keypad without blocking.
func (e *Emulator) applyInput() {
	for {
		select {
		case event := <-e.input:
			e.logger.Debug("Keyboard event",
				log.String("event", event.E1().String()),
				log.Uint8("key", event.E2()))
			if err := e.machine.SetKey(event.E2(), event.E1() == KeyEventDown); err != nil {
				e.logger.Warn("Ignoring keyboard event", log.Err(err))
			}
		default:
			return
		}
	}
}
