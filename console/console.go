// Package console renders the CHIP-8 display as text, two pixel rows per
// line.
package console

import (
	"bufio"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"

	"github.com/kkkunny/chip8vm/vm"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// lines is the number of text lines of one frame.
const lines = (vm.DisplayHeight + 1) / 2

var blocks = [4]string{" ", "▀", "▄", "█"}

// Renderer writes frames to a writer. When the writer is a terminal every
// frame is drawn over the previous one.
type Renderer struct {
	w        io.Writer
	terminal bool
	started  bool
}

// New creates a renderer writing to w.
func New(w io.Writer, logger *log.Logger) *Renderer {
	r := &Renderer{w: w}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return r
	}
	r.terminal = true

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		logger.Warn("Reading terminal size failed", log.Err(err))
		return r
	}
	if width < vm.DisplayWidth || height < lines {
		logger.Warn("Terminal is smaller than the display",
			log.Int("columns", width),
			log.Int("rows", height),
			log.Int("needed_columns", vm.DisplayWidth),
			log.Int("needed_rows", lines))
	}
	return r
}

// Render writes one frame.
func (r *Renderer) Render(frame vm.Frame) error {
	buf := bufio.NewWriter(r.w)
	if r.terminal {
		if !r.started {
			_, _ = buf.WriteString(hideCursor + clearScreen)
			r.started = true
		}
		_, _ = buf.WriteString(cursorHome)
	}

	for y := 0; y < vm.DisplayHeight; y += 2 {
		for x := range vm.DisplayWidth {
			block := 0
			if frame.Pixel(x, y) {
				block |= 1
			}
			if frame.Pixel(x, y+1) {
				block |= 2
			}
			_, _ = buf.WriteString(blocks[block])
		}
		_ = buf.WriteByte('\n')
	}
	return buf.Flush()
}

// Close restores the cursor of a terminal.
func (r *Renderer) Close() error {
	if !r.terminal || !r.started {
		return nil
	}
	_, err := io.WriteString(r.w, showCursor)
	return err
}
