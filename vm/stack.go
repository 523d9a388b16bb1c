package vm

import (
	"fmt"

	"github.com/kkkunny/stl/container/stack"
)

// callStack holds return addresses, bounded to a host configured depth.
type callStack struct {
	frames stack.Stack[uint16]
	depth  int
}

func newCallStack(depth int) *callStack {
	return &callStack{
		frames: stack.New[uint16](),
		depth:  depth,
	}
}

func (s *callStack) Len() int { return int(s.frames.Length()) }

func (s *callStack) Clear() { s.frames.Clear() }

func (s *callStack) Push(addr uint16) error {
	if s.Len() >= s.depth {
		return fmt.Errorf("%w: depth %d reached", ErrStackOverflow, s.depth)
	}
	s.frames.Push(addr)
	return nil
}

func (s *callStack) Pop() (uint16, error) {
	if s.Len() == 0 {
		return 0, ErrStackUnderflow
	}
	return s.frames.Pop(), nil
}

func (s *callStack) Top() (uint16, bool) {
	if s.Len() == 0 {
		return 0, false
	}
	return s.frames.Peek(), true
}
