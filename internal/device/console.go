// Package device holds concrete implementations of machine.Device: RAM
// and a terminal-backed console. Only machine.Device's four-method
// contract is fixed by spec.md; everything here is a free-standing
// peripheral plugged into a machine.MemoryMapper by the caller.
package device

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/term"

	"rvm32/internal/machine"
)

// Console register offsets. Per SPEC_FULL.md §11 these are single bytes,
// not words -- a program addresses them with the byte-granular LOAD/STORE
// family, not MOV. A caller maps RegionSize bytes at whatever base
// address it chooses, with remap set so the device sees 0..3.
const (
	KBSR = machine.Word(0) // Keyboard Status Register.
	KBDR = machine.Word(1) // Keyboard Data Register.
	DSR  = machine.Word(2) // Display Status Register.
	DDR  = machine.Word(3) // Display Data Register.

	RegionSize = machine.Word(4)
)

// Ready is the single status bit this device uses: set means "data is
// available" for KBSR, "ready for more output" for DSR. Unlike the
// teacher's Keyboard/Display (which also track an interrupt-enable bit),
// there's no interrupt controller here -- spec.md's Non-goals exclude
// one -- so status is a plain polling flag.
const Ready = machine.Byte(1)

// Console is a memory-mapped keyboard+screen device adapting a real
// terminal, grounded on the teacher's vm.Keyboard/vm.Display pair
// (status/data register pairs, §internal/vm/kbd.go, disp.go) collapsed
// into a single Device and a single mutex, and on tty.Console for the
// goroutine-fed terminal adaptation.
type Console struct {
	mu sync.Mutex

	kbsr, kbdr machine.Byte
	dsr, ddr   machine.Byte

	out io.Writer
}

// NewConsole creates a console that writes display output to out. The
// display starts ready; the keyboard starts empty.
func NewConsole(out io.Writer) *Console {
	return &Console{dsr: Ready, out: out}
}

func (c *Console) GetByte(addr machine.Word) machine.Byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch addr {
	case KBSR:
		return c.kbsr
	case KBDR:
		v := c.kbdr
		c.kbsr &^= Ready

		return v
	case DSR:
		return c.dsr
	case DDR:
		return c.ddr
	default:
		panic(&machine.MemoryFault{Addr: addr, Op: "console"})
	}
}

func (c *Console) GetWord(addr machine.Word) machine.Word {
	return machine.Word(c.GetByte(addr))
}

func (c *Console) SetByte(addr machine.Word, v machine.Byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch addr {
	case KBSR:
		c.kbsr = v
	case DSR:
		c.dsr = v
	case DDR:
		c.ddr = v
		c.dsr &^= Ready
		fmt.Fprintf(c.out, "%c", rune(v))
		c.dsr |= Ready
	default:
		panic(&machine.MemoryFault{Addr: addr, Op: "console"})
	}
}

// SetWord writes v to a byte register. A value that does not fit in a
// byte is rejected with a *machine.MemoryFault rather than truncated.
func (c *Console) SetWord(addr machine.Word, v machine.Word) {
	if v > 0xFF {
		panic(&machine.MemoryFault{Addr: addr, Size: RegionSize, Op: "console"})
	}

	c.SetByte(addr, machine.Byte(v))
}

// Feed delivers one key press into the keyboard registers, as if typed at
// the terminal. It overwrites any unread key, same as the teacher's
// Keyboard.Update caveat about precious data.
func (c *Console) Feed(key byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.kbdr = machine.Byte(key)
	c.kbsr |= Ready
}

// WatchTerminal reads raw bytes from in and feeds each one to the
// keyboard registers until ctx is canceled or the read fails. Grounded on
// tty.Console's readTerminal/updateKeyboard goroutine pair, collapsed
// into one goroutine since there's no interrupt controller here to wake
// separately from the data arriving.
func (c *Console) WatchTerminal(ctx context.Context, in io.Reader) {
	r := bufio.NewReader(in)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		b, err := r.ReadByte()
		if err != nil {
			return
		}

		c.Feed(b)
	}
}

// RawMode puts fd into raw terminal mode and returns a function that
// restores it, mirroring the teacher's NewConsole/Console.Restore pair.
func RawMode(fd int) (restore func(), err error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	return func() { _ = term.Restore(fd, state) }, nil
}

var _ machine.Device = (*Console)(nil)
