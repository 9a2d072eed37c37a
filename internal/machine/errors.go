package machine

// errors.go defines the fatal fault taxonomy. Every fault here is
// unrecoverable: there is no in-VM trap mechanism. The primitives that
// detect these conditions (Memory, MemoryMapper, CPU stack ops) panic with
// one of these types as the panic value; Run and RunDebug recover the
// panic at the top of the instruction loop and turn it into a returned
// error, so an embedder gets a diagnostic instead of a raw stack trace.

import (
	"errors"
	"fmt"
)

// Sentinel errors so callers can use errors.Is against a fault category.
var (
	ErrDecodeFault = errors.New("decode fault")
	ErrMemoryFault = errors.New("memory fault")
	ErrStackFault  = errors.New("stack fault")
	ErrArithFault  = errors.New("arith fault")
)

// DecodeFault is raised when the fetched opcode byte has no handler.
type DecodeFault struct {
	Opcode Byte
	PC     Word
}

func (f *DecodeFault) Error() string {
	return fmt.Sprintf("%s: opcode %s at pc %s", ErrDecodeFault, f.Opcode, f.PC)
}

func (f *DecodeFault) Unwrap() error { return ErrDecodeFault }

// MemoryFault is raised by out-of-range byte/word access or a mapper miss.
type MemoryFault struct {
	Addr Word
	Size Word
	Op   string // "byte", "word", "map", or a device name such as "console"
}

func (f *MemoryFault) Error() string {
	return fmt.Sprintf("%s: %s: addr %s (size %s)", ErrMemoryFault, f.Op, f.Addr, f.Size)
}

func (f *MemoryFault) Unwrap() error { return ErrMemoryFault }

// StackFault is raised on push-past-lower-bound, pop-past-upper-bound, or
// running the CPU before SetStack.
type StackFault struct {
	Reason string
	SP     Word
}

func (f *StackFault) Error() string {
	return fmt.Sprintf("%s: %s (sp %s)", ErrStackFault, f.Reason, f.SP)
}

func (f *StackFault) Unwrap() error { return ErrStackFault }

// ArithFault is raised by division by zero.
type ArithFault struct {
	Opcode Byte
}

func (f *ArithFault) Error() string {
	return fmt.Sprintf("%s: division by zero at opcode %s", ErrArithFault, f.Opcode)
}

func (f *ArithFault) Unwrap() error { return ErrArithFault }
