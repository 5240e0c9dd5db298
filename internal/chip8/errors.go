package chip8

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors surfaced by the CORE. Only StackFault conditions and,
// optionally, unknown opcodes are fatal; everything else in the opcode
// table is defined behavior (see the Quirks doc comment).
var (
	// ErrRomTooLarge is returned by LoadROM when the ROM does not fit
	// between EntryPoint and the end of memory.
	ErrRomTooLarge = errors.New("chip8: rom too large")

	// ErrStackOverflow is returned by Step when a CALL (2NNN) is
	// executed with the stack already at capacity.
	ErrStackOverflow = errors.New("chip8: stack overflow")

	// ErrStackUnderflow is returned by Step when a RET (00EE) is
	// executed with an empty stack.
	ErrStackUnderflow = errors.New("chip8: stack underflow")

	// ErrUnknownOpcode is returned by Step when HaltOnUnknownOpcode is
	// set and the fetched word does not match any legal opcode.
	ErrUnknownOpcode = errors.New("chip8: unknown opcode")
)

// Fault wraps a fatal error with the program counter and opcode that
// produced it. Once Step returns a *Fault the VM is Halted and every
// subsequent Step returns the same fault until Reset.
type Fault struct {
	Err    error
	PC     uint16
	Opcode uint16
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s at pc=0x%03X opcode=0x%04X", f.Err, f.PC, f.Opcode)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// newFault wraps err with pkg/errors so a caller further up the stack
// (cmd, say) can still add its own context via errors.Wrap without losing
// the original cause.
func newFault(err error, pc, opcode uint16) *Fault {
	return &Fault{
		Err:    pkgerrors.WithStack(err),
		PC:     pc,
		Opcode: opcode,
	}
}
