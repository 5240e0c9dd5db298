package chip8

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"time"
)

// State is the VM's run state, surfaced mostly so a host can decide
// whether it's still worth calling Step.
type State int

const (
	// StateRunning is the normal operating state.
	StateRunning State = iota
	// StateHalted means a StackFault (or, if configured, an unknown
	// opcode) has occurred; Step keeps returning that fault until Reset.
	StateHalted
)

// Options configures a VM at construction. NewVM fills in defaults for a
// zero Quirks, a nil Rand (seeded from Seed, which is 0 in the zero value)
// and a nil Logger; DefaultOptions also seeds from the current time.
type Options struct {
	// Quirks selects the documented behavioral choices. Zero value
	// (DefaultQuirks()) is used if Quirks is the zero Quirks{}.
	Quirks Quirks

	// Rand supplies CXNN's random bytes. If nil, a math/rand source
	// seeded from Seed is used.
	Rand RandSource

	// Seed seeds the default Rand when Rand is nil.
	Seed int64

	// HaltOnUnknownOpcode, if true, makes Step return ErrUnknownOpcode
	// (wrapped in a *Fault) instead of logging and continuing.
	HaltOnUnknownOpcode bool

	// Logger receives diagnostic lines (unknown-opcode soft no-ops,
	// etc.). Defaults to a logger writing to io.Discard.
	Logger *log.Logger
}

// DefaultOptions returns sensible default Options: default quirks, a
// time-seeded math/rand source, soft no-op on unknown opcodes, and a
// discarding logger.
func DefaultOptions() *Options {
	return &Options{
		Quirks: DefaultQuirks(),
		Seed:   time.Now().UnixNano(),
	}
}

// VM owns all CHIP-8 interpreter state: memory, registers, stack,
// framebuffer, keypad, and timers. It is strictly single-threaded --
// callers must not call VM methods concurrently from multiple goroutines.
type VM struct {
	mem   memory
	stack callStack
	fb    framebuffer
	keys  keypad

	v  [16]byte
	i  uint16
	pc uint16
	dt byte
	st byte

	rom                 []byte
	quirks              Quirks
	rand                RandSource
	haltOnUnknownOpcode bool
	logger              *log.Logger
	state               State
	fault               *Fault
}

// NewVM returns a zero-initialized VM with the font loaded at 0x000 and PC
// set to EntryPoint. A nil opts is equivalent to DefaultOptions().
func NewVM(opts *Options) *VM {
	if opts == nil {
		opts = DefaultOptions()
	}

	quirks := opts.Quirks
	if quirks == (Quirks{}) {
		quirks = DefaultQuirks()
	}

	rnd := opts.Rand
	if rnd == nil {
		rnd = newMathRandSource(opts.Seed)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	vm := &VM{
		pc:                  EntryPoint,
		quirks:              quirks,
		rand:                rnd,
		haltOnUnknownOpcode: opts.HaltOnUnknownOpcode,
		logger:              logger,
		state:               StateRunning,
	}
	vm.mem.loadFont()
	return vm
}

// LoadROM copies rom into memory starting at EntryPoint. Returns
// ErrRomTooLarge if rom does not fit in the remaining 3584 bytes. The ROM
// bytes are retained so Reset can reload them without the caller supplying
// rom again.
func (vm *VM) LoadROM(rom []byte) error {
	if err := vm.mem.loadROM(rom); err != nil {
		return err
	}
	vm.rom = append([]byte(nil), rom...)
	return nil
}

// LoadROMFrom reads all of r and loads it as a ROM, mirroring the
// io.Reader-based loaders some of the retrieved interpreters offer
// alongside a raw []byte API.
func (vm *VM) LoadROMFrom(r io.Reader) error {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	return vm.LoadROM(data)
}

// Step fetches, decodes, and executes exactly one instruction. It does not
// tick timers; a host should call Step instructions_per_frame times per
// frame, then TickTimers once. If the VM is Halted, Step immediately
// returns the fault that halted it without executing anything.
func (vm *VM) Step() error {
	if vm.state == StateHalted {
		return vm.fault
	}

	word := uint16(vm.mem.read(vm.pc))<<8 | uint16(vm.mem.read(vm.pc+1))
	ins := decode(word)

	vm.pc += 2

	if err := vm.execute(ins); err != nil {
		vm.fault = newFault(err, vm.pc-2, word)
		vm.state = StateHalted
		return vm.fault
	}

	return nil
}

// SetKey marks keypad index idx (0x0-0xF) as down or up. Indices outside
// that range are ignored.
func (vm *VM) SetKey(idx int, down bool) {
	vm.keys.set(idx, down)
}

// Framebuffer returns a read-only snapshot of the 64x32 display, row-major,
// index = y*64+x.
func (vm *VM) Framebuffer() [ScreenSize]bool {
	return [ScreenSize]bool(vm.fb)
}

// State reports whether the VM is still running or has halted on a fault.
func (vm *VM) State() State {
	return vm.state
}

// Fault returns the fault that halted the VM, or nil if it's still
// running.
func (vm *VM) Fault() *Fault {
	return vm.fault
}

// Reset reloads the font, zeros registers, stack, framebuffer, keypad, and
// timers, sets PC back to EntryPoint, and clears any fault -- but keeps the
// most recently loaded ROM resident, so a host can offer a "restart" action
// without re-reading the ROM file.
func (vm *VM) Reset() {
	rom := vm.rom
	*vm = VM{
		pc:                  EntryPoint,
		quirks:              vm.quirks,
		rand:                vm.rand,
		haltOnUnknownOpcode: vm.haltOnUnknownOpcode,
		logger:              vm.logger,
		state:               StateRunning,
	}
	vm.mem.loadFont()
	if len(rom) > 0 {
		_ = vm.LoadROM(rom)
	}
}

// String renders a one-line debug dump of register and control state,
// useful for test failure messages and the tui debug HUD.
func (vm *VM) String() string {
	return fmt.Sprintf(
		"pc=0x%03X i=0x%03X sp=%d dt=%d st=%d v=%02X",
		vm.pc, vm.i, vm.stack.sp, vm.dt, vm.st, vm.v,
	)
}
