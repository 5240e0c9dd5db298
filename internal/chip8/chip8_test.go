package chip8

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestVM(t *testing.T) *VM {
	t.Helper()
	return NewVM(&Options{
		Quirks: DefaultQuirks(),
		Rand:   &counterRandSource{},
	})
}

func loadAndRun(t *testing.T, rom []byte, steps int) *VM {
	t.Helper()
	vm := newTestVM(t)
	require.NoError(t, vm.LoadROM(rom))
	for i := 0; i < steps; i++ {
		require.NoError(t, vm.Step())
	}
	return vm
}

func TestLoadROM_TooLarge(t *testing.T) {
	vm := newTestVM(t)
	rom := make([]byte, MaxROMSize+1)
	require.ErrorIs(t, vm.LoadROM(rom), ErrRomTooLarge)
}

func TestAddWithCarry(t *testing.T) {
	rom := []byte{0x6A, 0xFF, 0x6B, 0x01, 0x8A, 0xB4}
	vm := loadAndRun(t, rom, 3)

	require.Equal(t, byte(0x00), vm.v[0xA])
	require.Equal(t, byte(0x01), vm.v[0xB])
	require.Equal(t, byte(1), vm.v[0xF])
	require.Equal(t, uint16(0x206), vm.pc)
}

func TestSubWithoutBorrow(t *testing.T) {
	rom := []byte{0x6A, 0x05, 0x6B, 0x03, 0x8A, 0xB5}
	vm := loadAndRun(t, rom, 3)

	require.Equal(t, byte(0x02), vm.v[0xA])
	require.Equal(t, byte(1), vm.v[0xF])
}

func TestSubWithBorrow(t *testing.T) {
	rom := []byte{0x6A, 0x03, 0x6B, 0x05, 0x8A, 0xB5}
	vm := loadAndRun(t, rom, 3)

	require.Equal(t, byte(0xFE), vm.v[0xA])
	require.Equal(t, byte(0), vm.v[0xF])
}

func TestSkipIfEqualTaken(t *testing.T) {
	rom := []byte{
		0x60, 0x42, // 0x200: V0 = 0x42
		0x30, 0x42, // 0x202: skip next if V0 == 0x42 (true)
		0x60, 0x99, // 0x204: V0 = 0x99 -- must be skipped
		0x00, 0xE0, // 0x206: landing pad, clears the screen
	}
	vm := loadAndRun(t, rom, 3)

	require.Equal(t, uint16(0x208), vm.pc)
	require.Equal(t, byte(0x42), vm.v[0])
}

func TestSkipIfNotEqualNeverSkips(t *testing.T) {
	rom := []byte{
		0x60, 0x11, // V0 = 0x11
		0x40, 0x11, // skip if V0 != 0x11 (false, never skips)
		0x60, 0x22, // V0 = 0x22
	}
	vm := loadAndRun(t, rom, 3)
	require.Equal(t, byte(0x22), vm.v[0])
}

func TestCallAndReturn(t *testing.T) {
	rom := []byte{
		0x22, 0x06, // 0x200: call 0x206
		0x00, 0x00, // 0x202: padding
		0x00, 0x00, // 0x204: padding
		0x00, 0xEE, // 0x206: return
	}
	vm := newTestVM(t)
	require.NoError(t, vm.LoadROM(rom))

	require.NoError(t, vm.Step())
	require.Equal(t, uint16(0x206), vm.pc)
	require.Equal(t, 1, vm.stack.sp)
	require.Equal(t, uint16(0x202), vm.stack.frames[0])

	require.NoError(t, vm.Step())
	require.Equal(t, uint16(0x202), vm.pc)
	require.Equal(t, 0, vm.stack.sp)
}

func TestSpriteCollision(t *testing.T) {
	vm := newTestVM(t)
	// Point I at font glyph '0' and draw it at (0,0), then draw it again.
	vm.v[0] = 0
	vm.v[1] = 0
	vm.i = fontAddr(0)

	require.NoError(t, vm.execute(decode(0xD015)))
	require.Equal(t, byte(0), vm.v[0xF])
	require.True(t, vm.fb.at(0, 0))

	require.NoError(t, vm.execute(decode(0xD015)))
	require.Equal(t, byte(1), vm.v[0xF])
	for _, on := range vm.fb {
		require.False(t, on)
	}
}

func TestBCD(t *testing.T) {
	vm := newTestVM(t)
	vm.v[0] = 156
	vm.i = 0x300

	require.NoError(t, vm.execute(decode(0xF033)))
	require.Equal(t, byte(1), vm.mem.read(0x300))
	require.Equal(t, byte(5), vm.mem.read(0x301))
	require.Equal(t, byte(6), vm.mem.read(0x302))
}

func TestBlockingKeyWait(t *testing.T) {
	vm := newTestVM(t)
	require.NoError(t, vm.LoadROM([]byte{0xF0, 0x0A}))

	require.NoError(t, vm.Step())
	require.Equal(t, uint16(0x200), vm.pc, "no key pressed: re-executes")

	vm.SetKey(0x7, true)
	require.NoError(t, vm.Step())
	require.Equal(t, byte(0x7), vm.v[0])
	require.Equal(t, uint16(0x202), vm.pc)
}

func TestClearScreenLeavesVFUnchanged(t *testing.T) {
	vm := newTestVM(t)
	vm.fb[0] = true
	vm.v[0xF] = 0x42

	require.NoError(t, vm.execute(decode(0x00E0)))
	for _, on := range vm.fb {
		require.False(t, on)
	}
	require.Equal(t, byte(0x42), vm.v[0xF])
}

func TestAnnnThenFX1E(t *testing.T) {
	vm := newTestVM(t)
	vm.v[3] = 0x10

	require.NoError(t, vm.execute(decode(0xA300)))
	require.NoError(t, vm.execute(decode(0xF31E)))
	require.Equal(t, uint16(0x310), vm.i)
}

func TestStackOverflowHaltsVM(t *testing.T) {
	vm := newTestVM(t)
	rom := make([]byte, 2*(StackCapacity+1))
	for i := 0; i < StackCapacity+1; i++ {
		rom[2*i] = 0x22
		rom[2*i+1] = 0x00 // call address 0x200, recursing
	}
	require.NoError(t, vm.LoadROM(rom))

	var err error
	for i := 0; i < StackCapacity+1; i++ {
		err = vm.Step()
	}
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStackOverflow)
	require.Equal(t, StateHalted, vm.State())

	// Halted VM keeps returning the same fault.
	err2 := vm.Step()
	require.Equal(t, err, err2)
}

func TestTickTimersNeverWrapsUpward(t *testing.T) {
	vm := newTestVM(t)
	vm.dt = 1
	vm.st = 0

	vm.TickTimers()
	require.Equal(t, byte(0), vm.dt)
	require.False(t, vm.SoundActive())

	vm.TickTimers()
	require.Equal(t, byte(0), vm.dt)
}

func TestResetKeepsROM(t *testing.T) {
	vm := newTestVM(t)
	rom := []byte{0x60, 0x42}
	require.NoError(t, vm.LoadROM(rom))
	require.NoError(t, vm.Step())
	require.Equal(t, byte(0x42), vm.v[0])

	vm.Reset()
	require.Equal(t, uint16(EntryPoint), vm.pc)
	require.Equal(t, byte(0), vm.v[0])

	require.NoError(t, vm.Step())
	require.Equal(t, byte(0x42), vm.v[0], "rom should still be resident after reset")
}

func TestLoadStoreQuirkLeavesIUnchanged(t *testing.T) {
	vm := newTestVM(t)
	vm.v[0], vm.v[1], vm.v[2] = 1, 2, 3
	vm.i = 0x300

	require.NoError(t, vm.execute(decode(0xF255))) // store V0..V2
	require.Equal(t, uint16(0x300), vm.i)

	vm.v[0], vm.v[1], vm.v[2] = 0, 0, 0
	require.NoError(t, vm.execute(decode(0xF265))) // load V0..V2
	require.Equal(t, byte(1), vm.v[0])
	require.Equal(t, byte(2), vm.v[1])
	require.Equal(t, byte(3), vm.v[2])
	require.Equal(t, uint16(0x300), vm.i)
}

func TestUnknownOpcodeSoftNoOpByDefault(t *testing.T) {
	vm := newTestVM(t)
	require.NoError(t, vm.LoadROM([]byte{0x00, 0x01})) // 0NNN not 00E0/00EE
	require.NoError(t, vm.Step())
	require.Equal(t, StateRunning, vm.State())
}

func TestUnknownOpcodeHaltsWhenConfigured(t *testing.T) {
	vm := NewVM(&Options{HaltOnUnknownOpcode: true, Rand: &counterRandSource{}})
	require.NoError(t, vm.LoadROM([]byte{0x00, 0x01}))
	err := vm.Step()
	require.ErrorIs(t, err, ErrUnknownOpcode)
	require.Equal(t, StateHalted, vm.State())
}
