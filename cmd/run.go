package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-chippy/chippy/internal/audio"
	"github.com/go-chippy/chippy/internal/chip8"
	"github.com/go-chippy/chippy/internal/pixel"
	"github.com/go-chippy/chippy/internal/tui"
)

var (
	flagClockHz             int
	flagInstructionsPerTick int
	flagTUI                 bool
	flagShiftQuirk          bool
	flagJumpQuirk           bool
	flagLoadStoreQuirk      bool
	flagHaltOnUnknown       bool
)

// runCmd runs the chippy virtual machine against a ROM until the window is
// closed (escape in --tui mode) or the VM faults.
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run the chippy emulator",
	Args:  cobra.ExactArgs(1),
	Run:   runChippy,
}

func init() {
	runCmd.Flags().IntVar(&flagClockHz, "hz", 500, "instruction clock speed, in Hz")
	runCmd.Flags().IntVar(&flagInstructionsPerTick, "ipf", 0, "instructions executed per 60Hz frame (0 = derive from --hz)")
	runCmd.Flags().BoolVar(&flagTUI, "tui", false, "render to the terminal instead of opening a window")
	runCmd.Flags().BoolVar(&flagShiftQuirk, "shift-in-place", true, "8XY6/8XYE shift VX in place, ignoring VY")
	runCmd.Flags().BoolVar(&flagJumpQuirk, "jump-v0", true, "BNNN jumps to NNN+V0 (false: NNN+VX)")
	runCmd.Flags().BoolVar(&flagLoadStoreQuirk, "load-store-i-unchanged", true, "FX55/FX65 leave I unchanged")
	runCmd.Flags().BoolVar(&flagHaltOnUnknown, "halt-on-unknown-opcode", false, "halt instead of soft no-op on an unrecognized opcode")
}

func runChippy(cmd *cobra.Command, args []string) {
	pathToROM := args[0]

	rom, err := ioutil.ReadFile(pathToROM)
	if err != nil {
		fmt.Println(errors.Wrapf(err, "reading rom %s", pathToROM))
		os.Exit(1)
	}

	ipf := flagInstructionsPerTick
	if ipf <= 0 {
		ipf = flagClockHz / 60
		if ipf < 1 {
			ipf = 1
		}
	}

	vm := chip8.NewVM(&chip8.Options{
		Quirks: chip8.Quirks{
			ShiftInPlace:     flagShiftQuirk,
			JumpUsesV0:       flagJumpQuirk,
			CompatIUnchanged: flagLoadStoreQuirk,
		},
		HaltOnUnknownOpcode: flagHaltOnUnknown,
	})

	if err := vm.LoadROM(rom); err != nil {
		fmt.Println(errors.Wrap(err, "loading rom into vm"))
		os.Exit(1)
	}

	if flagTUI {
		runHeadless(vm, ipf)
		return
	}

	runWindowed(vm, ipf)
}

// runWindowed drives the frame loop against a faiface/pixel GUI window and
// a beep-backed audio engine, per the host-scheduling contract: poll input,
// step N times, tick timers once, render, gate audio.
func runWindowed(vm *chip8.VM, ipf int) {
	win, err := pixel.NewWindow()
	if err != nil {
		fmt.Println(errors.Wrap(err, "creating window"))
		os.Exit(1)
	}

	player, err := audio.NewPlayer()
	if err != nil {
		fmt.Println("warning: audio disabled:", err)
	} else {
		defer player.Close()
	}

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for range ticker.C {
		if win.Closed() {
			return
		}

		win.HandleKeyInput(vm)

		faulted := false
		for i := 0; i < ipf; i++ {
			if err := vm.Step(); err != nil {
				fmt.Println("fault:", err)
				faulted = true
				break
			}
		}
		vm.TickTimers()

		win.DrawGraphics(vm.Framebuffer())

		if player != nil {
			player.SetActive(vm.SoundActive())
		}

		if faulted {
			return
		}
	}
}

// runHeadless drives the same frame loop against the termbox-based debug
// renderer, with no audio engine (termbox owns the terminal; a speaker
// would fight it for the same process's stdio in most demo environments).
func runHeadless(vm *chip8.VM, ipf int) {
	renderer, err := tui.NewRenderer()
	if err != nil {
		fmt.Println(errors.Wrap(err, "creating terminal renderer"))
		os.Exit(1)
	}
	defer renderer.Close()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for range ticker.C {
		if renderer.PollKeys(vm) == tui.QuitRequested {
			return
		}

		for i := 0; i < ipf; i++ {
			if err := vm.Step(); err != nil {
				renderer.ShowFault(err)
				return
			}
		}
		vm.TickTimers()

		renderer.Draw(vm)
	}
}
