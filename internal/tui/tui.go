// Package tui is a headless debug frontend: it renders the CHIP-8
// framebuffer and reads the keypad from a terminal via termbox-go, so the
// CORE can be driven and demoed without a GPU/X11 session.
package tui

import (
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/go-chippy/chippy/internal/chip8"
)

// PollResult reports what PollKeys observed this frame.
type PollResult int

const (
	// NoEvent means escape was not pressed this frame; any keypad events
	// that arrived were forwarded to the VM.
	NoEvent PollResult = iota
	// QuitRequested means the escape key was pressed.
	QuitRequested
)

// keyMap mirrors the CHIP-8 QWERTY convention: 1234/QWER/ASDF/ZXCV maps to
// 123C/456D/789E/A0BF.
var keyMap = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

const (
	onCell  = '█'
	offCell = ' '
)

// Renderer owns the termbox terminal session and a background goroutine
// that polls for key events, following the poll-into-a-channel pattern
// termbox-based CHIP-8 frontends use to keep PollEvent's blocking call off
// the frame-driver goroutine.
type Renderer struct {
	events chan termbox.Event
}

// NewRenderer initializes termbox and starts the event-polling goroutine.
func NewRenderer() (*Renderer, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)

	r := &Renderer{events: make(chan termbox.Event)}
	go r.poll()
	return r, nil
}

func (r *Renderer) poll() {
	for {
		r.events <- termbox.PollEvent()
	}
}

// Close restores the terminal.
func (r *Renderer) Close() {
	termbox.Close()
}

// PollKeys drains whatever key events have queued since the last call,
// forwarding each into vm via SetKey, and returns QuitRequested if escape
// was among them. Unlike the windowed renderer's held-key tracking,
// termbox reports discrete presses, so a key read here is forwarded as a
// momentary SetKey(idx, true) that the next PollKeys call releases --
// enough to satisfy EX9E/FX0A polls between frames without a release edge
// to track.
func (r *Renderer) PollKeys(vm *chip8.VM) PollResult {
	for idx := 0; idx < chip8.KeypadSize; idx++ {
		vm.SetKey(idx, false)
	}
	for {
		select {
		case ev := <-r.events:
			if ev.Type != termbox.EventKey {
				continue
			}
			if ev.Key == termbox.KeyEsc {
				return QuitRequested
			}
			if idx, ok := keyMap[ev.Ch]; ok {
				vm.SetKey(idx, true)
			}
		default:
			return NoEvent
		}
	}
}

// Draw renders the framebuffer as block characters and a one-line register
// dump beneath it.
func (r *Renderer) Draw(vm *chip8.VM) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	fb := vm.Framebuffer()
	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			ch := offCell
			if fb[y*chip8.ScreenWidth+x] {
				ch = onCell
			}
			termbox.SetCell(x, y, ch, termbox.ColorWhite, termbox.ColorDefault)
		}
	}

	drawLine(chip8.ScreenHeight+1, vm.String())
	termbox.Flush()
}

// ShowFault clears the screen and renders a fatal error on its top row; the
// caller is expected to exit the frame loop next.
func (r *Renderer) ShowFault(err error) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	drawLine(0, fmt.Sprintf("fault: %s", err))
	termbox.Flush()
}

func drawLine(row int, s string) {
	for i, ch := range s {
		termbox.SetCell(i, row, ch, termbox.ColorRed, termbox.ColorDefault)
	}
}
