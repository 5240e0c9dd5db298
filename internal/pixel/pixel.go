// Package pixel hosts the GUI frontend: a faiface/pixel/pixelgl window that
// renders the CHIP-8 framebuffer and forwards key events into the VM. None
// of this is part of the CORE -- the VM only ever sees SetKey calls and
// hands back a read-only framebuffer snapshot.
package pixel

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/go-chippy/chippy/internal/chip8"
)

const (
	winX float64 = chip8.ScreenWidth
	winY float64 = chip8.ScreenHeight

	screenWidth  float64 = 1024
	screenHeight float64 = 768

	keyRepeatDur = time.Second / 5
)

// keyMap maps host keyboard buttons to CHIP-8 keypad indices, following the
// common QWERTY convention: 1234/QWER/ASDF/ZXCV -> 123C/456D/789E/A0BF.
var keyMap = map[byte]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Window embeds a pixelgl window and tracks how long each CHIP-8 key has
// been held so holding a key repeats into SetKey at a fixed rate.
type Window struct {
	*pixelgl.Window
	heldSince [16]time.Time
}

// NewWindow opens a pixelgl window sized for the CHIP-8 display.
func NewWindow() (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "chippy",
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %v", err)
	}
	return &Window{Window: w}, nil
}

// DrawGraphics renders a framebuffer snapshot as a grid of filled
// rectangles, one per set pixel, flipping the Y axis since CHIP-8's origin
// is top-left and pixel's is bottom-left.
func (w *Window) DrawGraphics(fb [chip8.ScreenSize]bool) {
	w.Clear(colornames.Black)
	imDraw := imdraw.New(nil)
	imDraw.Color = pixel.RGB(1, 1, 1)
	cellW, cellH := screenWidth/winX, screenHeight/winY

	for x := 0; x < chip8.ScreenWidth; x++ {
		for y := 0; y < chip8.ScreenHeight; y++ {
			if !fb[y*chip8.ScreenWidth+x] {
				continue
			}
			flippedY := chip8.ScreenHeight - 1 - y
			imDraw.Push(pixel.V(cellW*float64(x), cellH*float64(flippedY)))
			imDraw.Push(pixel.V(cellW*float64(x)+cellW, cellH*float64(flippedY)+cellH))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
	w.Update()
}

// HandleKeyInput polls the window's key state and forwards it into vm via
// SetKey, with key-repeat so a held key keeps re-triggering FX0A/EX9E.
func (w *Window) HandleKeyInput(vm *chip8.VM) {
	now := time.Now()
	for idx, btn := range keyMap {
		switch {
		case w.JustPressed(btn):
			w.heldSince[idx] = now
			vm.SetKey(int(idx), true)
		case w.Pressed(btn):
			if now.Sub(w.heldSince[idx]) >= keyRepeatDur {
				w.heldSince[idx] = now
				vm.SetKey(int(idx), true)
			}
		case w.JustReleased(btn):
			vm.SetKey(int(idx), false)
		}
	}
}
