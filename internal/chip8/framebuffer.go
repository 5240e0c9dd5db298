package chip8

// ScreenWidth and ScreenHeight are the CHIP-8 display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
	ScreenSize   = ScreenWidth * ScreenHeight
)

// framebuffer is the 64x32 monochrome display, row-major, origin top-left.
type framebuffer [ScreenSize]bool

// clear sets every pixel false. VF is untouched by the caller (00E0 leaves
// VF unchanged).
func (fb *framebuffer) clear() {
	*fb = framebuffer{}
}

// at returns the pixel at (x, y).
func (fb *framebuffer) at(x, y int) bool {
	return fb[y*ScreenWidth+x]
}

// drawSprite XORs an N-byte-tall, 8-bit-wide sprite read from mem starting
// at addr onto the framebuffer at (vx, vy), wrapping the starting
// coordinate but clipping the sprite at the right/bottom edge. Returns true
// if any sprite pixel collided with an already-set screen pixel.
func (fb *framebuffer) drawSprite(mem *memory, addr uint16, vx, vy byte, n byte) bool {
	sx := int(vx) % ScreenWidth
	sy := int(vy) % ScreenHeight
	collision := false

	for row := 0; row < int(n); row++ {
		py := sy + row
		if py >= ScreenHeight {
			break
		}

		b := mem.read(addr + uint16(row))
		for bit := 0; bit < 8; bit++ {
			px := sx + bit
			if px >= ScreenWidth {
				break
			}

			spriteBit := (b>>(7-bit))&1 != 0
			if !spriteBit {
				continue
			}

			idx := py*ScreenWidth + px
			if fb[idx] {
				collision = true
			}
			fb[idx] = !fb[idx]
		}
	}

	return collision
}
