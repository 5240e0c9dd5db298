package chip8

// KeypadSize is the number of hexadecimal keys on the CHIP-8 keypad.
const KeypadSize = 16

// keypad is the 16-key hexadecimal input device. Only SetKey mutates it;
// the executor only reads it.
type keypad [KeypadSize]bool

// set marks key idx as down or up. Indices outside 0x0-0xF are ignored.
func (k *keypad) set(idx int, down bool) {
	if idx < 0 || idx >= KeypadSize {
		return
	}
	k[idx] = down
}

// down reports whether the key at idx is currently pressed. Indices
// outside 0x0-0xF read as not pressed.
func (k *keypad) down(idx byte) bool {
	if int(idx) >= KeypadSize {
		return false
	}
	return k[idx]
}

// lowestPressed returns the lowest-indexed pressed key and true, or
// (0, false) if none is pressed. Used by the FX0A blocking key wait.
func (k *keypad) lowestPressed() (byte, bool) {
	for i, down := range k {
		if down {
			return byte(i), true
		}
	}
	return 0, false
}

// reset releases every key.
func (k *keypad) reset() {
	*k = keypad{}
}
