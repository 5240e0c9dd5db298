package chip8

// execute dispatches a decoded instruction on the high nibble and performs
// its effect. PC has already been advanced by 2 by the caller (Step);
// instructions that branch overwrite PC again here.
//
// All arithmetic on V is modulo 256 (byte wraps naturally in Go). I wraps
// modulo 0x10000 except where used as a memory address, where memory.read
// and memory.write wrap modulo MemorySize. Flag-write quirk: for
// 8XY4/5/7/6/E, VF is written after the result lands in VX, so an
// instruction targeting VF (x == 0xF) clobbers the result with the flag.
func (vm *VM) execute(ins instruction) error {
	switch ins.opcode & 0xF000 {
	case 0x0000:
		switch ins.nn {
		case 0xE0: // 00E0 - clear the screen
			vm.fb.clear()
		case 0xEE: // 00EE - return from subroutine
			addr, err := vm.stack.pop()
			if err != nil {
				return err
			}
			vm.pc = addr
		default:
			return vm.unknown(ins)
		}

	case 0x1000: // 1NNN - jump
		vm.pc = ins.nnn

	case 0x2000: // 2NNN - call
		if err := vm.stack.push(vm.pc); err != nil {
			return err
		}
		vm.pc = ins.nnn

	case 0x3000: // 3XNN - skip if Vx == NN
		if vm.v[ins.x] == ins.nn {
			vm.pc += 2
		}

	case 0x4000: // 4XNN - skip if Vx != NN
		if vm.v[ins.x] != ins.nn {
			vm.pc += 2
		}

	case 0x5000: // 5XY0 - skip if Vx == Vy
		if vm.v[ins.x] == vm.v[ins.y] {
			vm.pc += 2
		}

	case 0x6000: // 6XNN - Vx = NN
		vm.v[ins.x] = ins.nn

	case 0x7000: // 7XNN - Vx += NN, VF unchanged
		vm.v[ins.x] += ins.nn

	case 0x8000:
		return vm.executeALU(ins)

	case 0x9000: // 9XY0 - skip if Vx != Vy
		if vm.v[ins.x] != vm.v[ins.y] {
			vm.pc += 2
		}

	case 0xA000: // ANNN - I = NNN
		vm.i = ins.nnn

	case 0xB000: // BNNN - jump to NNN + V0 (jump quirk; NNN + VX if JumpUsesV0 is false)
		base := vm.v[0]
		if !vm.quirks.JumpUsesV0 {
			base = vm.v[ins.x]
		}
		vm.pc = (ins.nnn + uint16(base)) & 0x0FFF

	case 0xC000: // CXNN - Vx = random & NN
		vm.v[ins.x] = vm.rand.Byte() & ins.nn

	case 0xD000: // DXYN - sprite blit
		collision := vm.fb.drawSprite(&vm.mem, vm.i, vm.v[ins.x], vm.v[ins.y], ins.n)
		if collision {
			vm.v[0xF] = 1
		} else {
			vm.v[0xF] = 0
		}

	case 0xE000:
		switch ins.nn {
		case 0x9E: // EX9E - skip if key Vx down
			if vm.keys.down(vm.v[ins.x] & 0xF) {
				vm.pc += 2
			}
		case 0xA1: // EXA1 - skip if key Vx up
			if !vm.keys.down(vm.v[ins.x] & 0xF) {
				vm.pc += 2
			}
		default:
			return vm.unknown(ins)
		}

	case 0xF000:
		return vm.executeMisc(ins)

	default:
		return vm.unknown(ins)
	}

	return nil
}

// executeALU handles the 8XY* register-to-register ALU family.
func (vm *VM) executeALU(ins instruction) error {
	x, y := ins.x, ins.y

	switch ins.n {
	case 0x0: // 8XY0 - Vx = Vy
		vm.v[x] = vm.v[y]

	case 0x1: // 8XY1 - Vx |= Vy
		vm.v[x] |= vm.v[y]

	case 0x2: // 8XY2 - Vx &= Vy
		vm.v[x] &= vm.v[y]

	case 0x3: // 8XY3 - Vx ^= Vy
		vm.v[x] ^= vm.v[y]

	case 0x4: // 8XY4 - Vx += Vy, VF = carry
		sum := uint16(vm.v[x]) + uint16(vm.v[y])
		vm.v[x] = byte(sum)
		vm.setFlag(sum > 0xFF)

	case 0x5: // 8XY5 - Vx -= Vy, VF = NOT borrow
		borrow := vm.v[x] >= vm.v[y]
		vm.v[x] = vm.v[x] - vm.v[y]
		vm.setFlag(borrow)

	case 0x6: // 8XY6 - shift right, VF = shifted-out bit
		src := vm.v[x]
		if !vm.quirks.ShiftInPlace {
			src = vm.v[y]
		}
		lsb := src & 0x01
		vm.v[x] = src >> 1
		vm.setFlag(lsb != 0)

	case 0x7: // 8XY7 - Vx = Vy - Vx, VF = NOT borrow
		borrow := vm.v[y] >= vm.v[x]
		vm.v[x] = vm.v[y] - vm.v[x]
		vm.setFlag(borrow)

	case 0xE: // 8XYE - shift left, VF = shifted-out bit
		src := vm.v[x]
		if !vm.quirks.ShiftInPlace {
			src = vm.v[y]
		}
		msb := (src >> 7) & 0x01
		vm.v[x] = src << 1
		vm.setFlag(msb != 0)

	default:
		return vm.unknown(ins)
	}

	return nil
}

// setFlag writes VF after the arithmetic result has already landed in VX,
// so when the instruction's own target register is VF (x == 0xF) the flag
// clobbers the arithmetic result, per the flag-write quirk.
func (vm *VM) setFlag(set bool) {
	if set {
		vm.v[0xF] = 1
	} else {
		vm.v[0xF] = 0
	}
}

// executeMisc handles the FX** family.
func (vm *VM) executeMisc(ins instruction) error {
	x := ins.x

	switch ins.nn {
	case 0x07: // FX07 - Vx = DT
		vm.v[x] = vm.dt

	case 0x0A: // FX0A - blocking key wait
		key, ok := vm.keys.lowestPressed()
		if !ok {
			vm.pc -= 2 // rewind: re-execute this instruction next Step
			return nil
		}
		vm.v[x] = key

	case 0x15: // FX15 - DT = Vx
		vm.dt = vm.v[x]

	case 0x18: // FX18 - ST = Vx
		vm.st = vm.v[x]

	case 0x1E: // FX1E - I += Vx, VF unaffected
		vm.i = (vm.i + uint16(vm.v[x])) & 0xFFFF

	case 0x29: // FX29 - I = font glyph address for low nibble of Vx
		vm.i = fontAddr(vm.v[x])

	case 0x33: // FX33 - BCD of Vx at I, I+1, I+2
		val := vm.v[x]
		vm.mem.write(vm.i, val/100)
		vm.mem.write(vm.i+1, (val/10)%10)
		vm.mem.write(vm.i+2, val%10)

	case 0x55: // FX55 - store V0..Vx to mem[I..]
		for i := uint16(0); i <= uint16(x); i++ {
			vm.mem.write(vm.i+i, vm.v[i])
		}
		if !vm.quirks.CompatIUnchanged {
			vm.i += uint16(x) + 1
		}

	case 0x65: // FX65 - load V0..Vx from mem[I..]
		for i := uint16(0); i <= uint16(x); i++ {
			vm.v[i] = vm.mem.read(vm.i + i)
		}
		if !vm.quirks.CompatIUnchanged {
			vm.i += uint16(x) + 1
		}

	default:
		return vm.unknown(ins)
	}

	return nil
}

// unknown handles an unrecognized opcode. Depending on HaltOnUnknownOpcode
// this either halts the VM with ErrUnknownOpcode or is a no-op that writes
// one line to the VM's logger (PC has already advanced by 2 in Step, so
// execution simply continues at the next word).
func (vm *VM) unknown(ins instruction) error {
	if vm.haltOnUnknownOpcode {
		return ErrUnknownOpcode
	}
	vm.logger.Printf("chip8: unknown opcode 0x%04X at pc=0x%03X (soft no-op)", ins.opcode, vm.pc-2)
	return nil
}
