package chip8

// TickTimers decrements DT and ST by one, if positive, and should be
// called exactly once per 60 Hz frame -- never once per Step. The N
// instruction Steps per frame do not tick timers themselves.
func (vm *VM) TickTimers() {
	if vm.dt > 0 {
		vm.dt--
	}
	if vm.st > 0 {
		vm.st--
	}
}

// SoundActive reports whether the sound timer is still counting down. A
// host audio engine should gate its tone on this.
func (vm *VM) SoundActive() bool {
	return vm.st > 0
}
