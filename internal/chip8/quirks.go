package chip8

// Quirks bundles the documented behavioral choices historical CHIP-8
// interpreters diverge on. The zero value is not valid; use DefaultQuirks.
type Quirks struct {
	// ShiftInPlace selects the 8XY6/8XYE variant where VX is shifted in
	// place and VY is ignored (true, the modern default) versus the older
	// COSMAC VIP variant where VX is set to VY shifted (false).
	ShiftInPlace bool

	// JumpUsesV0 selects BNNN's jump target as NNN+V0 (true, the modern
	// default) versus NNN+VX, the variant some later SUPER-CHIP
	// interpreters use (false).
	JumpUsesV0 bool

	// CompatIUnchanged selects whether FX55/FX65 leave I untouched after
	// the loop (true, the modern default) or advance it to I+X+1, which is
	// what some historical interpreters (and some test ROMs written
	// against them) expect.
	CompatIUnchanged bool
}

// DefaultQuirks are the quirk choices this CORE fixes as its default
// behavior.
func DefaultQuirks() Quirks {
	return Quirks{
		ShiftInPlace:     true,
		JumpUsesV0:       true,
		CompatIUnchanged: true,
	}
}
