package cpu

// signExtend24 sign-extends a 24-bit field to 32 bits.
func signExtend24(value uint32) int32 {
	if value&0x00800000 != 0 {
		return int32(value | 0xFF000000)
	}
	return int32(value)
}

// executeBranch implements B and BL (§4.7). The offset field is
// shifted left 2 (word-aligned) and sign-extended, then added to the
// raw instruction address plus the 4-byte prefetch offset. BL additionally
// latches R14 to instrAddr+4, matching the PC-timing convention
// recorded in DESIGN.md.
func (c *CPU) executeBranch(inst *instruction) {
	op := inst.opcode
	link := (op>>24)&1 == 1

	offset := signExtend24(op&0x00FFFFFF) << 2
	target := uint32(int32(inst.address) + offset + 4)

	if link {
		c.Regs.Set(LR, inst.address+4)
	}

	c.Regs.SetPC(target)

	c.charge(2*c.Weights.S + c.Weights.N)
}
