package cpu

// executePSRTransfer implements MRS and the two MSR sub-forms (§4.7).
// Sub-form is selected by bits [21:16] of the opcode; the spec's open
// question about the source's `>` vs `>>` typos is resolved here using
// the canonical right-shift field extraction.
func (c *CPU) executePSRTransfer(inst *instruction) {
	op := inst.opcode
	subForm := op & 0x003F0000
	usesSPSR := (op>>22)&1 == 1

	switch subForm {
	case 0x000F0000: // MRS Rd, PSR
		rd := int((op >> 12) & 0xF)
		var value uint32
		if usesSPSR {
			value = c.Regs.SPSRCurrent()
		} else {
			value = c.Regs.CPSR()
		}
		c.Regs.Set(rd, value)

	case 0x00290000: // MSR PSR_all, Rm
		rm := int(op & 0xF)
		value := c.Regs.Get(rm)
		c.writePSR(usesSPSR, value)

	case 0x00280000: // MSR PSR_flg, Rm/#imm — flag bits [31:28] only
		var source uint32
		if (op>>25)&1 == 1 {
			imm := op & 0xFF
			rotate := ((op >> 8) & 0xF) * 2
			source = rotateRight(imm, rotate)
		} else {
			rm := int(op & 0xF)
			source = c.Regs.Get(rm)
		}
		dest := c.psrDest(usesSPSR)
		merged := (dest &^ 0xF0000000) | (source & 0xF0000000)
		c.writePSR(usesSPSR, merged)
	}

	c.charge(c.Weights.S)
	c.advancePC(inst.address)
}

func (c *CPU) psrDest(usesSPSR bool) uint32 {
	if usesSPSR {
		return c.Regs.SPSRCurrent()
	}
	return c.Regs.CPSR()
}

func (c *CPU) writePSR(usesSPSR bool, value uint32) {
	if usesSPSR {
		c.Regs.SetSPSRCurrent(value)
	} else {
		c.Regs.SetCPSR(value)
	}
}
