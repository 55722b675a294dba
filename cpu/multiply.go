package cpu

// multiplyICycles mirrors real ARM60 multiply timing: the multiplier
// (Rs) is consumed in bytes, terminating early once the remaining
// bytes are all zero, so small multipliers are cheap.
func multiplyICycles(rs uint32) uint64 {
	switch {
	case rs&0xFFFFFF00 == 0:
		return 1
	case rs&0xFFFF0000 == 0:
		return 2
	case rs&0xFF000000 == 0:
		return 3
	default:
		return 4
	}
}

// executeMultiply implements MUL and MLA (§4.7). PC is not a legal
// operand in any field; per the documented-undefined handling in
// spec.md §7, using it here is a no-op beyond the normal fetch
// advance and cycle charge. Rm==Rd is documented-garbage and is
// implemented deterministically as a zero result.
func (c *CPU) executeMultiply(inst *instruction) {
	op := inst.opcode
	accumulate := (op>>21)&1 == 1
	setFlags := (op>>20)&1 == 1

	rd := int((op >> 16) & 0xF)
	rn := int((op >> 12) & 0xF)
	rs := int((op >> 8) & 0xF)
	rm := int(op & 0xF)

	operandIsPC := rd == PC || rm == PC || rs == PC || (accumulate && rn == PC)

	var result uint32
	rsValue := c.Regs.Get(rs)

	if !operandIsPC {
		if rm == rd {
			result = 0
		} else {
			result = c.Regs.Get(rm) * rsValue
			if accumulate {
				result += c.Regs.Get(rn)
			}
		}
		c.writeResult(rd, result)

		if setFlags {
			cpsr := c.Regs.CPSR()
			cpsr = PSRSetFlags(cpsr, result&0x80000000 != 0, result == 0, false, PSRV(cpsr))
			c.Regs.SetCPSR(cpsr)
		}
	}

	cycles := c.Weights.S + multiplyICycles(rsValue)*c.Weights.I
	if accumulate {
		cycles += c.Weights.I
	}
	c.charge(cycles)
	c.advancePC(inst.address)
}
