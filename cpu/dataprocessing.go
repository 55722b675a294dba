package cpu

// Data processing opcodes (bits [24:21]).
const (
	dpAND = 0x0
	dpEOR = 0x1
	dpSUB = 0x2
	dpRSB = 0x3
	dpADD = 0x4
	dpADC = 0x5
	dpSBC = 0x6
	dpRSC = 0x7
	dpTST = 0x8
	dpTEQ = 0x9
	dpCMP = 0xA
	dpCMN = 0xB
	dpORR = 0xC
	dpMOV = 0xD
	dpBIC = 0xE
	dpMVN = 0xF
)

// addCarryOverflow computes a+b+carryIn as a true 33-bit addition,
// returning the truncated 32-bit result plus the carry and overflow
// flags. SUB/RSB/SBC/RSC all reduce to this by adding the one's
// complement of the subtrahend with an appropriate carry-in — the
// same trick real ARM ALUs use, which is why it produces the
// canonical overflow formula V = ((a^result)&(b^result))>>31 for
// every data-processing arithmetic opcode without a special case.
func addCarryOverflow(a, b, carryIn uint32) (result uint32, carry, overflow bool) {
	sum := uint64(a) + uint64(b) + uint64(carryIn)
	result = uint32(sum)
	carry = sum > 0xFFFFFFFF
	overflow = ((a^result)&(b^result))>>31 != 0
	return
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// executeDataProcessing implements the sixteen data-processing
// opcodes (§4.7). Rn (and an immediate-shift Rm) read PC as
// instrAddr+4; a register-shift Rm reads PC as instrAddr+8.
func (c *CPU) executeDataProcessing(inst *instruction) {
	op := inst.opcode
	opcode := (op >> 21) & 0xF
	immediate := (op>>25)&1 == 1
	setFlags := (op>>20)&1 == 1

	rd := int((op >> 12) & 0xF)
	rn := int((op >> 16) & 0xF)

	op1 := c.readOperand(rn, 4)

	var op2 uint32
	var shiftCarry bool
	extraI := false

	if immediate {
		imm := op & 0xFF
		rotate := ((op >> 8) & 0xF) * 2
		if rotate == 0 {
			op2 = imm
			shiftCarry = PSRC(c.Regs.CPSR())
		} else {
			op2 = rotateRight(imm, rotate)
			shiftCarry = op2&0x80000000 != 0
		}
	} else {
		rm := int(op & 0xF)
		shiftType := ShiftType((op >> 5) & 0x3)
		registerForm := (op>>4)&1 == 1

		var amount uint32
		var rmValue uint32
		if registerForm {
			rs := int((op >> 8) & 0xF)
			amount = c.Regs.Get(rs) & 0xFF
			rmValue = c.readOperand(rm, 8)
			extraI = true
		} else {
			amount = (op >> 7) & 0x1F
			rmValue = c.readOperand(rm, 4)
		}

		op2, shiftCarry = ShiftOperand(shiftType, amount, registerForm, rmValue, PSRC(c.Regs.CPSR()))
	}

	var result uint32
	var carry, overflow bool
	writeResult := true
	logical := false

	carryInBit := boolToUint32(PSRC(c.Regs.CPSR()))

	switch opcode {
	case dpAND:
		result, carry, logical = op1&op2, shiftCarry, true
	case dpEOR:
		result, carry, logical = op1^op2, shiftCarry, true
	case dpSUB:
		result, carry, overflow = addCarryOverflow(op1, ^op2, 1)
	case dpRSB:
		result, carry, overflow = addCarryOverflow(op2, ^op1, 1)
	case dpADD:
		result, carry, overflow = addCarryOverflow(op1, op2, 0)
	case dpADC:
		result, carry, overflow = addCarryOverflow(op1, op2, carryInBit)
	case dpSBC:
		result, carry, overflow = addCarryOverflow(op1, ^op2, carryInBit)
	case dpRSC:
		result, carry, overflow = addCarryOverflow(op2, ^op1, carryInBit)
	case dpTST:
		result, carry, logical, writeResult = op1&op2, shiftCarry, true, false
	case dpTEQ:
		result, carry, logical, writeResult = op1^op2, shiftCarry, true, false
	case dpCMP:
		result, carry, overflow = addCarryOverflow(op1, ^op2, 1)
		writeResult = false
	case dpCMN:
		result, carry, overflow = addCarryOverflow(op1, op2, 0)
		writeResult = false
	case dpORR:
		result, carry, logical = op1|op2, shiftCarry, true
	case dpMOV:
		result, carry, logical = op2, shiftCarry, true
	case dpBIC:
		result, carry, logical = op1&^op2, shiftCarry, true
	case dpMVN:
		result, carry, logical = ^op2, shiftCarry, true
	}

	// TST/TEQ/CMP/CMN always set flags regardless of the S bit.
	updateFlags := setFlags || !writeResult

	if writeResult {
		c.writeResult(rd, result)
	}

	if updateFlags {
		cpsr := c.Regs.CPSR()
		n := result&0x80000000 != 0
		z := result == 0
		if logical {
			cpsr = PSRSetFlags(cpsr, n, z, carry, PSRV(cpsr))
		} else {
			cpsr = PSRSetFlags(cpsr, n, z, carry, overflow)
		}
		c.Regs.SetCPSR(cpsr)
	}

	pcWritten := writeResult && rd == PC
	if pcWritten && setFlags {
		if c.Regs.CurrentMode() != ModeUSR {
			c.Regs.SetCPSR(c.Regs.SPSRCurrent())
		}
		// USR mode + S + Rd==PC is documented-undefined; ignored.
	}

	cycles := c.Weights.S
	if pcWritten {
		cycles += c.Weights.S + c.Weights.N
	}
	if extraI {
		cycles += c.Weights.I
	}
	c.charge(cycles)

	if !pcWritten {
		c.advancePC(inst.address)
	}
}
