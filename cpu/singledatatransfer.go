package cpu

func rotateLeft(value uint32, amount uint32) uint32 {
	amount %= 32
	if amount == 0 {
		return value
	}
	return (value << amount) | (value >> (32 - amount))
}

// loadWord reads a word at addr, rotating an unaligned read per the
// configured endianness rather than rejecting it (§4.1, §4.7 LDR).
func (c *CPU) loadWord(addr uint32) uint32 {
	word := c.Bus.ReadWord(addr)
	rem := addr % 4
	if rem == 0 {
		return word
	}
	rot := 8 * rem
	if c.BigEndian {
		return rotateLeft(word, rot)
	}
	return rotateRight(word, rot)
}

// loadByte and storeByte select the byte lane within the containing
// word according to endianness, so that STRB followed by LDRB at the
// same address round-trips under either endianness (§8 property 6).
func (c *CPU) loadByte(addr uint32) uint32 {
	if !c.BigEndian {
		return uint32(c.Bus.ReadByte(addr))
	}
	word := c.Bus.ReadWord(addr)
	lane := 3 - addr%4
	return (word >> (8 * lane)) & 0xFF
}

func (c *CPU) storeByte(addr uint32, value uint32) {
	if !c.BigEndian {
		c.Bus.WriteByte(addr, uint8(value))
		return
	}
	wordAddr := addr &^ 3
	lane := 3 - addr%4
	shift := 8 * lane
	word := c.Bus.ReadWord(wordAddr)
	word = (word &^ (0xFF << shift)) | ((value & 0xFF) << shift)
	c.Bus.WriteWord(wordAddr, word)
}

// executeSingleDataTransfer implements LDR/STR (word and byte forms,
// §4.7). The base register (Rn) always reads PC with the +4 prefetch
// offset, matching data processing's Rn handling; the offset, when
// register-form, uses the barrel shifter in immediate-shift form only
// (single data transfer has no register-specified shift amount).
func (c *CPU) executeSingleDataTransfer(inst *instruction) {
	op := inst.opcode
	immediateOffset := (op>>25)&1 == 0
	preIndexed := (op>>24)&1 == 1
	addUp := (op>>23)&1 == 1
	byteTransfer := (op>>22)&1 == 1
	writeBack := (op>>21)&1 == 1
	load := (op>>20)&1 == 1

	rn := int((op >> 16) & 0xF)
	rd := int((op >> 12) & 0xF)

	baseAddr := c.readOperand(rn, 4)

	var offset uint32
	if immediateOffset {
		offset = op & 0xFFF
	} else {
		rm := int(op & 0xF)
		shiftType := ShiftType((op >> 5) & 0x3)
		amount := (op >> 7) & 0x1F
		rmValue := c.Regs.Get(rm)
		offset, _ = Shift(shiftType, rmValue, amount, PSRC(c.Regs.CPSR()))
	}

	var effectiveAddr uint32
	if addUp {
		effectiveAddr = baseAddr + offset
	} else {
		effectiveAddr = baseAddr - offset
	}

	var accessAddr uint32
	if preIndexed {
		accessAddr = effectiveAddr
	} else {
		accessAddr = baseAddr
	}

	pcLoaded := false

	if load {
		var value uint32
		if byteTransfer {
			value = c.loadByte(accessAddr)
		} else {
			value = c.loadWord(accessAddr)
		}
		c.writeResult(rd, value)
		pcLoaded = rd == PC
	} else {
		var value uint32
		if rd == PC {
			value = c.Regs.PC() + 8
		} else {
			value = c.Regs.Get(rd)
		}
		if byteTransfer {
			c.storeByte(accessAddr, value)
		} else {
			c.Bus.WriteWord(accessAddr&^3, value)
		}
	}

	if rn != PC {
		if preIndexed {
			if writeBack {
				c.writeResult(rn, effectiveAddr)
			}
		} else {
			c.writeResult(rn, effectiveAddr)
		}
	}

	var cycles uint64
	if load {
		cycles = c.Weights.S + c.Weights.N + c.Weights.I
		if pcLoaded {
			cycles += c.Weights.S + c.Weights.N
		}
	} else {
		cycles = 2 * c.Weights.N
	}
	c.charge(cycles)

	if !pcLoaded {
		c.advancePC(inst.address)
	}
}
