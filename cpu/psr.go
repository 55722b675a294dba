package cpu

// PSR bit positions, shared by CPSR and SPSR words.
const (
	psrBitN = 31
	psrBitZ = 30
	psrBitC = 29
	psrBitV = 28
)

// PSRN reports the Negative flag.
func PSRN(word uint32) bool { return word&(1<<psrBitN) != 0 }

// PSRZ reports the Zero flag.
func PSRZ(word uint32) bool { return word&(1<<psrBitZ) != 0 }

// PSRC reports the Carry flag.
func PSRC(word uint32) bool { return word&(1<<psrBitC) != 0 }

// PSRV reports the Overflow flag.
func PSRV(word uint32) bool { return word&(1<<psrBitV) != 0 }

// PSRMode extracts the 5-bit mode field.
func PSRMode(word uint32) Mode { return Mode(word & 0x1F) }

// PSRSetFlags returns word with N, Z, C, V overwritten.
func PSRSetFlags(word uint32, n, z, c, v bool) uint32 {
	word &^= (1 << psrBitN) | (1 << psrBitZ) | (1 << psrBitC) | (1 << psrBitV)
	if n {
		word |= 1 << psrBitN
	}
	if z {
		word |= 1 << psrBitZ
	}
	if c {
		word |= 1 << psrBitC
	}
	if v {
		word |= 1 << psrBitV
	}
	return word
}

// PSRSetMode returns word with bits [4:0] replaced by m.
func PSRSetMode(word uint32, m Mode) uint32 {
	return (word &^ 0x1F) | uint32(m)
}
