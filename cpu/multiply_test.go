package cpu

import "testing"

func encodeMul(cond uint32, accumulate, setFlags bool, rd, rn, rs, rm int) uint32 {
	word := cond<<28 | uint32(rd)<<16 | uint32(rs)<<8 | 0x9<<4 | uint32(rm)
	if accumulate {
		word |= 1 << 21
		word |= uint32(rn) << 12
	}
	if setFlags {
		word |= 1 << 20
	}
	return word
}

func TestMul(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set(R1, 6)
	c.Regs.Set(R2, 7)
	c.Bus.WriteWord(0, encodeMul(0xE, false, true, R0, 0, R2, R1))
	c.Step()
	if got := c.Regs.Get(R0); got != 42 {
		t.Fatalf("MUL R0,R1,R2 = %d, want 42", got)
	}
	if PSRZ(c.Regs.CPSR()) {
		t.Fatal("42 should not set Z")
	}
}

func TestMla(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set(R1, 6)
	c.Regs.Set(R2, 7)
	c.Regs.Set(R3, 100)
	c.Bus.WriteWord(0, encodeMul(0xE, true, false, R0, R3, R2, R1))
	c.Step()
	if got := c.Regs.Get(R0); got != 142 {
		t.Fatalf("MLA R0,R1,R2,R3 = %d, want 142", got)
	}
}

func TestMulRmEqualsRdIsZero(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set(R0, 9)
	c.Bus.WriteWord(0, encodeMul(0xE, false, false, R0, 0, R1, R0))
	c.Step()
	if got := c.Regs.Get(R0); got != 0 {
		t.Fatalf("Rm==Rd must deterministically zero, got %d", got)
	}
}

func TestMulPCOperandIsNoop(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set(R0, 0xDEAD)
	c.Bus.WriteWord(0, encodeMul(0xE, false, false, R0, 0, R1, PC))
	before := c.Regs.Get(R0)
	c.Step()
	if got := c.Regs.Get(R0); got != before {
		t.Fatal("PC as a multiply operand must not alter the destination")
	}
}

func TestMultiplyICyclesScalesWithRs(t *testing.T) {
	tests := []struct {
		rs    uint32
		cycle uint64
	}{
		{0x0000007F, 1},
		{0x00007FFF, 2},
		{0x007FFFFF, 3},
		{0xFFFFFFFF, 4},
	}
	for _, tt := range tests {
		if got := multiplyICycles(tt.rs); got != tt.cycle {
			t.Errorf("multiplyICycles(0x%X) = %d, want %d", tt.rs, got, tt.cycle)
		}
	}
}
