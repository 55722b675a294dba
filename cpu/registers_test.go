package cpu

import "testing"

func TestLowRegistersAreNeverBanked(t *testing.T) {
	rf := NewRegisterFile()
	rf.Set(R3, 0x11111111)
	rf.EnterMode(ModeFIQ)
	if got := rf.Get(R3); got != 0x11111111 {
		t.Fatalf("R3 must be shared across modes, got 0x%X", got)
	}
}

func TestFIQBanksR8ToR12(t *testing.T) {
	rf := NewRegisterFile()
	rf.Set(R8, 0xAAAAAAAA)
	rf.EnterMode(ModeFIQ)
	if got := rf.Get(R8); got == 0xAAAAAAAA {
		t.Fatal("FIQ R8 should be a distinct bank from USR R8")
	}
	rf.Set(R8, 0xBBBBBBBB)
	rf.EnterMode(ModeUSR)
	if got := rf.Get(R8); got != 0xAAAAAAAA {
		t.Fatalf("returning to USR should restore the USR bank, got 0x%X", got)
	}
}

func TestSPAndLRAreBankedPerMode(t *testing.T) {
	rf := NewRegisterFile()
	rf.Set(SP, 0x1000)
	rf.EnterMode(ModeSVC)
	rf.Set(SP, 0x2000)
	rf.EnterMode(ModeIRQ)
	rf.Set(SP, 0x3000)
	rf.EnterMode(ModeUSR)
	if got := rf.Get(SP); got != 0x1000 {
		t.Fatalf("USR SP = 0x%X, want 0x1000", got)
	}
	rf.EnterMode(ModeSVC)
	if got := rf.Get(SP); got != 0x2000 {
		t.Fatalf("SVC SP = 0x%X, want 0x2000", got)
	}
	rf.EnterMode(ModeIRQ)
	if got := rf.Get(SP); got != 0x3000 {
		t.Fatalf("IRQ SP = 0x%X, want 0x3000", got)
	}
}

func TestPCWritesAreWordAligned(t *testing.T) {
	rf := NewRegisterFile()
	rf.SetPC(0x1003)
	if got := rf.PC(); got != 0x1000 {
		t.Fatalf("SetPC should mask low bits, got 0x%X", got)
	}
	rf.Set(PC, 0x2006)
	if got := rf.PC(); got != 0x2004 {
		t.Fatalf("Set(PC,...) should mask low bits, got 0x%X", got)
	}
}

func TestSPSRIsPerModeAndAbsentInUSR(t *testing.T) {
	rf := NewRegisterFile()
	if got := rf.SPSRCurrent(); got != 0 {
		t.Fatalf("USR SPSR read should be 0, got 0x%X", got)
	}
	rf.SetSPSRCurrent(0xDEADBEEF) // discarded in USR
	if got := rf.SPSRCurrent(); got != 0 {
		t.Fatal("USR SPSR write should be discarded")
	}
	rf.EnterMode(ModeABT)
	rf.SetSPSRCurrent(0xCAFEBABE)
	rf.EnterMode(ModeUND)
	rf.SetSPSRCurrent(0x01234567)
	rf.EnterMode(ModeABT)
	if got := rf.SPSRCurrent(); got != 0xCAFEBABE {
		t.Fatalf("ABT SPSR = 0x%X, want 0xCAFEBABE", got)
	}
}

func TestEnterModeDoesNotSaveAnything(t *testing.T) {
	rf := NewRegisterFile()
	rf.SetCPSR(PSRSetFlags(uint32(ModeUSR), true, true, true, true))
	rf.EnterMode(ModeSVC)
	if rf.SPSRCurrent() != 0 {
		t.Fatal("EnterMode must not implicitly populate SPSR")
	}
	if !PSRN(rf.CPSR()) || !PSRZ(rf.CPSR()) {
		t.Fatal("EnterMode must preserve the flag bits, only replacing the mode field")
	}
}

func TestGetBankedBypassesCurrentMode(t *testing.T) {
	rf := NewRegisterFile()
	rf.EnterMode(ModeFIQ)
	rf.SetBanked(ModeUSR, R9, 0x99)
	if got := rf.GetBanked(ModeUSR, R9); got != 0x99 {
		t.Fatalf("GetBanked(USR, R9) = 0x%X, want 0x99", got)
	}
	if got := rf.Get(R9); got == 0x99 {
		t.Fatal("current FIQ bank should not see the USR write")
	}
}

func TestReset(t *testing.T) {
	rf := NewRegisterFile()
	rf.Set(R0, 1)
	rf.EnterMode(ModeSVC)
	rf.SetSPSRCurrent(2)
	rf.Reset()
	if rf.CurrentMode() != ModeUSR {
		t.Fatal("Reset should return to USR mode")
	}
	if rf.Get(R0) != 0 {
		t.Fatal("Reset should clear R0")
	}
}
