package cpu

// executeSoftwareInterrupt is an out-of-scope SWI handler (§4.7): it
// records the occurrence and advances PC. A full system would instead
// enter SVC mode with R14_svc = PC+4 and vector to 0x08.
func (c *CPU) executeSoftwareInterrupt(inst *instruction) {
	c.swiCount++
	c.charge(2*c.Weights.S + c.Weights.N)
	c.advancePC(inst.address)
}

// SWICount reports how many SWI instructions have executed.
func (c *CPU) SWICount() uint64 {
	return c.swiCount
}

// executeCoprocessor decodes but does not execute any of the three
// coprocessor classes (§4.7); no coprocessor is attached to this core.
func (c *CPU) executeCoprocessor(inst *instruction) {
	c.charge(c.Weights.S)
	c.advancePC(inst.address)
}

// executeUndefined handles decode-unclassified opcodes (§7): charged
// and advanced past, with no trap taken, since this core does not
// implement the UND vector.
func (c *CPU) executeUndefined(inst *instruction) {
	c.charge(c.Weights.S)
	c.advancePC(inst.address)
}
