package cpu

import (
	"fmt"

	"github.com/hayate891/fourdo/bus"
)

// CycleWeights holds the configurable S/N/I cycle costs the accountant
// charges per instruction. All three default to 1 for pure functional
// tests, matching the spec's cycle-accounting baseline.
type CycleWeights struct {
	S uint64
	N uint64
	I uint64
}

// DefaultCycleWeights returns S=N=I=1.
func DefaultCycleWeights() CycleWeights {
	return CycleWeights{S: 1, N: 1, I: 1}
}

// CPU is the ARM60 instruction interpreter: a register file plus a
// memory bus, executing one instruction at a time in strict program
// order. It is single-threaded and synchronous; the only caller is an
// outer loop driving Step or ExecuteCycles.
type CPU struct {
	Regs *RegisterFile
	Bus  *bus.Bus

	BigEndian bool
	Weights   CycleWeights

	Cycles uint64

	// swiCount records how many SWI instructions have executed; a full
	// system would vector to SVC mode and address 0x08 instead.
	swiCount uint64
}

// New constructs a CPU bound to bus b, in USR mode with all registers
// zeroed. PC is left at zero; the caller sets it via Registers()
// before the first Step/ExecuteCycles call.
func New(b *bus.Bus) *CPU {
	return &CPU{
		Regs:    NewRegisterFile(),
		Bus:     b,
		Weights: DefaultCycleWeights(),
	}
}

// Registers returns the register file for inspection and test setup.
func (c *CPU) Registers() *RegisterFile {
	return c.Regs
}

// SetBigEndian selects byte-lane ordering for byte loads and the
// rotation direction for unaligned word loads.
func (c *CPU) SetBigEndian(big bool) {
	c.BigEndian = big
}

// instruction is the decoded form passed to an executor.
type instruction struct {
	address   uint32
	opcode    uint32
	condition Condition
	class     InstructionClass
}

// Step executes exactly one instruction (or skips one whose condition
// fails) and returns the number of cycles it consumed.
func (c *CPU) Step() uint64 {
	before := c.Cycles

	addr := c.Regs.PC()
	opcode := c.fetchWord(addr)

	inst := instruction{
		address:   addr,
		opcode:    opcode,
		condition: ExtractCondition(opcode),
		class:     Decode(opcode),
	}

	if !EvaluateCondition(inst.condition, c.Regs.CPSR()) {
		c.Regs.SetPC(addr + 4)
		c.charge(2*c.Weights.S + c.Weights.N)
		return c.Cycles - before
	}

	c.execute(&inst)

	return c.Cycles - before
}

// ExecuteCycles runs Step repeatedly until the accumulated cycle count
// reaches target, returning the actual number of cycles consumed
// (which may overshoot target by the cost of the final instruction).
func (c *CPU) ExecuteCycles(target uint64) uint64 {
	start := c.Cycles
	for c.Cycles-start < target {
		c.Step()
	}
	return c.Cycles - start
}

// charge adds n cycles to the running total.
func (c *CPU) charge(n uint64) {
	c.Cycles += n
}

// fetchWord loads the instruction word at addr as a plain aligned
// word; the configured endianness is not consulted here (BIGEND only
// affects data byte-lane selection and unaligned-load rotation, per
// the ARM60 memory model).
func (c *CPU) fetchWord(addr uint32) uint32 {
	return c.Bus.ReadWord(addr)
}

// readOperand returns the value of a logical register as an operand,
// applying the PC prefetch offset when reg is PC. pcOffset is added to
// the raw, unincremented instruction address (see DESIGN.md for the
// PC-timing convention this interpreter follows).
func (c *CPU) readOperand(reg int, pcOffset uint32) uint32 {
	if reg == PC {
		return c.Regs.PC() + pcOffset
	}
	return c.Regs.Get(reg)
}

// writeResult writes value to a logical destination register. Writes
// to PC are masked to word alignment by RegisterFile.Set.
func (c *CPU) writeResult(reg int, value uint32) {
	c.Regs.Set(reg, value)
}

// advancePC moves to the next sequential instruction; executors that
// branch or load into PC must not call this.
func (c *CPU) advancePC(instrAddr uint32) {
	c.Regs.SetPC(instrAddr + 4)
}

func (c *CPU) execute(inst *instruction) {
	switch inst.class {
	case ClassDataProcessing:
		c.executeDataProcessing(inst)
	case ClassPSRTransfer:
		c.executePSRTransfer(inst)
	case ClassMultiply:
		c.executeMultiply(inst)
	case ClassSingleDataSwap:
		c.executeSwap(inst)
	case ClassSingleDataTransfer:
		c.executeSingleDataTransfer(inst)
	case ClassBlockDataTransfer:
		c.executeBlockDataTransfer(inst)
	case ClassBranch:
		c.executeBranch(inst)
	case ClassSoftwareInterrupt:
		c.executeSoftwareInterrupt(inst)
	case ClassCoprocessorDataTransfer, ClassCoprocessorDataOperation, ClassCoprocessorRegisterTransfer:
		c.executeCoprocessor(inst)
	default:
		c.executeUndefined(inst)
	}
}

// Describe returns a short debug string for an opcode. It is not part
// of the core contract (see SPEC_FULL.md §6) — callers must not rely
// on its exact format.
func (c *CPU) Describe(opcode uint32) string {
	return fmt.Sprintf("0x%08X [%s]", opcode, Decode(opcode))
}

func (class InstructionClass) String() string {
	names := [...]string{
		"UNDEFINED", "DATA_PROCESSING", "PSR_TRANSFER", "MULTIPLY",
		"SINGLE_DATA_SWAP", "SINGLE_DATA_TRANSFER", "BLOCK_DATA_TRANSFER",
		"BRANCH", "SOFTWARE_INTERRUPT", "COPROCESSOR_DATA_TRANSFER",
		"COPROCESSOR_DATA_OPERATION", "COPROCESSOR_REGISTER_TRANSFER",
	}
	if int(class) < len(names) {
		return names[class]
	}
	return "UNKNOWN"
}
