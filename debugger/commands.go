package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hayate891/fourdo/cpu"
)

// Execute parses and runs one debugger command line against c. memAddr
// is the debugger's current memory-view cursor; "mem" updates it.
func Execute(c *cpu.CPU, line string, memAddr *uint32) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "step", "s":
		return cmdStep(c, args)
	case "run":
		return cmdRun(c, args)
	case "setreg":
		return cmdSetReg(c, args)
	case "setmode":
		return cmdSetMode(c, args)
	case "mem":
		return cmdMem(args, memAddr)
	case "quit", "q":
		return "", errQuit
	case "help":
		return helpText(), nil
	default:
		return "", fmt.Errorf("unknown command: %s", cmd)
	}
}

// errQuit signals the caller (TUI or headless runner) to stop reading
// commands; it is not a failure.
var errQuit = fmt.Errorf("quit")

// IsQuit reports whether err is the sentinel Execute returns for "quit".
func IsQuit(err error) bool {
	return err == errQuit
}

func cmdStep(c *cpu.CPU, args []string) (string, error) {
	cycles := c.Step()
	return fmt.Sprintf("stepped to 0x%08X (%d cycles)", c.Registers().PC(), cycles), nil
}

func cmdRun(c *cpu.CPU, args []string) (string, error) {
	n := uint64(1)
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return "", fmt.Errorf("run: invalid instruction count %q", args[0])
		}
		n = v
	}
	var total uint64
	for i := uint64(0); i < n; i++ {
		total += c.Step()
	}
	return fmt.Sprintf("ran %d instructions (%d cycles), PC=0x%08X", n, total, c.Registers().PC()), nil
}

func cmdSetReg(c *cpu.CPU, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("usage: setreg <name> <value>")
	}
	reg, err := parseRegisterName(args[0])
	if err != nil {
		return "", err
	}
	value, err := strconv.ParseUint(strings.TrimPrefix(args[1], "0x"), 16, 32)
	if err != nil {
		return "", fmt.Errorf("setreg: invalid value %q", args[1])
	}
	c.Registers().Set(reg, uint32(value))
	return fmt.Sprintf("%s = 0x%08X", args[0], value), nil
}

func cmdSetMode(c *cpu.CPU, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: setmode <usr|fiq|irq|svc|abt|und>")
	}
	mode, err := parseModeName(args[0])
	if err != nil {
		return "", err
	}
	c.Registers().EnterMode(mode)
	return fmt.Sprintf("mode = %s", mode), nil
}

func cmdMem(args []string, memAddr *uint32) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: mem <address>")
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return "", fmt.Errorf("mem: invalid address %q", args[0])
	}
	*memAddr = uint32(addr)
	return fmt.Sprintf("memory view now at 0x%08X", *memAddr), nil
}

func parseRegisterName(name string) (int, error) {
	upper := strings.ToUpper(name)
	switch upper {
	case "SP":
		return cpu.SP, nil
	case "LR":
		return cpu.LR, nil
	case "PC":
		return cpu.PC, nil
	}
	if !strings.HasPrefix(upper, "R") {
		return 0, fmt.Errorf("unknown register %q", name)
	}
	n, err := strconv.Atoi(upper[1:])
	if err != nil || n < 0 || n > 15 {
		return 0, fmt.Errorf("unknown register %q", name)
	}
	return n, nil
}

func parseModeName(name string) (cpu.Mode, error) {
	switch strings.ToLower(name) {
	case "usr":
		return cpu.ModeUSR, nil
	case "fiq":
		return cpu.ModeFIQ, nil
	case "irq":
		return cpu.ModeIRQ, nil
	case "svc":
		return cpu.ModeSVC, nil
	case "abt":
		return cpu.ModeABT, nil
	case "und":
		return cpu.ModeUND, nil
	}
	return 0, fmt.Errorf("unknown mode %q", name)
}

func helpText() string {
	return strings.Join([]string{
		"step                 execute one instruction",
		"run [n]              execute n instructions (default 1)",
		"setreg <reg> <hex>   write a register (R0-R12, SP, LR, PC)",
		"setmode <mode>       switch processor mode (usr/fiq/irq/svc/abt/und)",
		"mem <hex-addr>       move the memory view cursor",
		"quit                 exit the debugger",
	}, "\n")
}
