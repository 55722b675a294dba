// Package debugger implements a text-mode inspection shell for the
// ARM60 core, built on tcell/tview the way the teacher's debugger is:
// bordered panels refreshed after every command, plus a command input
// line. It never reaches into core internals beyond the CPU's public
// surface (Step, Registers, Bus).
package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/hayate891/fourdo/config"
	"github.com/hayate891/fourdo/cpu"
)

// TUI is the terminal debugger shell wrapping a CPU.
type TUI struct {
	CPU *cpu.CPU
	App *tview.Application

	MainLayout   *tview.Flex
	RegisterView *tview.TextView
	MemoryView   *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField

	MemoryAddress uint32

	// LogLevel gates which command status lines reach the output pane;
	// it mirrors Execution.LogLevel from the config package. "step" and
	// "run" status chatter only shows at "debug"; everything else
	// (including errors) always shows.
	LogLevel string
}

// NewTUI builds a TUI bound to c, with the layout and key bindings
// constructed but not yet run.
func NewTUI(c *cpu.CPU) *TUI {
	t := &TUI{
		CPU:      c,
		App:      tview.NewApplication(),
		LogLevel: "info",
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.RegisterView, 0, 1, false).
		AddItem(t.MemoryView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd != "" {
		t.executeCommand(cmd)
		t.CommandInput.SetText("")
	}
}

func (t *TUI) executeCommand(cmd string) {
	out, err := Execute(t.CPU, cmd, &t.MemoryAddress)
	if IsQuit(err) {
		t.App.Stop()
		return
	}
	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
	} else if out != "" && t.shouldShow(cmd) {
		t.WriteOutput(out)
	}
	t.RefreshAll()
}

// shouldShow reports whether cmd's status line belongs in the output
// pane: "step"/"run" produce per-instruction trace chatter, shown only
// at debug level; every other command's confirmation text always
// shows, since it is a direct answer to something the user typed.
func (t *TUI) shouldShow(cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return true
	}
	switch strings.ToLower(fields[0]) {
	case "step", "s", "run":
		return config.LogLevelAtLeast(t.LogLevel, "debug")
	default:
		return true
	}
}

// WriteOutput appends text to the output panel.
func (t *TUI) WriteOutput(text string) {
	fmt.Fprint(t.OutputView, text)
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from current CPU state.
func (t *TUI) RefreshAll() {
	t.RegisterView.SetText(FormatRegisters(t.CPU))
	t.MemoryView.SetText(FormatMemory(t.CPU, t.MemoryAddress))
	t.App.Draw()
}

// Run starts the TUI event loop, blocking until the user quits.
func (t *TUI) Run() error {
	t.RefreshAll()
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}

// FormatRegisters renders the full register file: R0-R12 and the
// current mode's SP/LR/PC, the FIQ bank's R8-R12 (since it is the one
// bank distinct enough to be worth surfacing at a glance), and the
// CPSR flags, mode, and cycle count.
func FormatRegisters(c *cpu.CPU) string {
	r := c.Registers()
	var b strings.Builder
	for row := 0; row < 4; row++ {
		var cols []string
		for col := 0; col < 4; col++ {
			reg := row*4 + col
			name := fmt.Sprintf("R%-2d", reg)
			switch reg {
			case cpu.SP:
				name = "SP "
			case cpu.LR:
				name = "LR "
			case cpu.PC:
				name = "PC "
			}
			cols = append(cols, fmt.Sprintf("%s: 0x%08X", name, r.Get(reg)))
		}
		fmt.Fprintln(&b, strings.Join(cols, "  "))
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "FIQ bank R8-R12: ")
	for reg := cpu.R8; reg <= cpu.R12; reg++ {
		fmt.Fprintf(&b, "0x%08X ", r.GetBanked(cpu.ModeFIQ, reg))
	}
	fmt.Fprintln(&b)

	cpsr := r.CPSR()
	flags := flagLetter('N', cpu.PSRN(cpsr)) + flagLetter('Z', cpu.PSRZ(cpsr)) +
		flagLetter('C', cpu.PSRC(cpsr)) + flagLetter('V', cpu.PSRV(cpsr))
	fmt.Fprintf(&b, "CPSR: 0x%08X  Flags: %s  Mode: %s\n", cpsr, flags, r.CurrentMode())
	fmt.Fprintf(&b, "Cycles: %d\n", c.Cycles)

	return b.String()
}

func flagLetter(letter byte, set bool) string {
	if set {
		return strings.ToUpper(string(letter))
	}
	return strings.ToLower(string(letter))
}

// FormatMemory renders 16 rows of 16 bytes starting at addr as a raw
// hex dump with an ASCII gutter; there is no disassembly view, since
// this core never built an instruction-mnemonic renderer.
func FormatMemory(c *cpu.CPU, addr uint32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Address: 0x%08X\n", addr)
	for row := uint32(0); row < 16; row++ {
		rowAddr := addr + row*16
		fmt.Fprintf(&b, "0x%08X: ", rowAddr)
		var ascii []byte
		for col := uint32(0); col < 16; col++ {
			v := c.Bus.ReadByte(rowAddr + col)
			fmt.Fprintf(&b, "%02X ", v)
			if v >= 32 && v < 127 {
				ascii = append(ascii, v)
			} else {
				ascii = append(ascii, '.')
			}
		}
		fmt.Fprintf(&b, " %s\n", ascii)
	}
	return b.String()
}
