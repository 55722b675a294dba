package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hayate891/fourdo/bus"
	"github.com/hayate891/fourdo/config"
	"github.com/hayate891/fourdo/cpu"
	"github.com/hayate891/fourdo/debugger"
	"github.com/hayate891/fourdo/loader"
)

func main() {
	var (
		imagePath   = flag.String("image", "", "Path to a raw binary image to load")
		entryPoint  = flag.String("entry", "", "Entry point address, hex or decimal (overrides config)")
		bigEndian   = flag.Bool("big-endian", false, "Run in big-endian mode")
		maxCycles   = flag.Uint64("max-cycles", 0, "Maximum cycles to execute (0 = use config default)")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		debugMode   = flag.Bool("debug", false, "Launch the TUI debugger instead of running headless")
		steps       = flag.Int("steps", 0, "Run a fixed instruction count headless and dump registers")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// cfg isn't available yet to gate this one, so it always prints.
		fmt.Fprintln(os.Stderr, "fourdo:", err)
		os.Exit(1)
	}

	entry := cfg.Execution.DefaultEntry
	if *entryPoint != "" {
		entry = *entryPoint
	}
	entryAddr, err := parseAddress(entry)
	if err != nil {
		logError(cfg, "fourdo: invalid entry point:", err)
		os.Exit(1)
	}

	b := bus.New(cfg.Execution.MemorySize)

	if *imagePath != "" {
		n, err := loader.LoadFile(b, *imagePath, entryAddr)
		if err != nil {
			logError(cfg, "fourdo:", err)
			os.Exit(1)
		}
		if cfg.ShouldLog("info") {
			fmt.Printf("loaded %d bytes at 0x%08X\n", n, entryAddr)
		}
	}

	c := cpu.New(b)
	c.SetBigEndian(*bigEndian || cfg.Execution.BigEndian)
	c.Weights = cpu.CycleWeights{S: cfg.Cycles.S, N: cfg.Cycles.N, I: cfg.Cycles.I}
	c.Registers().SetPC(entryAddr)

	limit := cfg.Execution.MaxCycles
	if *maxCycles != 0 {
		limit = *maxCycles
	}

	switch {
	case *debugMode:
		tui := debugger.NewTUI(c)
		tui.LogLevel = cfg.Execution.LogLevel
		if err := tui.Run(); err != nil {
			logError(cfg, "fourdo:", err)
			os.Exit(1)
		}

	case *steps > 0:
		for i := 0; i < *steps; i++ {
			c.Step()
		}
		fmt.Print(debugger.FormatRegisters(c))

	default:
		c.ExecuteCycles(limit)
		fmt.Print(debugger.FormatRegisters(c))
	}
}

// logError writes a diagnostic to stderr gated by cfg's configured log
// level, so "-config" files setting execution.log_level = "silent" can
// suppress even fatal diagnostics before exiting.
func logError(cfg *config.Config, args ...any) {
	if cfg.ShouldLog("error") {
		fmt.Fprintln(os.Stderr, args...)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// parseAddress accepts both "0x8000" and plain decimal forms.
func parseAddress(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
