// Package config loads the ARM60 core's TOML configuration: cycle
// weights, memory size, endianness, and debugger display settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the settings that shape a run of the core: how much
// memory the bus exposes, what the S/N/I cycle weights are, and how
// the debugger shell presents itself.
type Config struct {
	Execution struct {
		MaxCycles    uint64 `toml:"max_cycles"`
		MemorySize   uint32 `toml:"memory_size"`
		BigEndian    bool   `toml:"big_endian"`
		DefaultEntry string `toml:"default_entry"`
		LogLevel     string `toml:"log_level"`
	} `toml:"execution"`

	Cycles struct {
		S uint64 `toml:"s_cycle"`
		N uint64 `toml:"n_cycle"`
		I uint64 `toml:"i_cycle"`
	} `toml:"cycles"`

	Debugger struct {
		HistorySize   int  `toml:"history_size"`
		ShowRegisters bool `toml:"show_registers"`
		ShowCPSR      bool `toml:"show_cpsr"`
		BytesPerLine  int  `toml:"bytes_per_line"`
	} `toml:"debugger"`
}

// DefaultConfig returns a configuration matching the core's functional
// defaults: S=N=I=1, a 16MB bus, little-endian, entry at 0x8000.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxCycles = 1000000
	cfg.Execution.MemorySize = 1 << 24
	cfg.Execution.BigEndian = false
	cfg.Execution.DefaultEntry = "0x8000"
	cfg.Execution.LogLevel = "info"

	cfg.Cycles.S = 1
	cfg.Cycles.N = 1
	cfg.Cycles.I = 1

	cfg.Debugger.HistorySize = 1000
	cfg.Debugger.ShowRegisters = true
	cfg.Debugger.ShowCPSR = true
	cfg.Debugger.BytesPerLine = 16

	return cfg
}

// DefaultPath returns the platform-specific config file location:
// %APPDATA%\fourdo\config.toml on Windows, ~/.config/fourdo/config.toml
// elsewhere.
func DefaultPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "fourdo")
	default:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "fourdo")
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load reads configuration from the default path, falling back to
// DefaultConfig when the file does not exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads configuration from path, overlaying onto
// DefaultConfig so a partial TOML file only overrides what it sets.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	// A zero cycle weight would make every instruction charge zero
	// cycles, so ExecuteCycles's target-based loop would never reach
	// its target; a config file that sets one is almost certainly a
	// mistake, so fall back to the default of 1 rather than hang.
	if cfg.Cycles.S == 0 {
		cfg.Cycles.S = 1
	}
	if cfg.Cycles.N == 0 {
		cfg.Cycles.N = 1
	}
	if cfg.Cycles.I == 0 {
		cfg.Cycles.I = 1
	}

	return cfg, nil
}

// SaveTo writes the configuration to path in TOML form, creating any
// missing parent directories.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	f, err := os.Create(path) // #nosec G304 -- caller-provided config path
	if err != nil {
		return fmt.Errorf("config: failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	return nil
}

// logLevelOrder ranks the recognized Execution.LogLevel values from
// most to least verbose; "silent" suppresses everything, including
// error-level messages. Unrecognized names are treated as "info".
var logLevelOrder = map[string]int{
	"debug":  0,
	"info":   1,
	"warn":   2,
	"error":  3,
	"silent": 4,
}

func levelRank(level string) int {
	if rank, ok := logLevelOrder[strings.ToLower(level)]; ok {
		return rank
	}
	return logLevelOrder["info"]
}

// LogLevelAtLeast reports whether level clears the given threshold
// (threshold configured, e.g. in Execution.LogLevel; level describing
// the message being considered).
func LogLevelAtLeast(threshold, level string) bool {
	return levelRank(level) >= levelRank(threshold)
}

// ShouldLog reports whether a message at level should be emitted given
// this config's Execution.LogLevel threshold.
func (c *Config) ShouldLog(level string) bool {
	return LogLevelAtLeast(c.Execution.LogLevel, level)
}
