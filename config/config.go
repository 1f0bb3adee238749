// Package config loads and saves casl2comet's TOML configuration
// file, following the same structure/decode idiom as the rest of the
// toolchain's ambient stack.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds casl2comet's tunable settings. Neither cmd/casl2as nor
// cmd/comet2 loads it.
type Config struct {
	Execution struct {
		MaxSteps     uint64 `toml:"max_steps"`
		StackTop     uint16 `toml:"stack_top"`
		TraceSteps   bool   `toml:"trace_steps"`
	} `toml:"execution"`

	Debugger struct {
		HistorySize   int  `toml:"history_size"`
		ShowRegisters bool `toml:"show_registers"`
	} `toml:"debugger"`

	Display struct {
		WordsPerDumpLine int    `toml:"words_per_dump_line"`
		DisasmContext    int    `toml:"disasm_context"`
		NumberFormat     string `toml:"number_format"` // hex, dec
	} `toml:"display"`

	Trace struct {
		OutputFile string `toml:"output_file"`
		MaxEntries int    `toml:"max_entries"`
	} `toml:"trace"`
}

// DefaultConfig returns the configuration used when no config file is
// present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MaxSteps = 10_000_000
	cfg.Execution.StackTop = 0xFF00
	cfg.Execution.TraceSteps = false

	cfg.Debugger.HistorySize = 1000
	cfg.Debugger.ShowRegisters = true

	cfg.Display.WordsPerDumpLine = 8
	cfg.Display.DisasmContext = 16
	cfg.Display.NumberFormat = "hex"

	cfg.Trace.OutputFile = "trace.log"
	cfg.Trace.MaxEntries = 100000

	return cfg
}

// GetConfigPath returns the platform-specific config file path,
// creating its containing directory if necessary.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "casl2comet")
	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "casl2comet")
	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file, falling
// back to DefaultConfig when no file exists.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
