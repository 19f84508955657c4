// config.go — tunable limits for the front end.
//
// The core stages take their knobs from a Config value rather than package
// globals so embedders (and tests) can tighten limits without races. The CLI
// optionally loads an `ns.yaml` next to the script; absent file means defaults.
package novascript

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the lexer limits and CLI preferences.
type Config struct {
	// TabWidth is the column width of a tab character when measuring
	// line-start indentation.
	TabWidth int `yaml:"tabWidth"`

	// MaxIdentLen caps identifier length; longer runs lex to an UNKNOWN
	// token carrying the truncated prefix.
	MaxIdentLen int `yaml:"maxIdentLen"`

	// HistoryFile names the REPL history file (relative to $HOME).
	HistoryFile string `yaml:"historyFile"`
}

// DefaultConfig returns the limits used when no ns.yaml is present.
func DefaultConfig() *Config {
	return &Config{
		TabWidth:    4,
		MaxIdentLen: 256,
		HistoryFile: ".ns_history",
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
// A missing file is not an error; malformed YAML or nonsensical limits are.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.TabWidth < 1 {
		return nil, fmt.Errorf("config %s: tabWidth must be positive", path)
	}
	if cfg.MaxIdentLen < 1 {
		return nil, fmt.Errorf("config %s: maxIdentLen must be positive", path)
	}
	return cfg, nil
}
