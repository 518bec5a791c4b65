package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MIDIConfig selects the ports and channel used to talk to the DX7.
type MIDIConfig struct {
	InPort  string `json:"inPort,omitempty"`  // substring of the input port name
	OutPort string `json:"outPort,omitempty"` // substring of the output port name
	Channel int    `json:"channel"`           // 1-16
}

// Config is the main configuration structure
type Config struct {
	MIDI        MIDIConfig `json:"midi"`
	Selection   []int      `json:"selection,omitempty"`
	ArrayName   string     `json:"arrayName,omitempty"`
	Format      string     `json:"format,omitempty"` // c, json or yaml
	TemplateDir string     `json:"templateDir,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MIDI: MIDIConfig{
			InPort:  "dx7",
			OutPort: "dx7",
			Channel: 1,
		},
		// E.PIANO 1, GUITAR 1, GUITAR 2 and friends from ROM1A
		Selection: []int{1, 4, 5, 11, 12, 13, 14, 15, 16},
		ArrayName: "dx7_selected_patches",
		Format:    "c",
	}
}

// configDir can be replaced by tests.
var configDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dx7extract"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the config from disk, or returns defaults if not found.
// Fields missing from the file keep their default values.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.WithStack(err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if cfg.MIDI.Channel < 1 || cfg.MIDI.Channel > 16 {
		return nil, errors.Errorf("%s: midi channel must be 1-16, got %d", path, cfg.MIDI.Channel)
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithStack(err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return errors.WithStack(os.WriteFile(path, data, 0644))
}

// deviceChannel is the 0-based channel used on the wire.
func (c *Config) deviceChannel() byte {
	return byte(c.MIDI.Channel - 1)
}
