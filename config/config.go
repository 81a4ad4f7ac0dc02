package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"go-abcplay/debug"
	"go-abcplay/music"
)

// OutputConfig defines where and how notes are played
type OutputConfig struct {
	PortName   string  `yaml:"port,omitempty"`
	Velocity   uint8   `yaml:"velocity,omitempty"`
	PPQ        int     `yaml:"ppq,omitempty"`
	TempoScale float64 `yaml:"tempoScale,omitempty"`
}

// VoiceConfig assigns a General MIDI instrument to an ABC voice
type VoiceConfig struct {
	Name       string `yaml:"name"`
	Instrument string `yaml:"instrument"`
}

// DisplayConfig stores lyric display preferences
type DisplayConfig struct {
	Palette string `yaml:"palette,omitempty"` // GIMP .gpl file, empty for the built-in palette
}

// Config is the main configuration structure
type Config struct {
	Output            OutputConfig  `yaml:"output,omitempty"`
	DefaultInstrument string        `yaml:"defaultInstrument,omitempty"`
	Voices            []VoiceConfig `yaml:"voices,omitempty"`
	Display           DisplayConfig `yaml:"display,omitempty"`
}

// Defaults used when a field is left out
const (
	DefaultVelocity = 100
	DefaultPPQ      = 96
)

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Velocity:   DefaultVelocity,
			PPQ:        DefaultPPQ,
			TempoScale: 1,
		},
		DefaultInstrument: music.Piano.String(),
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-abcplay"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Output.Velocity == 0 {
		c.Output.Velocity = DefaultVelocity
	}
	if c.Output.PPQ <= 0 {
		c.Output.PPQ = DefaultPPQ
	}
	if c.Output.TempoScale <= 0 {
		c.Output.TempoScale = 1
	}
	if c.DefaultInstrument == "" {
		c.DefaultInstrument = music.Piano.String()
	}
}

// Validate checks that every instrument name resolves.
func (c *Config) Validate() error {
	if _, err := music.LookupInstrument(c.DefaultInstrument); err != nil {
		return fmt.Errorf("defaultInstrument: %w", err)
	}
	for _, v := range c.Voices {
		if _, err := music.LookupInstrument(v.Instrument); err != nil {
			return fmt.Errorf("voice %q: %w", v.Name, err)
		}
	}
	if c.Output.Velocity > 127 {
		return fmt.Errorf("velocity %d out of range 1-127", c.Output.Velocity)
	}
	return nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FindVoice finds a voice config by name
func (c *Config) FindVoice(name string) *VoiceConfig {
	for i := range c.Voices {
		if c.Voices[i].Name == name {
			return &c.Voices[i]
		}
	}
	return nil
}

// SetVoice adds or updates a voice config
func (c *Config) SetVoice(v VoiceConfig) {
	for i := range c.Voices {
		if c.Voices[i].Name == v.Name {
			c.Voices[i] = v
			return
		}
	}
	c.Voices = append(c.Voices, v)
}

// Instrument resolves the instrument for an ABC voice. Unknown names fall
// back to the piano; Validate reports them.
func (c *Config) Instrument(voice string) music.Instrument {
	name := c.DefaultInstrument
	if v := c.FindVoice(voice); v != nil {
		name = v.Instrument
	}
	inst, err := music.LookupInstrument(name)
	if err != nil {
		debug.Log("config", "unknown instrument", "voice", voice, "name", name)
		return music.Piano
	}
	return inst
}
