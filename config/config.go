// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Layout    LayoutConfig    `yaml:"layout"`
	Verify    VerifyConfig    `yaml:"verify"`
	Save      SaveConfig      `yaml:"save"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// EngineConfig holds evaluator parameters.
type EngineConfig struct {
	SettlePasses int  `yaml:"settle_passes"` // Passes per settle request
	EarlyExit    bool `yaml:"early_exit"`    // Stop settling at the first pass with no change
}

// LayoutConfig holds canvas positions for generated and spawned nodes.
type LayoutConfig struct {
	InputX        int `yaml:"input_x"`
	InputStartY   int `yaml:"input_start_y"`
	InputSpacing  int `yaml:"input_spacing"`
	OutputX       int `yaml:"output_x"`
	OutputStartY  int `yaml:"output_start_y"`
	OutputSpacing int `yaml:"output_spacing"`
	SpawnX        int `yaml:"spawn_x"` // Where spawn buttons place new gates
	SpawnY        int `yaml:"spawn_y"`
}

// VerifyConfig holds verifier options.
type VerifyConfig struct {
	Prove       bool `yaml:"prove"`        // Cross-check passing circuits with a SAT equivalence proof
	RecordTable bool `yaml:"record_table"` // Keep per-vector rows on results
	WarnDepth   bool `yaml:"warn_depth"`   // Warn when circuit depth exceeds settle_passes
}

// SaveConfig holds persistence settings.
type SaveConfig struct {
	Path string `yaml:"path"`
}

// TelemetryConfig holds report output settings.
type TelemetryConfig struct {
	ReportDir string `yaml:"report_dir"` // Empty disables CSV reports
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Passes int // Engine.SettlePasses, or 50 when unset
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) computeDerived() {
	c.Derived.Passes = c.Engine.SettlePasses
	if c.Derived.Passes <= 0 {
		c.Derived.Passes = 50
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
