package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name in a working directory.
const FileName = "costlens.yaml"

// Config represents the top-level costlens.yaml configuration.
type Config struct {
	Currency       string               `yaml:"currency"`
	Extraction     ExtractionConfig     `yaml:"extraction"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Oracle         OracleConfig         `yaml:"oracle"`
	Output         OutputConfig         `yaml:"output"`
}

// ExtractionConfig controls the ledger builder.
type ExtractionConfig struct {
	Mode            string  `yaml:"mode"` // "classified" or "forensic"
	MinLineLength   int     `yaml:"min_line_length"`
	ConfidenceFloor float64 `yaml:"confidence_floor"`
	// FallbackInvoiceTotal is used when no grand total can be located in the
	// document. Empty means no fallback: validation is indeterminate.
	FallbackInvoiceTotal string `yaml:"fallback_invoice_total,omitempty"`
}

// ReconciliationConfig controls the single reconciliation pass.
type ReconciliationConfig struct {
	Enabled bool `yaml:"enabled"`
	// Tolerance is the first-pass pass/fail threshold in currency units.
	Tolerance float64 `yaml:"tolerance"`
	// ForensicTolerance is the cent-level threshold used in forensic mode.
	ForensicTolerance float64 `yaml:"forensic_tolerance"`
}

// OracleConfig identifies the reconciliation oracle.
type OracleConfig struct {
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// OutputConfig controls where reports land.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads a costlens.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new working
// directory.
func Default() *Config {
	return &Config{
		Currency: "USD",
		Extraction: ExtractionConfig{
			Mode:            "classified",
			MinLineLength:   10,
			ConfidenceFloor: 0.1,
		},
		Reconciliation: ReconciliationConfig{
			Enabled:           true,
			Tolerance:         1.00,
			ForensicTolerance: 0.01,
		},
		Oracle: OracleConfig{
			Model:     "claude-sonnet-4-5",
			MaxTokens: 4096,
			APIKeyEnv: "ANTHROPIC_API_KEY",
		},
		Output: OutputConfig{
			Dir: "output",
		},
	}
}
