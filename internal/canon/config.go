package canon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSteps is the default rewrite step quota per graph.
// This prevents a buggy or adversarial rule set from spinning forever.
const DefaultMaxSteps = 1000

// Config selects which rules run and bounds how many rewrites a single
// Canonicalize call may perform.
type Config struct {
	// MaxSteps is the rewrite quota. Zero or negative falls back to
	// DefaultMaxSteps.
	MaxSteps int `yaml:"max_steps"`

	Rules RuleSet `yaml:"rules"`
}

// RuleSet enables or disables individual rewrite rules.
type RuleSet struct {
	// Fold evaluates operations whose operands are all constants.
	Fold bool `yaml:"fold"`

	// FlattenCat splices nested concatenation operands into the outer
	// concatenation.
	FlattenCat bool `yaml:"flatten_cat"`

	// DropIdentity removes slices, pads and shifts whose result type
	// equals their input type.
	DropIdentity bool `yaml:"drop_identity"`

	// ForwardWires forwards the single unconditional driver of a wire
	// to every read of that wire.
	ForwardWires bool `yaml:"forward_wires"`
}

// DefaultConfig returns the configuration used when no YAML file is
// given: every rule enabled, DefaultMaxSteps quota.
func DefaultConfig() Config {
	return Config{
		MaxSteps: DefaultMaxSteps,
		Rules: RuleSet{
			Fold:         true,
			FlattenCat:   true,
			DropIdentity: true,
			ForwardWires: true,
		},
	}
}

// LoadConfig reads a YAML rule configuration. Keys absent from the
// file keep their DefaultConfig values, so a file containing only
//
//	rules:
//	  forward_wires: false
//
// disables one rule and leaves the rest enabled.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read canon config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse canon config %s: %w", path, err)
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	return cfg, nil
}
