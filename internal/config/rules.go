package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Rules holds repository-local detector and weight overrides, loaded
// from a TOML file next to the config. All sections are optional.
type Rules struct {
	SecretPatterns []SecretPatternRule `toml:"secret_pattern"`
	ImpactWeights  []ImpactWeightRule  `toml:"impact_weight"`
}

// SecretPatternRule adds a custom line detector to the quality gate.
type SecretPatternRule struct {
	Name       string `toml:"name"`
	Category   string `toml:"category"`
	Level      string `toml:"level"`
	Regex      string `toml:"regex"`
	Message    string `toml:"message"`
	Suggestion string `toml:"suggestion"`
}

// ImpactWeightRule replaces an entry of the ordered path-weight table.
// When any impact_weight rules are present they replace the whole
// builtin table, in file order.
type ImpactWeightRule struct {
	Keyword string `toml:"keyword"`
	Weight  int    `toml:"weight"`
}

// LoadRules reads the rules file. A missing file yields empty rules, not
// an error; a malformed file is an error so bad overrides fail loudly.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Rules{}, nil
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules Rules
	if err := toml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return &rules, nil
}
