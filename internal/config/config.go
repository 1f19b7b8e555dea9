// Package config loads reviewgate configuration from
// .reviewgate/config.json, falling back to defaults when absent.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the complete reviewgate configuration.
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	AI      AIConfig      `json:"ai" mapstructure:"ai"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// RulesPath points at an optional TOML rules file with detector and
	// weight overrides.
	RulesPath string `json:"rulesPath" mapstructure:"rulesPath"`
}

// AIConfig selects the completion provider for AI-assisted scoring and
// review. The key is read from the named environment variable; a missing
// key puts the pipeline in AI-unavailable mode instead of failing it.
type AIConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Provider  string `json:"provider" mapstructure:"provider"`
	Model     string `json:"model" mapstructure:"model"`
	APIKeyEnv string `json:"apiKeyEnv" mapstructure:"apiKeyEnv"`
}

// CacheConfig locates the per-file metrics cache.
type CacheConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// HistoryConfig controls the evaluation-history store.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		AI: AIConfig{
			Enabled:   true,
			Provider:  "anthropic",
			Model:     "",
			APIKeyEnv: "REVIEWGATE_AI_KEY",
		},
		Cache: CacheConfig{
			Dir: ".reviewgate/cache",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    ".reviewgate/history.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		RulesPath: ".reviewgate/rules.toml",
	}
}

// LoadConfig loads configuration from <repoRoot>/.reviewgate/config.json.
// A missing config file yields the defaults, not an error.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".reviewgate"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to <repoRoot>/.reviewgate/config.json.
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".reviewgate")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// AIKey resolves the AI API key from the environment. The second return
// is false when AI is disabled or no key is present.
func (c *Config) AIKey() (string, bool) {
	if !c.AI.Enabled || c.AI.APIKeyEnv == "" {
		return "", false
	}
	key := os.Getenv(c.AI.APIKeyEnv)
	return key, key != ""
}
