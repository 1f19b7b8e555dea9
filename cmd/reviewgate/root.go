package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"reviewgate/internal/ai"
	"reviewgate/internal/config"
	"reviewgate/internal/qualitygate"
	"reviewgate/internal/scoring"
	"reviewgate/internal/slogutil"
	"reviewgate/internal/version"
)

var (
	// repoFlag is the CLI --repo flag value
	repoFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "reviewgate",
	Short: "reviewgate - PR review tiering and quality gating",
	Long: `reviewgate scores the cognitive complexity of a pull request, runs a
quality gate over its changed files, and assigns a review tier with an
auto-merge decision. Designed to run in CI and emit machine-readable
reports for the PR-comment layer.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("reviewgate version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Repository root")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default from config)")
}

// newLogger builds the stderr logger for a command run.
// Precedence: CLI flag > REVIEWGATE_LOG_LEVEL env var > config level.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if env := os.Getenv("REVIEWGATE_LOG_LEVEL"); env != "" {
		level = env
	}
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return slogutil.NewStderrLogger(slogutil.LevelFromString(level))
}

// mustLoadConfig loads the repo config or exits.
func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig(repoFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newAIClient constructs the configured AI client, or nil when AI is
// disabled, unconfigured, or misconfigured. AI is optional everywhere
// it is used, so construction failures are logged and absorbed.
func newAIClient(cfg *config.Config, logger *slog.Logger) ai.Client {
	key, ok := cfg.AIKey()
	if !ok {
		logger.Debug("AI disabled or no API key configured", "provider", cfg.AI.Provider)
		return nil
	}
	client, err := ai.New(cfg.AI.Provider, cfg.AI.Model, key)
	if err != nil {
		logger.Warn("AI client unavailable", "provider", cfg.AI.Provider, "error", err)
		return nil
	}
	return client
}

// loadRules loads the optional rules file named by the config. A missing
// file yields empty rules.
func loadRules(cfg *config.Config, logger *slog.Logger) *config.Rules {
	rules, err := config.LoadRules(rulesPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		os.Exit(1)
	}
	if len(rules.SecretPatterns) > 0 || len(rules.ImpactWeights) > 0 {
		logger.Debug("Loaded rules overrides",
			"patterns", len(rules.SecretPatterns),
			"weights", len(rules.ImpactWeights),
		)
	}
	return rules
}

func rulesPath(cfg *config.Config) string {
	if cfg.RulesPath == "" {
		return ""
	}
	return resolvePath(cfg.RulesPath)
}

// resolvePath anchors a relative config path at the repo root.
func resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoFlag, path)
}

// rulePatterns converts rules-file detector entries into gate patterns.
// Entries with an invalid regex are rejected so typos fail loudly.
func rulePatterns(rules *config.Rules) ([]qualitygate.Pattern, error) {
	patterns := make([]qualitygate.Pattern, 0, len(rules.SecretPatterns))
	for _, r := range rules.SecretPatterns {
		re, err := regexp.Compile(r.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid regex in rule %q: %w", r.Name, err)
		}
		patterns = append(patterns, qualitygate.Pattern{
			Name:       r.Name,
			Category:   r.Category,
			Level:      ruleLevel(r.Level),
			Regex:      re,
			Message:    r.Message,
			Suggestion: r.Suggestion,
		})
	}
	return patterns, nil
}

// ruleLevel parses a rules-file level string; unrecognized levels read as
// advisory so a typo cannot silently block merges.
func ruleLevel(s string) qualitygate.Level {
	switch s {
	case "blocking":
		return qualitygate.LevelBlocking
	case "warning":
		return qualitygate.LevelWarning
	default:
		return qualitygate.LevelAdvisory
	}
}

// ruleWeights converts rules-file impact weights into the ordered weight
// table. Empty means "use the builtin table".
func ruleWeights(rules *config.Rules) []scoring.PathWeight {
	weights := make([]scoring.PathWeight, 0, len(rules.ImpactWeights))
	for _, w := range rules.ImpactWeights {
		weights = append(weights, scoring.PathWeight{Keyword: w.Keyword, Weight: w.Weight})
	}
	return weights
}
