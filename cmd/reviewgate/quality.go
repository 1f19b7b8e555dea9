package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reviewgate/internal/qualitygate"
)

var (
	qualityFiles  []string
	qualityGitHub string
	qualityPR     int
	qualityFormat string
	qualityNoAI   bool
)

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Run the quality gate over changed files",
	Long: `Run only the quality gate: secret, SQL-injection, and unsafe-exec
detectors, maintainability warnings, Python advisories, and optional
AI-assisted review. Exits nonzero when a blocking issue is found, so CI
can gate merges on the result.

Examples:
  reviewgate quality --files src/app.py
  reviewgate quality --github acme/shop --pr 412 --format human`,
	RunE: runQuality,
}

func init() {
	qualityCmd.Flags().StringSliceVar(&qualityFiles, "files", nil, "Changed file paths (relative to --repo)")
	qualityCmd.Flags().StringVar(&qualityGitHub, "github", "", "GitHub repository as owner/name")
	qualityCmd.Flags().IntVar(&qualityPR, "pr", 0, "Pull request number (with --github)")
	qualityCmd.Flags().StringVar(&qualityFormat, "format", "json", "Output format (json, yaml, human)")
	qualityCmd.Flags().BoolVar(&qualityNoAI, "no-ai", false, "Skip AI-assisted review")
	rootCmd.AddCommand(qualityCmd)
}

func runQuality(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	ctx := context.Background()

	files, err := collectFiles(ctx, qualityFiles, qualityGitHub, qualityPR, logger)
	if err != nil {
		return err
	}

	rules := loadRules(cfg, logger)
	extraPatterns, err := rulePatterns(rules)
	if err != nil {
		return err
	}

	opts := []qualitygate.Option{qualitygate.WithExtraPatterns(extraPatterns)}
	if !qualityNoAI {
		if aiClient := newAIClient(cfg, logger); aiClient != nil {
			opts = append(opts, qualitygate.WithAIReviewer(qualitygate.NewAIReviewer(aiClient, logger)))
		}
	}

	gate := qualitygate.New(logger, opts...)
	result := gate.AnalyzePR(ctx, files)

	out, err := formatQualityResult(result, qualityFormat)
	if err != nil {
		return err
	}
	fmt.Println(out)

	if !result.Passed {
		os.Exit(1)
	}
	return nil
}
