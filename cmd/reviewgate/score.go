package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reviewgate/internal/cache"
	"reviewgate/internal/config"
	"reviewgate/internal/history"
	"reviewgate/internal/pr"
	"reviewgate/internal/qualitygate"
	"reviewgate/internal/scoring"
)

var (
	scoreFiles     []string
	scoreGitHub    string
	scorePR        int
	scoreFormat    string
	scoreNoHistory bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a PR and assign its review tier",
	Long: `Run the full evaluation pipeline: quality gate, static complexity,
impact heuristics, and AI assessment, combined into a cognitive score,
a review tier, and an auto-merge decision.

Changed files come either from local paths or from a GitHub PR.

Examples:
  reviewgate score --files src/app.py --files src/db.py
  reviewgate score --github acme/shop --pr 412
  reviewgate score --files src/app.py --format human`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringSliceVar(&scoreFiles, "files", nil, "Changed file paths (relative to --repo)")
	scoreCmd.Flags().StringVar(&scoreGitHub, "github", "", "GitHub repository as owner/name")
	scoreCmd.Flags().IntVar(&scorePR, "pr", 0, "Pull request number (with --github)")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "json", "Output format (json, yaml, human)")
	scoreCmd.Flags().BoolVar(&scoreNoHistory, "no-history", false, "Skip recording the evaluation")
	rootCmd.AddCommand(scoreCmd)
}

// ScoreReport is the full evaluation record emitted for the PR-comment
// layer.
type ScoreReport struct {
	RunID     string                  `json:"runId"`
	CreatedAt time.Time               `json:"createdAt"`
	FileCount int                     `json:"fileCount"`
	Files     []string                `json:"files"`
	Quality   *qualitygate.Result     `json:"quality"`
	Score     *scoring.CognitiveScore `json:"score"`
}

func runScore(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	ctx := context.Background()

	files, err := collectFiles(ctx, scoreFiles, scoreGitHub, scorePR, logger)
	if err != nil {
		return err
	}

	rules := loadRules(cfg, logger)
	extraPatterns, err := rulePatterns(rules)
	if err != nil {
		return err
	}

	aiClient := newAIClient(cfg, logger)

	gate := qualitygate.New(logger,
		qualitygate.WithExtraPatterns(extraPatterns),
		qualitygate.WithAIReviewer(qualitygate.NewAIReviewer(aiClient, logger)),
	)
	gateResult := gate.AnalyzePR(ctx, files)

	metricsCache := cache.New(resolvePath(cfg.Cache.Dir), logger)
	scorer := scoring.NewCognitiveScorer(metricsCache, aiClient, logger)
	if weights := ruleWeights(rules); len(weights) > 0 {
		scorer.SetImpactScorer(scoring.NewImpactScorerWithWeights(weights))
	}
	score := scorer.Analyze(ctx, files, gateResult.QualityPenalty)

	report := &ScoreReport{
		RunID:     uuid.NewString(),
		CreatedAt: start.UTC(),
		FileCount: len(files),
		Files:     filePaths(files),
		Quality:   gateResult,
		Score:     score,
	}

	if cfg.History.Enabled && !scoreNoHistory {
		recordEvaluation(cfg, logger, report)
	}

	out, err := formatScoreReport(report, scoreFormat)
	if err != nil {
		return err
	}
	fmt.Println(out)

	logger.Debug("Evaluation complete",
		"runId", report.RunID,
		"files", len(files),
		"total", score.TotalScore,
		"tier", score.Tier,
		"duration", time.Since(start).Milliseconds(),
	)
	return nil
}

// collectFiles resolves the changed-file set from --github/--pr or from
// local --files paths.
func collectFiles(ctx context.Context, paths []string, githubRepo string, prNumber int, logger *slog.Logger) ([]pr.ChangedFile, error) {
	if githubRepo != "" {
		if prNumber <= 0 {
			return nil, fmt.Errorf("--github requires --pr")
		}
		owner, name, err := splitRepo(githubRepo)
		if err != nil {
			return nil, err
		}
		token := os.Getenv("REVIEWGATE_GITHUB_TOKEN")
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}
		loader := pr.NewGitHubLoader(token, logger)
		return loader.LoadFiles(ctx, owner, name, prNumber)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no changed files: pass --files or --github/--pr")
	}
	return pr.FromPaths(repoFlag, paths), nil
}

// filePaths extracts the paths for the report file list.
func filePaths(files []pr.ChangedFile) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}

// recordEvaluation appends the evaluation to the history store, best
// effort: history failures never fail the run.
func recordEvaluation(cfg *config.Config, logger *slog.Logger, report *ScoreReport) {
	store, err := history.Open(resolvePath(cfg.History.Path), logger)
	if err != nil {
		logger.Warn("History store unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	err = store.Append(history.Entry{
		RunID:          report.RunID,
		CreatedAt:      report.CreatedAt,
		TotalScore:     report.Score.TotalScore,
		StaticScore:    report.Score.StaticScore,
		ImpactScore:    report.Score.ImpactScore,
		AIScore:        report.Score.AIScore,
		QualityPenalty: report.Score.QualityPenalty,
		Tier:           report.Score.Tier,
		AutoMerge:      report.Score.AutoMerge,
		GatePassed:     report.Quality.Passed,
		FileCount:      report.FileCount,
	})
	if err != nil {
		logger.Warn("Failed to record evaluation", "error", err)
	}
}

// splitRepo splits an owner/name argument.
func splitRepo(s string) (string, string, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid --github value %q, expected owner/name", s)
	}
	return parts[0], parts[1], nil
}
