package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"reviewgate/internal/analyzer"
	"reviewgate/internal/cache"
	"reviewgate/internal/pr"
)

var (
	analyzeFormat  string
	analyzeNoCache bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Show complexity metrics for source files",
	Long: `Compute per-file complexity metrics: cyclomatic complexity, nesting
depth, function count, and the length and size penalties that feed the
static score.

Examples:
  reviewgate analyze src/app.py
  reviewgate analyze --format human src/app.py src/db.py`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format (json, yaml, human)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "Bypass the metrics cache")
	rootCmd.AddCommand(analyzeCmd)
}

// FileMetricsReport pairs a file with its metrics for CLI output.
type FileMetricsReport struct {
	File     string           `json:"file"`
	Language string           `json:"language"`
	Metrics  analyzer.Metrics `json:"metrics"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	cacheDir := resolvePath(cfg.Cache.Dir)
	if analyzeNoCache {
		cacheDir = ""
	}
	metricsCache := cache.New(cacheDir, logger)

	reports := make([]FileMetricsReport, 0, len(args))
	for _, path := range args {
		abs := path
		if !filepath.IsAbs(path) {
			abs = filepath.Join(repoFlag, path)
		}
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", abs)
		}

		reports = append(reports, FileMetricsReport{
			File:     path,
			Language: pr.DetectLanguage(path),
			Metrics:  metricsCache.GetOrCompute(abs),
		})
	}

	out, err := formatMetricsReports(reports, analyzeFormat)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
