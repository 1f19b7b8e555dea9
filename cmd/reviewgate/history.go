package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewgate/internal/history"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent evaluations",
	Long: `List recent PR evaluations recorded by the score command, newest
first.

Examples:
  reviewgate history
  reviewgate history --limit 5 --format human`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum evaluations to show")
	historyCmd.Flags().StringVar(&historyFormat, "format", "json", "Output format (json, yaml, human)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	store, err := history.Open(resolvePath(cfg.History.Path), logger)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}

	out, err := formatHistoryEntries(entries, historyFormat)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
