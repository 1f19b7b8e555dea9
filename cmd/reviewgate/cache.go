package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewgate/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the metrics cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		logger := newLogger(cfg)

		c := cache.New(resolvePath(cfg.Cache.Dir), logger)
		if err := c.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count and size",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		logger := newLogger(cfg)

		c := cache.New(resolvePath(cfg.Cache.Dir), logger)
		entries, bytes := c.Stats()
		fmt.Printf("Entries: %d\n", entries)
		fmt.Printf("Size:    %d bytes\n", bytes)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}
