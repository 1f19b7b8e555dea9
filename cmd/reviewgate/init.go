package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"reviewgate/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config to .reviewgate/config.json",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(repoFlag, ".reviewgate", "config.json")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(repoFlag); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}
