package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewgate/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the reviewgate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reviewgate version %s\n", version.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
