package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/koru/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "koru",
	Short: "Koru - A CLI for managing environment profiles and merged configurations.",
	Long: `Koru stores named .env profiles grouped by category, binds default
profiles to applications, and merges any combination of profiles into a
single environment.

Features:
  - Store profiles as plain .env files, comments and ordering preserved
  - Declare required keys per category and validate writes against them
  - Merge profiles deterministically, with per-app default selections
  - Mask, seal, export, and audit sensitive configuration

Usage:
  koru <command> [flags]

Run 'koru help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Koru", "alligator2", "green", true)
		banner.Print()
		fmt.Println("Run 'koru --help' to see available commands.")
	},
}

func main() {
	cmd.RegisterGlobalFlags(rootCmd)
	rootCmd.AddCommand(cmd.CategoryCmd)
	rootCmd.AddCommand(cmd.ProfileCmd)
	rootCmd.AddCommand(cmd.AppCmd)
	rootCmd.AddCommand(cmd.MergeCmd)
	rootCmd.AddCommand(cmd.ExportCmd)
	rootCmd.AddCommand(cmd.EncryptCmd)
	rootCmd.AddCommand(cmd.DecryptCmd)
	rootCmd.AddCommand(cmd.LogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
