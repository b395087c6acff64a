package cmd

import (
	"github.com/spf13/cobra"
)

// CategoryCmd groups the category subcommands.
var CategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage profile categories",
	Long:  `Declares categories and their required keys, and lists what exists.`,
}

func init() {
	CategoryCmd.AddCommand(categoryAddCmd)
	CategoryCmd.AddCommand(categoryListCmd)
}
