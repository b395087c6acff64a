package cmd

import (
	"github.com/spf13/cobra"
)

// ProfileCmd groups the profile subcommands.
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage stored environment profiles",
	Long:  `Provides creation, inspection, deletion, copying, diffing, and searching of profiles grouped by category.`,
}

func init() {
	ProfileCmd.AddCommand(profileSetCmd)
	ProfileCmd.AddCommand(profileGetCmd)
	ProfileCmd.AddCommand(profileListCmd)
	ProfileCmd.AddCommand(profileDeleteCmd)
	ProfileCmd.AddCommand(profileUnsetCmd)
	ProfileCmd.AddCommand(profileCopyCmd)
	ProfileCmd.AddCommand(profileDiffCmd)
	ProfileCmd.AddCommand(profileFindCmd)
}
