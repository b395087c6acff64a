package cmd

import (
	"github.com/spf13/cobra"
)

// AppCmd groups the app-default subcommands.
var AppCmd = &cobra.Command{
	Use:   "app",
	Short: "Manage per-application default profiles",
	Long: `Binds a default profile per category to an application, so a merge
for that application can start from its recorded selections.`,
}

func init() {
	AppCmd.AddCommand(appUseCmd)
	AppCmd.AddCommand(appShowCmd)
	AppCmd.AddCommand(appListCmd)
	AppCmd.AddCommand(appUnuseCmd)
}
