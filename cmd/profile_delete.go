package cmd

import (
	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var profileDeleteCmd = &cobra.Command{
	Use:   "delete CATEGORY PROFILE",
	Short: "Delete a profile",
	Long: `Removes the profile's backing file. Deleting a profile that does not
exist is an error, so a repeated delete fails rather than silently
succeeding.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profile delete command")
		spinner, cleanup := startSpinner("Deleting profile...", verbose)
		defer cleanup()

		category, profile := args[0], args[1]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		if err := manager.DeleteProfile(category, profile); err != nil {
			if msg := notFoundMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to delete profile: %v", err)
		}

		audit.Log(manager.Root(), audit.Entry{
			Operation: "delete-profile",
			Category:  category,
			Profile:   profile,
		})

		Logger.Infof("Profile %s/%s deleted", category, profile)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted " + ui.Highlight.Sprint(category+"/"+profile)
		return nil
	},
}
