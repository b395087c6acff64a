package cmd

import (
	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var profileUnsetCmd = &cobra.Command{
	Use:   "unset CATEGORY PROFILE KEY",
	Short: "Remove a single key from a profile",
	Long: `Removes one key from a profile and re-saves it. Other lines, including
comments, keep their positions.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profile unset command")
		spinner, cleanup := startSpinner("Removing key...", verbose)
		defer cleanup()

		category, profile, key := args[0], args[1], args[2]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		if err := manager.DeleteKey(category, profile, key); err != nil {
			if msg := notFoundMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to remove key: %v", err)
		}

		audit.Log(manager.Root(), audit.Entry{
			Operation: "delete-key",
			Category:  category,
			Profile:   profile,
			Keys:      []string{key},
		})

		Logger.Infof("Key %s removed from %s/%s", key, category, profile)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Key.Sprint(key) + " from " + ui.Highlight.Sprint(category+"/"+profile)
		return nil
	},
}
