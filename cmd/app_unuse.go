package cmd

import (
	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var appUnuseCmd = &cobra.Command{
	Use:   "unuse APP CATEGORY",
	Short: "Remove an app's default for a category",
	Long: `Drops APP's binding for CATEGORY. Other categories keep their
bindings. Removing a category the app never bound is a no-op.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting app unuse command")
		spinner, cleanup := startSpinner("Removing default...", verbose)
		defer cleanup()

		app, category := args[0], args[1]

		store, err := newDefaultsStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open defaults store: %v", err)
		}

		if err := store.Remove(app, category); err != nil {
			if msg := notFoundMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to remove default: %v", err)
		}

		root, _ := resolveRoot()
		audit.Log(root, audit.Entry{
			Operation: "unuse",
			App:       app,
			Category:  category,
		})

		Logger.Infof("App %s no longer defaults %s", app, category)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + ui.Highlight.Sprint(app) +
			" no longer has a default for " + ui.Highlight.Sprint(category)
		return nil
	},
}
