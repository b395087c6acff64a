package cmd

import (
	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var appUseCmd = &cobra.Command{
	Use:   "use APP CATEGORY PROFILE",
	Short: "Bind a default profile for an app",
	Long: `Records that APP uses CATEGORY's PROFILE by default. Bindings
accumulate per category, so an app can carry one default per category.
Rebinding a category replaces the earlier choice.

Examples:
  koru app use fixpi llm groq
  koru app use fixpi rpi home`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting app use command")
		spinner, cleanup := startSpinner("Recording default...", verbose)
		defer cleanup()

		app, category, profile := args[0], args[1], args[2]

		store, err := newDefaultsStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open defaults store: %v", err)
		}

		if err := store.Use(app, category, profile); err != nil {
			return Logger.ErrorfAndReturn("Failed to record default: %v", err)
		}

		root, _ := resolveRoot()
		audit.Log(root, audit.Entry{
			Operation: "use",
			App:       app,
			Category:  category,
			Profile:   profile,
		})

		Logger.Infof("App %s now defaults to %s/%s", app, category, profile)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + ui.Highlight.Sprint(app) +
			" now uses " + ui.Highlight.Sprint(category+"/"+profile) + " by default"
		return nil
	},
}
