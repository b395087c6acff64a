package cmd

import (
	"fmt"

	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List apps with recorded defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting app list command")

		store, err := newDefaultsStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open defaults store: %v", err)
		}

		apps, err := store.Apps()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list apps: %v", err)
		}
		if len(apps) == 0 {
			fmt.Println("No apps recorded. Run " + ui.Code.Sprint("koru app use APP CATEGORY PROFILE") + " to add one.")
			return nil
		}

		for _, app := range apps {
			fmt.Println(ui.Highlight.Sprint(app))
		}
		return nil
	},
}
