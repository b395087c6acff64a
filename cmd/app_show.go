package cmd

import (
	"fmt"
	"sort"

	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var appShowCmd = &cobra.Command{
	Use:   "show APP",
	Short: "Show an app's default profile bindings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting app show command")
		app := args[0]

		store, err := newDefaultsStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open defaults store: %v", err)
		}

		bindings, err := store.Show(app)
		if err != nil {
			if msg := notFoundMessage(err); msg != "" {
				fmt.Println(msg)
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to read defaults: %v", err)
		}

		categories := make([]string, 0, len(bindings))
		for category := range bindings {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		fmt.Println("Defaults for " + ui.Highlight.Sprint(app) + ":")
		for _, category := range categories {
			fmt.Printf("  %s %s %s\n", ui.Key.Sprint(category), ui.Info.Sprint("→"), ui.Highlight.Sprint(bindings[category]))
		}
		return nil
	},
}
