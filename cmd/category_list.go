package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and their required keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting category list command")

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		categories, err := manager.Categories()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list categories: %v", err)
		}
		if len(categories) == 0 {
			fmt.Println("No categories found. Run " + ui.Code.Sprint("koru category add NAME") + " to create one.")
			return nil
		}

		for _, name := range categories {
			required := manager.RequiredKeys(name)
			if len(required) > 0 {
				fmt.Printf("%s  requires: %s\n", ui.Highlight.Sprint(name), ui.Key.Sprint(strings.Join(required, ", ")))
			} else {
				fmt.Println(ui.Highlight.Sprint(name))
			}
		}
		return nil
	},
}
