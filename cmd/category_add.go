package cmd

import (
	"strings"

	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var categoryRequire []string

func init() {
	categoryAddCmd.Flags().StringArrayVar(&categoryRequire, "require", nil, "required key for profiles in this category (repeatable)")
}

// resetCategoryAddCommandState resets the category add command's global state for testing.
func resetCategoryAddCommandState() {
	categoryRequire = nil
}

var categoryAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Declare a category, optionally with required keys",
	Long: `Creates the category's directory and records its required keys. The
declaration persists, so validated writes in any later invocation
enforce the same keys. Redeclaring a category replaces its required
keys.

Examples:
  koru category add llm --require LLM_MODEL --require GROQ_API_KEY
  koru category add rpi`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting category add command")
		spinner, cleanup := startSpinner("Declaring category...", verbose)
		defer cleanup()

		name := args[0]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		if err := manager.AddCategory(name, categoryRequire); err != nil {
			return Logger.ErrorfAndReturn("Failed to declare category: %v", err)
		}

		audit.Log(manager.Root(), audit.Entry{
			Operation: "category-add",
			Category:  name,
			Keys:      categoryRequire,
		})

		Logger.Infof("Category %s declared with %d required keys", name, len(categoryRequire))
		finalMessage := ui.Success.Sprint("✓") + " Declared category " + ui.Highlight.Sprint(name)
		if len(categoryRequire) > 0 {
			finalMessage += "\n    required: " + ui.Key.Sprint(strings.Join(categoryRequire, ", "))
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
