package cmd

import (
	"fmt"

	"github.com/PolarWolf314/koru/internal/security"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var listShowSecrets bool

func init() {
	profileListCmd.Flags().BoolVar(&listShowSecrets, "show-secrets", false, "print sensitive values unmasked")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listShowSecrets = false
}

var profileListCmd = &cobra.Command{
	Use:   "list [CATEGORY [PROFILE]]",
	Short: "List categories, profiles, or a profile's contents",
	Long: `With no arguments, lists every category. With a category, lists its
profiles. With a category and a profile, prints the profile's keys and
values. Values of sensitive-looking keys (passwords, tokens, API keys)
are masked unless --show-secrets is given.

Examples:
  koru profile list                      # All categories
  koru profile list llm                  # Profiles in llm
  koru profile list llm groq             # Contents of llm/groq, masked
  koru profile list llm groq --show-secrets`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profile list command")

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		switch len(args) {
		case 0:
			categories, err := manager.Categories()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to list categories: %v", err)
			}
			if len(categories) == 0 {
				fmt.Println("No categories found. Run " + ui.Code.Sprint("koru category add NAME") + " to create one.")
				return nil
			}
			for _, name := range categories {
				fmt.Println(ui.Highlight.Sprint(name))
			}
			return nil

		case 1:
			names, err := manager.ProfileNames(args[0])
			if err != nil {
				if msg := notFoundMessage(err); msg != "" {
					fmt.Println(msg)
					return nil
				}
				return Logger.ErrorfAndReturn("Failed to list profiles: %v", err)
			}
			if len(names) == 0 {
				fmt.Println("No profiles in " + ui.Highlight.Sprint(args[0]) + " yet.")
				return nil
			}
			for _, name := range names {
				fmt.Println(args[0] + "/" + ui.Highlight.Sprint(name))
			}
			return nil

		default:
			doc, err := manager.Document(args[0], args[1])
			if err != nil {
				if msg := notFoundMessage(err); msg != "" {
					fmt.Println(msg)
					return nil
				}
				return Logger.ErrorfAndReturn("Failed to read profile: %v", err)
			}

			shown := doc.Map()
			if !listShowSecrets {
				Logger.Debugf("Masking sensitive values")
				shown = security.MaskMap(shown)
			}
			for _, key := range doc.Keys() {
				value := shown[key]
				if !listShowSecrets && security.IsSensitiveKey(key) {
					fmt.Printf("%s=%s\n", ui.Key.Sprint(key), ui.Muted.Sprint(value))
				} else {
					fmt.Printf("%s=%s\n", ui.Key.Sprint(key), value)
				}
			}
			return nil
		}
	},
}
