package cmd

import (
	"fmt"

	"github.com/PolarWolf314/koru/internal/security"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var (
	findKey string
	findIn  string
)

func init() {
	profileFindCmd.Flags().StringVar(&findKey, "key", "", "only match entries with this key")
	profileFindCmd.Flags().StringVar(&findIn, "in", "", "glob over category/profile to limit the scan (e.g. 'llm/*')")
}

// resetFindCommandState resets the find command's global state for testing.
func resetFindCommandState() {
	findKey = ""
	findIn = ""
}

var profileFindCmd = &cobra.Command{
	Use:   "find VALUE",
	Short: "Find profiles containing a value",
	Long: `Scans stored profiles for entries whose value equals VALUE, answering
"which profiles still use this endpoint/key?". Use --key to require a
specific key as well, and --in to limit the scan with a glob over
category/profile paths.

Examples:
  koru profile find 192.168.1.10
  koru profile find gsk_abc --key GROQ_API_KEY
  koru profile find https://api.groq.com --in 'llm/*'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profile find command")
		spinner, cleanup := startSpinner("Scanning profiles...", verbose)
		defer cleanup()

		value := args[0]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		matches, err := manager.FindByKey(findIn, func(k, v string) bool {
			if findKey != "" && k != findKey {
				return false
			}
			return v == value
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to scan profiles: %v", err)
		}

		spinner.FinalMSG = ""
		if len(matches) == 0 {
			fmt.Println("No matches found.")
			return nil
		}

		Logger.Infof("Found %d matches", len(matches))
		for _, m := range matches {
			shown := m.Value
			if security.IsSensitiveKey(m.Key) {
				shown = security.MaskValue(m.Value, security.DefaultVisibleChars)
			}
			fmt.Printf("%s  %s=%s\n", ui.Highlight.Sprint(m.Category+"/"+m.Profile), ui.Key.Sprint(m.Key), shown)
		}
		return nil
	},
}
