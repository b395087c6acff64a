package cmd

import (
	"fmt"
	"sort"

	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var profileDiffCmd = &cobra.Command{
	Use:   "diff CATEGORY PROFILE_A PROFILE_B",
	Short: "Compare two profiles in a category",
	Long: `Shows the structural difference between two profiles: keys only in B
(added), keys only in A (removed), and keys present in both with
different values (changed).

Example:
  koru profile diff rpi home work`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profile diff command")
		category, a, b := args[0], args[1], args[2]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		result, err := manager.Diff(category, a, b)
		if err != nil {
			if msg := notFoundMessage(err); msg != "" {
				fmt.Println(msg)
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to diff profiles: %v", err)
		}

		if result.Empty() {
			fmt.Println(ui.Success.Sprint("✓") + " " + ui.Highlight.Sprint(category+"/"+a) +
				" and " + ui.Highlight.Sprint(category+"/"+b) + " are identical")
			return nil
		}

		fmt.Println("Comparing " + ui.Highlight.Sprint(category+"/"+a) + " with " + ui.Highlight.Sprint(category+"/"+b) + ":")
		for _, key := range sortedDiffKeys(result.Added) {
			fmt.Printf("  %s %s=%s\n", ui.Success.Sprint("+"), ui.Key.Sprint(key), result.Added[key])
		}
		for _, key := range sortedDiffKeys(result.Removed) {
			fmt.Printf("  %s %s=%s\n", ui.Error.Sprint("-"), ui.Key.Sprint(key), result.Removed[key])
		}
		changed := make([]string, 0, len(result.Changed))
		for key := range result.Changed {
			changed = append(changed, key)
		}
		sort.Strings(changed)
		for _, key := range changed {
			pair := result.Changed[key]
			fmt.Printf("  %s %s: %s %s %s\n", ui.Warning.Sprint("~"), ui.Key.Sprint(key),
				pair[0], ui.Info.Sprint("→"), pair[1])
		}
		return nil
	},
}

func sortedDiffKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
