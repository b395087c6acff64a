package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var profileGetCmd = &cobra.Command{
	Use:   "get CATEGORY PROFILE KEY",
	Short: "Print a single value from a profile",
	Long: `Prints the raw value of one key, suitable for command substitution:

  export GROQ_API_KEY=$(koru profile get llm groq GROQ_API_KEY)

The error message distinguishes a missing category, a missing profile,
and a missing key.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profile get command")
		category, profile, key := args[0], args[1], args[2]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		value, err := manager.Get(category, profile, key)
		if err != nil {
			if msg := notFoundMessage(err); msg != "" {
				// On stderr so command substitution stays clean.
				fmt.Fprintln(os.Stderr, msg)
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to read profile: %v", err)
		}

		fmt.Println(value)
		return nil
	},
}
