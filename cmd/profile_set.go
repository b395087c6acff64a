package cmd

import (
	"errors"
	"strings"

	"github.com/PolarWolf314/koru/internal/audit"
	korerrors "github.com/PolarWolf314/koru/internal/errors"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var setValidate bool

func init() {
	profileSetCmd.Flags().BoolVar(&setValidate, "validate", false, "enforce the category's required keys before writing")
}

// resetSetCommandState resets the set command's global state for testing.
func resetSetCommandState() {
	setValidate = false
}

var profileSetCmd = &cobra.Command{
	Use:   "set CATEGORY PROFILE KEY=VALUE...",
	Short: "Create a profile or update keys in an existing one",
	Long: `Writes key/value pairs into a profile, creating it if needed. Existing
keys are updated in place; new keys are appended. Comments and line
order in the profile file are preserved.

With --validate, the write is refused unless every required key of the
category ends up present and non-empty. Nothing is written on refusal.

Examples:
  koru profile set llm groq LLM_MODEL=groq/llama-3 GROQ_API_KEY=gsk_abc
  koru profile set rpi home RPI_HOST=192.168.1.10 --validate`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profile set command")
		spinner, cleanup := startSpinner("Saving profile...", verbose)
		defer cleanup()

		category, profile := args[0], args[1]
		pairs, err := parsePairs(args[2:])
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			return nil
		}

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		Logger.Debugf("Applying %d pairs to %s/%s (validate=%t)", len(pairs), category, profile, setValidate)
		if err := manager.Set(category, profile, pairs, setValidate); err != nil {
			var verr *korerrors.ValidationError
			if errors.As(err, &verr) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Validation failed for " + ui.Highlight.Sprint(category+"/"+profile) + "\n" +
					"    missing required keys: " + ui.Key.Sprint(strings.Join(verr.Missing, ", ")) + "\n" +
					ui.Info.Sprint("→") + " Nothing was written"
				return nil
			}
			if msg := notFoundMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to save profile: %v", err)
		}

		keys := make([]string, len(pairs))
		for i, p := range pairs {
			keys[i] = p.Key
		}
		audit.Log(manager.Root(), audit.Entry{
			Operation: "set",
			Category:  category,
			Profile:   profile,
			Keys:      keys,
		})

		Logger.Infof("Profile %s/%s saved with %d keys", category, profile, len(pairs))
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Saved " + ui.Highlight.Sprint(category+"/"+profile) + "\n" +
			"    updated: " + ui.Key.Sprint(strings.Join(keys, ", "))
		return nil
	},
}
