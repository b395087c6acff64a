package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PolarWolf314/koru/internal/audit"
	korerrors "github.com/PolarWolf314/koru/internal/errors"
	"github.com/PolarWolf314/koru/internal/export"
	"github.com/PolarWolf314/koru/internal/profiles"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var (
	mergeWith   []string
	mergeApp    string
	mergeBase   []string
	mergeFormat string
)

func init() {
	MergeCmd.Flags().StringArrayVar(&mergeWith, "with", nil, "profile selection as CATEGORY=PROFILE (repeatable, later wins)")
	MergeCmd.Flags().StringVar(&mergeApp, "app", "", "start from this app's recorded default selections")
	MergeCmd.Flags().StringArrayVar(&mergeBase, "base", nil, "base KEY=VALUE applied before any selection (repeatable)")
	MergeCmd.Flags().StringVar(&mergeFormat, "format", "env", "output format: "+strings.Join(export.Formats(), ", "))
}

// resetMergeCommandState resets the merge command's global state for testing.
func resetMergeCommandState() {
	mergeWith = nil
	mergeApp = ""
	mergeBase = nil
	mergeFormat = "env"
}

// MergeCmd merges profile selections into one environment.
var MergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge profile selections into a single environment",
	Long: `Overlays the selected profiles onto the base mapping, in order. Later
selections win on key conflicts. With --app, the app's recorded default
selections come first, so explicit --with selections override them.

Every selection is verified before anything is merged; one missing
profile fails the whole merge and produces no partial output.

Examples:
  koru merge --with llm=groq --with rpi=home
  koru merge --app fixpi --format shell
  koru merge --app fixpi --with llm=openai --base DEBUG=1 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting merge command")
		spinner, cleanup := startSpinner("Merging profiles...", verbose)
		defer cleanup()

		basePairs, err := parsePairs(mergeBase)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			return nil
		}
		base := make(map[string]string, len(basePairs))
		for _, p := range basePairs {
			base[p.Key] = p.Value
		}

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		var selections []profiles.Selection
		if mergeApp != "" {
			store, err := newDefaultsStore()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to open defaults store: %v", err)
			}
			appSelections, err := store.Selections(mergeApp)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read app defaults: %v", err)
			}
			Logger.Debugf("App %s contributes %d selections", mergeApp, len(appSelections))
			selections = append(selections, appSelections...)
		}
		for _, sel := range mergeWith {
			category, profile, found := strings.Cut(sel, "=")
			if !found || category == "" || profile == "" {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Invalid selection " + ui.Code.Sprint(sel) + ", expected CATEGORY=PROFILE"
				return nil
			}
			selections = append(selections, profiles.Selection{Category: category, Profile: profile})
		}

		if len(selections) == 0 && len(base) == 0 {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Nothing to merge\n" +
				ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("--with CATEGORY=PROFILE") + " or " + ui.Code.Sprint("--app APP")
			return nil
		}

		merged, err := manager.Merge(base, selections)
		if err != nil {
			var merr *korerrors.MergeError
			if errors.As(err, &merr) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Cannot merge " + ui.Highlight.Sprint(merr.Category+"/"+merr.Profile) + ": " + merr.Err.Error() + "\n" +
					ui.Info.Sprint("→") + " No partial environment was produced"
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to merge profiles: %v", err)
		}

		parts := make([]string, len(selections))
		for i, s := range selections {
			parts[i] = s.Category + "/" + s.Profile
		}
		header := "merged: " + strings.Join(parts, ", ")

		out, err := export.Render(export.Format(mergeFormat), merged, header)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
				ui.Info.Sprint("→") + " Formats: " + ui.Code.Sprint(strings.Join(export.Formats(), ", "))
			return nil
		}

		audit.Log(manager.Root(), audit.Entry{
			Operation: "merge",
			App:       mergeApp,
			Format:    mergeFormat,
			Count:     len(selections),
		})

		Logger.Infof("Merged %d selections into %d keys", len(selections), len(merged))
		spinner.FinalMSG = ""
		fmt.Println(out)
		return nil
	},
}
