package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/export"
	"github.com/PolarWolf314/koru/internal/security"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportMasked bool
)

func init() {
	ExportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: "+strings.Join(export.Formats(), ", "))
	ExportCmd.Flags().BoolVar(&exportMasked, "masked", false, "mask sensitive values in the output")
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportFormat = "json"
	exportMasked = false
}

// ExportCmd serializes a single profile into a consumer format.
var ExportCmd = &cobra.Command{
	Use:   "export CATEGORY PROFILE",
	Short: "Export a profile as JSON, shell, docker, env, or YAML",
	Long: `Serializes one profile for consumption elsewhere. With --masked,
sensitive-looking values are masked, which is useful for sharing a
profile's shape without its secrets.

Examples:
  koru export llm groq                        # JSON
  koru export llm groq --format shell         # eval-able export lines
  koru export rpi home --format yaml --masked`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		category, profile := args[0], args[1]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		data, err := manager.GetAll(category, profile)
		if err != nil {
			if msg := notFoundMessage(err); msg != "" {
				fmt.Println(msg)
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to read profile: %v", err)
		}

		if exportMasked {
			Logger.Debugf("Masking sensitive values before export")
			data = security.MaskMap(data)
		}

		out, err := export.Render(export.Format(exportFormat), data, category+"/"+profile)
		if err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
				ui.Info.Sprint("→") + " Formats: " + ui.Code.Sprint(strings.Join(export.Formats(), ", ")))
			return nil
		}

		audit.Log(manager.Root(), audit.Entry{
			Operation: "export",
			Category:  category,
			Profile:   profile,
			Format:    exportFormat,
		})

		Logger.Infof("Exported %s/%s as %s", category, profile, exportFormat)
		fmt.Println(out)
		return nil
	},
}
