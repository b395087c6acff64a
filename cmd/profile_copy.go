package cmd

import (
	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var profileCopyCmd = &cobra.Command{
	Use:   "copy SRC_CATEGORY SRC_PROFILE DST_CATEGORY DST_PROFILE",
	Short: "Copy a profile, within or across categories",
	Long: `Writes the source profile's key/value mapping as a fresh destination
profile. Comments are not carried over. An existing destination is
overwritten.

Examples:
  koru profile copy llm groq llm groq-backup
  koru profile copy llm groq archive groq-2026`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profile copy command")
		spinner, cleanup := startSpinner("Copying profile...", verbose)
		defer cleanup()

		srcCategory, srcProfile := args[0], args[1]
		dstCategory, dstProfile := args[2], args[3]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		if err := manager.Copy(srcCategory, srcProfile, dstCategory, dstProfile); err != nil {
			if msg := notFoundMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to copy profile: %v", err)
		}

		audit.Log(manager.Root(), audit.Entry{
			Operation: "copy",
			Category:  srcCategory,
			Profile:   srcProfile,
			Target:    dstCategory + "/" + dstProfile,
		})

		Logger.Infof("Copied %s/%s to %s/%s", srcCategory, srcProfile, dstCategory, dstProfile)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Copied " + ui.Highlight.Sprint(srcCategory+"/"+srcProfile) +
			" to " + ui.Highlight.Sprint(dstCategory+"/"+dstProfile)
		return nil
	},
}
