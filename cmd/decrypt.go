package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/security"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var decryptKeyFile string

func init() {
	DecryptCmd.Flags().StringVar(&decryptKeyFile, "key-file", "", "path to the sealing key (default <root>/"+security.KeyFileName+")")
}

// resetDecryptCommandState resets the decrypt command's global state for testing.
func resetDecryptCommandState() {
	decryptKeyFile = ""
}

// DecryptCmd opens sealed values in a profile in place.
var DecryptCmd = &cobra.Command{
	Use:   "decrypt CATEGORY PROFILE",
	Short: "Open sealed values in a profile",
	Long: `Replaces sealed tokens with their plaintext values, in place. Values
that were never sealed pass through untouched.

Example:
  koru decrypt llm groq`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		spinner, cleanup := startSpinner("Opening sealed values...", verbose)
		defer cleanup()

		category, profile := args[0], args[1]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		keyPath := decryptKeyFile
		if keyPath == "" {
			keyPath = filepath.Join(manager.Root(), security.KeyFileName)
		}
		Logger.Debugf("Using key file: %s", keyPath)
		key, err := security.LoadKey(keyPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No sealing key at " + ui.Path.Sprint(keyPath) + "\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("koru encrypt") + " first, or pass " + ui.Code.Sprint("--key-file")
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to load sealing key: %v", err)
		}

		doc, err := manager.Document(category, profile)
		if err != nil {
			if msg := notFoundMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to read profile: %v", err)
		}

		var opened []string
		for _, p := range doc.Pairs() {
			if !security.IsSealed(p.Value) {
				continue
			}
			plain, err := security.OpenValue(p.Value, key)
			if err != nil {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Cannot open " + ui.Key.Sprint(p.Key) + ": " + err.Error() + "\n" +
					ui.Info.Sprint("→") + " Is " + ui.Path.Sprint(keyPath) + " the key that sealed this profile?"
				return nil
			}
			doc.Set(p.Key, plain)
			opened = append(opened, p.Key)
		}

		if len(opened) == 0 {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No sealed values in " + ui.Highlight.Sprint(category+"/"+profile)
			return nil
		}

		if err := doc.Save(); err != nil {
			return Logger.ErrorfAndReturn("Failed to save profile: %v", err)
		}

		audit.Log(manager.Root(), audit.Entry{
			Operation: "decrypt",
			Category:  category,
			Profile:   profile,
			Keys:      opened,
		})

		Logger.Infof("Opened %d values in %s/%s", len(opened), category, profile)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Opened " + ui.Key.Sprint(strings.Join(opened, ", ")) +
			" in " + ui.Highlight.Sprint(category+"/"+profile)
		return nil
	},
}
