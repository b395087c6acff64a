package cmd

import (
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/PolarWolf314/koru/internal/security"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/spf13/cobra"
)

var (
	encryptKeyFile string
	encryptAll     bool
)

func init() {
	EncryptCmd.Flags().StringVar(&encryptKeyFile, "key-file", "", "path to the sealing key (default <root>/"+security.KeyFileName+")")
	EncryptCmd.Flags().BoolVar(&encryptAll, "all", false, "seal every value, not just sensitive-looking ones")
}

// resetEncryptCommandState resets the encrypt command's global state for testing.
func resetEncryptCommandState() {
	encryptKeyFile = ""
	encryptAll = false
}

// EncryptCmd seals values in a profile in place.
var EncryptCmd = &cobra.Command{
	Use:   "encrypt CATEGORY PROFILE",
	Short: "Seal sensitive values in a profile",
	Long: `Replaces values with opaque sealed tokens, in place. By default only
sensitive-looking keys (passwords, tokens, API keys) are sealed; --all
seals everything. Already sealed values are left alone, so the command
is safe to repeat.

The sealing key is created on first use and stored at
<root>/` + security.KeyFileName + ` with owner-only permissions. Comments and line
order in the profile survive sealing.

Examples:
  koru encrypt llm groq
  koru encrypt rpi home --all`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		spinner, cleanup := startSpinner("Sealing values...", verbose)
		defer cleanup()

		category, profile := args[0], args[1]

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile store: %v", err)
		}

		keyPath := encryptKeyFile
		if keyPath == "" {
			keyPath = filepath.Join(manager.Root(), security.KeyFileName)
		}
		Logger.Debugf("Using key file: %s", keyPath)
		key, created, err := security.LoadOrCreateKey(keyPath)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load sealing key: %v", err)
		}
		if created {
			Logger.Infof("Created new sealing key at %s", keyPath)
		}

		doc, err := manager.Document(category, profile)
		if err != nil {
			if msg := notFoundMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to read profile: %v", err)
		}

		var sealed []string
		for _, p := range doc.Pairs() {
			if security.IsSealed(p.Value) {
				continue
			}
			if !encryptAll && !security.IsSensitiveKey(p.Key) {
				continue
			}
			token, err := security.SealValue(p.Value, key)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to seal %s: %v", p.Key, err)
			}
			doc.Set(p.Key, token)
			sealed = append(sealed, p.Key)
		}

		if len(sealed) == 0 {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " Nothing to seal in " + ui.Highlight.Sprint(category+"/"+profile)
			return nil
		}

		if err := doc.Save(); err != nil {
			return Logger.ErrorfAndReturn("Failed to save profile: %v", err)
		}

		audit.Log(manager.Root(), audit.Entry{
			Operation: "encrypt",
			Category:  category,
			Profile:   profile,
			Keys:      sealed,
		})

		Logger.Infof("Sealed %d values in %s/%s", len(sealed), category, profile)
		finalMessage := ui.Success.Sprint("✓") + " Sealed " + ui.Key.Sprint(strings.Join(sealed, ", ")) +
			" in " + ui.Highlight.Sprint(category+"/"+profile)
		if created {
			finalMessage += "\n    created key: " + ui.Path.Sprint(keyPath) + "\n" +
				ui.Warning.Sprint("!") + " Back this file up; without it sealed values cannot be recovered"
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
