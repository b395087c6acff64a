package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/koru/internal/appdefaults"
	"github.com/PolarWolf314/koru/internal/configs"
	"github.com/PolarWolf314/koru/internal/envfile"
	korerrors "github.com/PolarWolf314/koru/internal/errors"
	"github.com/PolarWolf314/koru/internal/profiles"
	"github.com/PolarWolf314/koru/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
// This ensures consistent output formatting across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// resolveRoot resolves the profile root from --home, $KORU_HOME, or the
// home directory default.
func resolveRoot() (string, error) {
	return configs.ResolveHome(homeFlag)
}

// newManager opens the profile repository at the resolved root.
func newManager() (*profiles.Manager, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, err
	}
	return profiles.NewManager(root)
}

// newDefaultsStore opens the app-defaults store at the resolved root.
func newDefaultsStore() (*appdefaults.Store, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, err
	}
	return appdefaults.NewStore(root)
}

// parsePairs converts KEY=VALUE arguments into pairs, preserving the
// order they were given on the command line.
func parsePairs(args []string) ([]envfile.Pair, error) {
	pairs := make([]envfile.Pair, 0, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid KEY=VALUE argument: %q", arg)
		}
		pairs = append(pairs, envfile.Pair{Key: key, Value: value})
	}
	return pairs, nil
}

// notFoundMessage renders a missing category, profile, key, or app the
// same way across commands. Returns "" when err is not a not-found
// condition, so callers can fall through to generic error handling.
func notFoundMessage(err error) string {
	var nf *korerrors.NotFoundError
	if !errors.As(err, &nf) {
		return ""
	}
	switch nf.Entity {
	case korerrors.EntityCategory:
		return ui.Error.Sprint("✗") + " Category " + ui.Highlight.Sprint(nf.Category) + " does not exist\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("koru category add "+nf.Category) + " first"
	case korerrors.EntityProfile:
		return ui.Error.Sprint("✗") + " Profile " + ui.Highlight.Sprint(nf.Category+"/"+nf.Profile) + " does not exist\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("koru profile list "+nf.Category) + " to see its profiles"
	case korerrors.EntityKey:
		return ui.Error.Sprint("✗") + " Key " + ui.Key.Sprint(nf.Key) + " not found in " + ui.Highlight.Sprint(nf.Category+"/"+nf.Profile)
	case korerrors.EntityApp:
		return ui.Error.Sprint("✗") + " No defaults recorded for " + ui.Highlight.Sprint(nf.App) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("koru app use "+nf.App+" CATEGORY PROFILE") + " first"
	}
	return ""
}
