package cmd

import (
	logger "github.com/PolarWolf314/koru/internal/logging"
	"github.com/spf13/cobra"
)

var (
	homeFlag string
	verbose  bool
	debug    bool

	// Logger is shared by every command body. It is initialized from
	// the persistent flags before any RunE executes.
	Logger logger.Logger
)

// RegisterGlobalFlags attaches the flags every koru command honors to
// the root command and wires up the shared Logger.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&homeFlag, "home", "", "profile root directory (default $KORU_HOME, then ~/.koru)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing koru with verbose=%t, debug=%t", verbose, debug)
	}
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	homeFlag = ""
	verbose = false
	debug = false
	resetSetCommandState()
	resetListCommandState()
	resetFindCommandState()
	resetCategoryAddCommandState()
	resetMergeCommandState()
	resetExportCommandState()
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetLogCommandState()
}

// SetHome sets the profile root for testing.
func SetHome(path string) {
	homeFlag = path
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
