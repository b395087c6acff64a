// Package logger provides leveled logging for koru CLI commands.
//
// The logger supports multiple verbosity levels controlled by
// command-line flags. Output is prefixed and colored with fatih/color.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Merged %d profiles", count)
//
// Commands create a logger in their PersistentPreRun and share it
// through a package-level variable in cmd.
package logger
