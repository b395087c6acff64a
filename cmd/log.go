package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/koru/internal/audit"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logOperation string
	logReverse   bool
	logOneline   bool
	logJSON      bool
)

func init() {
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logOperation = ""
	logReverse = false
	logOneline = false
	logJSON = false
}

// LogCmd displays the audit log.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the log of profile operations: what was written, deleted,
copied, sealed, or exported, and when. Key values are never logged,
only key names.

Examples:
  koru log                          # Full log
  koru log -n 10                    # Last 10 entries
  koru log --reverse                # Most recent first
  koru log --operation set,merge    # Filter by operation
  koru log --json                   # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		root, err := resolveRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile root: %v", err)
		}

		entries, err := audit.ReadEntries(root)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read audit log: %v", err)
		}
		Logger.Debugf("Parsed %d entries from audit log", len(entries))

		if logOperation != "" {
			wanted := make(map[string]bool)
			for _, op := range strings.Split(logOperation, ",") {
				wanted[strings.TrimSpace(op)] = true
			}
			filtered := entries[:0]
			for _, e := range entries {
				if wanted[e.Operation] {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}

		if logReverse {
			for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}

		// -n keeps the most recent entries regardless of direction.
		if logLimit > 0 && len(entries) > logLimit {
			if logReverse {
				entries = entries[:logLimit]
			} else {
				entries = entries[len(entries)-logLimit:]
			}
		}

		if len(entries) == 0 {
			fmt.Println("No audit log entries found.")
			return nil
		}

		if logJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal entries to JSON: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if logOneline {
			for _, e := range entries {
				fmt.Printf("%s %s %s\n", formatLogDate(e.Timestamp), e.Operation, formatLogDetails(e))
			}
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%-19s  %-14s  %s\n", formatLogDateTime(e.Timestamp), e.Operation, formatLogDetails(e))
		}
		return nil
	},
}

// formatLogDate extracts the date portion of an entry timestamp.
func formatLogDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// formatLogDateTime extracts the date and time (to the second) of an
// entry timestamp.
func formatLogDateTime(ts string) string {
	if len(ts) >= 19 {
		return strings.Replace(ts[:19], "T", " ", 1)
	}
	return ts
}

// formatLogDetails renders the operation-specific fields of an entry.
func formatLogDetails(e audit.Entry) string {
	var parts []string
	if e.App != "" {
		parts = append(parts, "app="+e.App)
	}
	if e.Category != "" {
		target := e.Category
		if e.Profile != "" {
			target += "/" + e.Profile
		}
		parts = append(parts, target)
	}
	if e.Target != "" {
		parts = append(parts, "→ "+e.Target)
	}
	if len(e.Keys) > 0 {
		parts = append(parts, "["+strings.Join(e.Keys, ", ")+"]")
	}
	if e.Format != "" {
		parts = append(parts, "format="+e.Format)
	}
	if e.Count > 0 {
		parts = append(parts, fmt.Sprintf("%d selections", e.Count))
	}
	return strings.Join(parts, "  ")
}
