package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileName is the audit log file under the profile root.
const FileName = "audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"` // Unique entry ID.
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	Category string   `json:"category,omitempty"`
	Profile  string   `json:"profile,omitempty"`
	App      string   `json:"app,omitempty"`     // For app-default operations.
	Keys     []string `json:"keys,omitempty"`    // Key names touched; never values.
	Target   string   `json:"target,omitempty"`  // For copy: destination category/profile.
	Format   string   `json:"format,omitempty"`  // For export.
	Count    int      `json:"count,omitempty"`   // For merge: number of selections.
}

// LogPath returns the path to the audit log under root.
func LogPath(root string) string {
	return filepath.Join(root, FileName)
}

// Log appends an entry to the audit log under root.
// If logging fails, the entry is dropped silently: profile operations
// should not fail just because audit logging failed.
func Log(root string, entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(root, 0700); err != nil {
		return
	}

	f, err := os.OpenFile(LogPath(root), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log under root.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(root string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(root))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
