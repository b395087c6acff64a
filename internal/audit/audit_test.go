package audit

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestLog_CreatesFile(t *testing.T) {
	root := t.TempDir()

	Log(root, Entry{
		Operation: "set",
		Category:  "llm",
		Profile:   "groq",
		Keys:      []string{"LLM_MODEL", "GROQ_API_KEY"},
	})

	if _, err := os.Stat(LogPath(root)); os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	root := t.TempDir()

	Log(root, Entry{Operation: "set", Category: "llm", Profile: "groq"})
	Log(root, Entry{Operation: "delete-profile", Category: "llm", Profile: "groq"})
	Log(root, Entry{Operation: "use", App: "fixpi", Category: "llm", Profile: "groq"})

	data, err := os.ReadFile(LogPath(root))
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}

	// Each line must be valid JSON with generated ID and timestamp.
	for i, line := range lines {
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", i, err)
			continue
		}
		if entry.ID == "" {
			t.Errorf("Line %d missing generated ID", i)
		}
		if entry.Timestamp == "" {
			t.Errorf("Line %d missing generated timestamp", i)
		}
	}
}

func TestReadEntries_MissingLogIsEmpty(t *testing.T) {
	entries, err := ReadEntries(t.TempDir())
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries for missing log, got %v", entries)
	}
}

func TestReadEntries_RoundTrip(t *testing.T) {
	root := t.TempDir()

	Log(root, Entry{Operation: "copy", Category: "llm", Profile: "groq", Target: "archive/groq-2026"})
	Log(root, Entry{Operation: "merge", Count: 2})

	entries, err := ReadEntries(root)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "copy" || entries[0].Target != "archive/groq-2026" {
		t.Errorf("First entry = %+v", entries[0])
	}
	if entries[1].Operation != "merge" || entries[1].Count != 2 {
		t.Errorf("Second entry = %+v", entries[1])
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"id":"1","op":"set"}
not json at all
{"id":"2","op":"delete-key"}

{"broken":
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "1" || entries[1].ID != "2" {
		t.Errorf("Entries = %+v", entries)
	}
}

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil, got %v", entries)
	}
}
