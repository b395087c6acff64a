package appdefaults

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	korerrors "github.com/PolarWolf314/koru/internal/errors"
	"github.com/PolarWolf314/koru/internal/profiles"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func TestUseAccumulatesCategories(t *testing.T) {
	s := newTestStore(t)

	if err := s.Use("fixpi", "llm", "groq"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}
	if err := s.Use("fixpi", "devices", "rpi3"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}

	bindings, err := s.Show("fixpi")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	want := map[string]string{"llm": "groq", "devices": "rpi3"}
	if !reflect.DeepEqual(bindings, want) {
		t.Errorf("Show = %v, want %v", bindings, want)
	}
}

func TestUseUpsertsExistingCategory(t *testing.T) {
	s := newTestStore(t)

	if err := s.Use("fixpi", "llm", "groq"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}
	if err := s.Use("fixpi", "llm", "openrouter"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}

	bindings, err := s.Show("fixpi")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if bindings["llm"] != "openrouter" {
		t.Errorf("llm = %q, want openrouter", bindings["llm"])
	}
	if len(bindings) != 1 {
		t.Errorf("Expected 1 binding, got %v", bindings)
	}
}

func TestRecordFormat(t *testing.T) {
	s := newTestStore(t)
	if err := s.Use("fixpi", "llm", "groq"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.root, "defaults", "fixpi.conf"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Default profiles for fixpi\n") {
		t.Errorf("Record missing header comment:\n%s", content)
	}
	if !strings.Contains(content, "llm=groq\n") {
		t.Errorf("Record missing binding line:\n%s", content)
	}
}

func TestShowMissingAppIsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Show("ghost")
	if !errors.Is(err, korerrors.ErrAppNotFound) {
		t.Errorf("Show of missing app = %v, want app-not-found", err)
	}
	var nfe *korerrors.NotFoundError
	if !errors.As(err, &nfe) || nfe.App != "ghost" {
		t.Errorf("NotFoundError payload = %+v, want App=ghost", nfe)
	}
}

func TestSelectionsMissingAppIsEmpty(t *testing.T) {
	s := newTestStore(t)

	selections, err := s.Selections("ghost")
	if err != nil {
		t.Fatalf("Selections of missing app should not error, got %v", err)
	}
	if len(selections) != 0 {
		t.Errorf("Expected no selections, got %v", selections)
	}
}

func TestSelectionsAlphabeticalOrder(t *testing.T) {
	s := newTestStore(t)
	for _, b := range [][2]string{{"llm", "groq"}, {"aws", "prod"}, {"devices", "rpi3"}} {
		if err := s.Use("fixpi", b[0], b[1]); err != nil {
			t.Fatalf("Use failed: %v", err)
		}
	}

	selections, err := s.Selections("fixpi")
	if err != nil {
		t.Fatalf("Selections failed: %v", err)
	}
	want := []profiles.Selection{
		{Category: "aws", Profile: "prod"},
		{Category: "devices", Profile: "rpi3"},
		{Category: "llm", Profile: "groq"},
	}
	if !reflect.DeepEqual(selections, want) {
		t.Errorf("Selections = %v, want %v", selections, want)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	if err := s.Use("fixpi", "llm", "groq"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}
	if err := s.Use("fixpi", "devices", "rpi3"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}

	if err := s.Remove("fixpi", "llm"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	bindings, err := s.Show("fixpi")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if !reflect.DeepEqual(bindings, map[string]string{"devices": "rpi3"}) {
		t.Errorf("Bindings after remove = %v", bindings)
	}

	// Removing an unbound category is a no-op.
	if err := s.Remove("fixpi", "llm"); err != nil {
		t.Errorf("Second remove should be a no-op, got %v", err)
	}

	// Removing from an app with no record is not-found.
	err = s.Remove("ghost", "llm")
	if !errors.Is(err, korerrors.ErrAppNotFound) {
		t.Errorf("Remove on missing app = %v, want app-not-found", err)
	}
}

func TestAppsSorted(t *testing.T) {
	s := newTestStore(t)

	apps, err := s.Apps()
	if err != nil {
		t.Fatalf("Apps failed: %v", err)
	}
	if len(apps) != 0 {
		t.Errorf("Expected no apps yet, got %v", apps)
	}

	for _, app := range []string{"prellm", "fixpi", "marksync"} {
		if err := s.Use(app, "llm", "ollama"); err != nil {
			t.Fatalf("Use failed: %v", err)
		}
	}

	apps, err = s.Apps()
	if err != nil {
		t.Fatalf("Apps failed: %v", err)
	}
	if !reflect.DeepEqual(apps, []string{"fixpi", "marksync", "prellm"}) {
		t.Errorf("Apps = %v, want sorted", apps)
	}
}

func TestInvalidAppName(t *testing.T) {
	s := newTestStore(t)
	for _, app := range []string{"", ".hidden", "a/b"} {
		if err := s.Use(app, "llm", "groq"); err == nil {
			t.Errorf("Use(%q) should fail", app)
		}
	}
}

func TestCategoryNamesRoundTripThroughRecord(t *testing.T) {
	s := newTestStore(t)

	// Category names the repository accepts but that are not valid
	// variable names must survive a write/reload cycle.
	for _, b := range [][2]string{{"api-keys", "prod"}, {"v2.llm", "groq"}} {
		if err := s.Use("fixpi", b[0], b[1]); err != nil {
			t.Fatalf("Use(%q) failed: %v", b[0], err)
		}
	}

	bindings, err := s.Show("fixpi")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	want := map[string]string{"api-keys": "prod", "v2.llm": "groq"}
	if !reflect.DeepEqual(bindings, want) {
		t.Errorf("Show = %v, want %v", bindings, want)
	}

	selections, err := s.Selections("fixpi")
	if err != nil {
		t.Fatalf("Selections failed: %v", err)
	}
	wantSel := []profiles.Selection{
		{Category: "api-keys", Profile: "prod"},
		{Category: "v2.llm", Profile: "groq"},
	}
	if !reflect.DeepEqual(selections, wantSel) {
		t.Errorf("Selections = %v, want %v", selections, wantSel)
	}

	if err := s.Remove("fixpi", "api-keys"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	bindings, err = s.Show("fixpi")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if !reflect.DeepEqual(bindings, map[string]string{"v2.llm": "groq"}) {
		t.Errorf("Bindings after remove = %v", bindings)
	}
}

func TestUseRejectsUnrepresentableCategory(t *testing.T) {
	s := newTestStore(t)

	// Names the record format cannot carry are refused up front
	// instead of being written and lost on reload.
	for _, category := range []string{"", "a b", "a=b", "a#b", "defaults"} {
		if err := s.Use("fixpi", category, "prod"); err == nil {
			t.Errorf("Use with category %q should fail", category)
		}
	}
}
