package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProfileSetAndGet(t *testing.T) {
	home := t.TempDir()

	output, err := runKoru(t, home, "profile", "set", "llm", "groq", "LLM_MODEL=groq/llama-3", "GROQ_API_KEY=gsk_test123")
	if err != nil {
		t.Fatalf("profile set failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "llm/groq") {
		t.Errorf("set output missing profile name:\n%s", output)
	}

	output, err = runKoru(t, home, "profile", "get", "llm", "groq", "LLM_MODEL")
	if err != nil {
		t.Fatalf("profile get failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "groq/llama-3") {
		t.Errorf("get output missing value:\n%s", output)
	}
}

func TestProfileGetDistinguishesMissing(t *testing.T) {
	home := t.TempDir()

	output, _ := runKoru(t, home, "profile", "get", "nope", "x", "K")
	if !strings.Contains(output, "Category") {
		t.Errorf("Missing category not reported as such:\n%s", output)
	}

	if _, err := runKoru(t, home, "profile", "set", "llm", "groq", "A=1"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	output, _ = runKoru(t, home, "profile", "get", "llm", "nope", "K")
	if !strings.Contains(output, "Profile") {
		t.Errorf("Missing profile not reported as such:\n%s", output)
	}

	output, _ = runKoru(t, home, "profile", "get", "llm", "groq", "NOPE")
	if !strings.Contains(output, "Key") {
		t.Errorf("Missing key not reported as such:\n%s", output)
	}
}

func TestProfileListMasksSecrets(t *testing.T) {
	home := t.TempDir()

	if _, err := runKoru(t, home, "profile", "set", "llm", "groq", "GROQ_API_KEY=gsk_supersecret", "LLM_MODEL=groq/llama-3"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	output, err := runKoru(t, home, "profile", "list", "llm", "groq")
	if err != nil {
		t.Fatalf("profile list failed: %v\n%s", err, output)
	}
	if strings.Contains(output, "gsk_supersecret") {
		t.Errorf("Sensitive value shown unmasked:\n%s", output)
	}
	if !strings.Contains(output, "gsk_***") {
		t.Errorf("Sensitive value not masked as expected:\n%s", output)
	}
	if !strings.Contains(output, "groq/llama-3") {
		t.Errorf("Non-sensitive value should be shown in full:\n%s", output)
	}

	output, err = runKoru(t, home, "profile", "list", "llm", "groq", "--show-secrets")
	if err != nil {
		t.Fatalf("profile list --show-secrets failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "gsk_supersecret") {
		t.Errorf("--show-secrets did not reveal value:\n%s", output)
	}
}

func TestCategoryValidationRefusesWrite(t *testing.T) {
	home := t.TempDir()

	if _, err := runKoru(t, home, "category", "add", "llm", "--require", "LLM_MODEL", "--require", "GROQ_API_KEY"); err != nil {
		t.Fatalf("category add failed: %v", err)
	}

	output, err := runKoru(t, home, "profile", "set", "llm", "broken", "LLM_MODEL=x", "--validate")
	if err != nil {
		t.Fatalf("profile set returned unexpected error: %v", err)
	}
	if !strings.Contains(output, "GROQ_API_KEY") {
		t.Errorf("Validation failure should name the missing key:\n%s", output)
	}
	if _, statErr := os.Stat(filepath.Join(home, "llm", "broken.env")); !os.IsNotExist(statErr) {
		t.Error("Refused write still created the profile file")
	}

	// The declaration persists across invocations.
	output, _ = runKoru(t, home, "category", "list")
	if !strings.Contains(output, "LLM_MODEL") {
		t.Errorf("category list should show required keys:\n%s", output)
	}
}

func TestMergeLaterSelectionWins(t *testing.T) {
	home := t.TempDir()

	if _, err := runKoru(t, home, "profile", "set", "llm", "groq", "LLM_MODEL=groq/llama-3", "SHARED=from-groq"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if _, err := runKoru(t, home, "profile", "set", "llm", "openai", "LLM_MODEL=gpt-4", "SHARED=from-openai"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	output, err := runKoru(t, home, "merge", "--with", "llm=groq", "--with", "llm=openai", "--format", "docker")
	if err != nil {
		t.Fatalf("merge failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "SHARED=from-openai") {
		t.Errorf("Later selection should win:\n%s", output)
	}
}

func TestMergeMissingProfileIsAtomic(t *testing.T) {
	home := t.TempDir()

	if _, err := runKoru(t, home, "profile", "set", "llm", "groq", "A=1"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	output, err := runKoru(t, home, "merge", "--with", "llm=groq", "--with", "llm=missing", "--format", "docker")
	if err != nil {
		t.Fatalf("merge returned unexpected error: %v", err)
	}
	if strings.Contains(output, "A=1") {
		t.Errorf("Failed merge must not produce partial output:\n%s", output)
	}
	if !strings.Contains(output, "llm/missing") {
		t.Errorf("Failure should name the missing selection:\n%s", output)
	}
}

func TestAppDefaultsDriveMerge(t *testing.T) {
	home := t.TempDir()

	if _, err := runKoru(t, home, "profile", "set", "llm", "groq", "LLM_MODEL=groq/llama-3"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if _, err := runKoru(t, home, "profile", "set", "rpi", "home", "RPI_HOST=192.168.1.10"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if _, err := runKoru(t, home, "app", "use", "fixpi", "llm", "groq"); err != nil {
		t.Fatalf("app use failed: %v", err)
	}
	if _, err := runKoru(t, home, "app", "use", "fixpi", "rpi", "home"); err != nil {
		t.Fatalf("app use failed: %v", err)
	}

	output, err := runKoru(t, home, "app", "show", "fixpi")
	if err != nil {
		t.Fatalf("app show failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "groq") || !strings.Contains(output, "home") {
		t.Errorf("app show missing bindings:\n%s", output)
	}

	output, err = runKoru(t, home, "merge", "--app", "fixpi", "--format", "docker")
	if err != nil {
		t.Fatalf("merge --app failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "LLM_MODEL=groq/llama-3") || !strings.Contains(output, "RPI_HOST=192.168.1.10") {
		t.Errorf("merge --app missing app defaults:\n%s", output)
	}

	// Explicit selections override the app's defaults.
	if _, err := runKoru(t, home, "profile", "set", "llm", "openai", "LLM_MODEL=gpt-4"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	output, err = runKoru(t, home, "merge", "--app", "fixpi", "--with", "llm=openai", "--format", "docker")
	if err != nil {
		t.Fatalf("merge failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "LLM_MODEL=gpt-4") {
		t.Errorf("--with should override app defaults:\n%s", output)
	}
}

func TestExportShellFormat(t *testing.T) {
	home := t.TempDir()

	if _, err := runKoru(t, home, "profile", "set", "rpi", "home", "RPI_HOST=192.168.1.10"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	output, err := runKoru(t, home, "export", "rpi", "home", "--format", "shell")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "export RPI_HOST='192.168.1.10'") {
		t.Errorf("Shell export malformed:\n%s", output)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	home := t.TempDir()

	if _, err := runKoru(t, home, "profile", "set", "llm", "groq", "GROQ_API_KEY=gsk_plain", "LLM_MODEL=groq/llama-3"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	output, err := runKoru(t, home, "encrypt", "llm", "groq")
	if err != nil {
		t.Fatalf("encrypt failed: %v\n%s", err, output)
	}

	raw, err := os.ReadFile(filepath.Join(home, "llm", "groq.env"))
	if err != nil {
		t.Fatalf("Failed to read profile file: %v", err)
	}
	if strings.Contains(string(raw), "gsk_plain") {
		t.Errorf("Plaintext still on disk after encrypt:\n%s", raw)
	}
	if !strings.Contains(string(raw), "ENC:") {
		t.Errorf("No sealed token on disk after encrypt:\n%s", raw)
	}
	// Non-sensitive values stay untouched.
	if !strings.Contains(string(raw), "groq/llama-3") {
		t.Errorf("Non-sensitive value should not be sealed:\n%s", raw)
	}

	output, err = runKoru(t, home, "decrypt", "llm", "groq")
	if err != nil {
		t.Fatalf("decrypt failed: %v\n%s", err, output)
	}

	output, err = runKoru(t, home, "profile", "get", "llm", "groq", "GROQ_API_KEY")
	if err != nil {
		t.Fatalf("profile get failed: %v", err)
	}
	if !strings.Contains(output, "gsk_plain") {
		t.Errorf("Round trip lost the value:\n%s", output)
	}
}

func TestAuditLogRecordsOperations(t *testing.T) {
	home := t.TempDir()

	if _, err := runKoru(t, home, "profile", "set", "llm", "groq", "A=1"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if _, err := runKoru(t, home, "profile", "delete", "llm", "groq"); err != nil {
		t.Fatalf("profile delete failed: %v", err)
	}

	output, err := runKoru(t, home, "log")
	if err != nil {
		t.Fatalf("log failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "set") || !strings.Contains(output, "delete-profile") {
		t.Errorf("log missing operations:\n%s", output)
	}
	if !strings.Contains(output, "llm/groq") {
		t.Errorf("log missing target:\n%s", output)
	}

	output, err = runKoru(t, home, "log", "--operation", "set")
	if err != nil {
		t.Fatalf("log --operation failed: %v\n%s", err, output)
	}
	if strings.Contains(output, "delete-profile") {
		t.Errorf("Operation filter not applied:\n%s", output)
	}
}

func TestProfileUnsetPreservesComments(t *testing.T) {
	home := t.TempDir()

	// Write a profile with a comment by hand, then drive it through the CLI.
	if err := os.MkdirAll(filepath.Join(home, "rpi"), 0700); err != nil {
		t.Fatal(err)
	}
	content := "# home lab box\nRPI_HOST=192.168.1.10\nRPI_USER=pi\n"
	if err := os.WriteFile(filepath.Join(home, "rpi", "home.env"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := runKoru(t, home, "profile", "unset", "rpi", "home", "RPI_USER"); err != nil {
		t.Fatalf("profile unset failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(home, "rpi", "home.env"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "# home lab box\nRPI_HOST=192.168.1.10\n" {
		t.Errorf("Unset disturbed surrounding lines:\n%s", raw)
	}
}
