package export

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/PolarWolf314/koru/internal/envfile"
)

var sample = map[string]string{
	"RPI_USER": "pi",
	"RPI_HOST": "192.168.1.10",
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(sample)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var back map[string]string
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, out)
	}
	if !reflect.DeepEqual(back, sample) {
		t.Errorf("JSON round trip = %v, want %v", back, sample)
	}
	// Sorted keys give reproducible output.
	if strings.Index(out, "RPI_HOST") > strings.Index(out, "RPI_USER") {
		t.Errorf("JSON keys not sorted:\n%s", out)
	}
}

func TestToShell(t *testing.T) {
	got := ToShell(map[string]string{
		"B_TOKEN": "it's secret",
		"A_HOST":  "10.0.0.1",
	})
	want := "export A_HOST='10.0.0.1'\nexport B_TOKEN='it'\\''s secret'"
	if got != want {
		t.Errorf("ToShell =\n%q\nwant\n%q", got, want)
	}
}

func TestToDocker(t *testing.T) {
	got := ToDocker(sample)
	want := "RPI_HOST=192.168.1.10\nRPI_USER=pi"
	if got != want {
		t.Errorf("ToDocker = %q, want %q", got, want)
	}
}

func TestToEnvFile(t *testing.T) {
	pairs := []envfile.Pair{
		{Key: "LLM_MODEL", Value: "groq/x"},
		{Key: "GREETING", Value: "hello world"},
	}
	got := ToEnvFile(pairs, "llm/groq")

	if !strings.HasPrefix(got, "# llm/groq\n\n") {
		t.Errorf("Missing header:\n%s", got)
	}
	// Pair order is preserved and quoting matches the store's rule.
	if !strings.Contains(got, "LLM_MODEL=groq/x\nGREETING='hello world'\n") {
		t.Errorf("Body wrong:\n%s", got)
	}

	// The output must re-read to the same mapping.
	back := envfile.Parse(got)
	if v, _ := back.Get("GREETING"); v != "hello world" {
		t.Errorf("Re-read GREETING = %q", v)
	}

	if got := ToEnvFile(pairs, ""); strings.HasPrefix(got, "#") {
		t.Errorf("Headerless output starts with a comment:\n%s", got)
	}
}

func TestToYAML(t *testing.T) {
	out, err := ToYAML(sample)
	if err != nil {
		t.Fatalf("ToYAML failed: %v", err)
	}

	var back map[string]string
	if err := yaml.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("Output is not valid YAML: %v\n%s", err, out)
	}
	if !reflect.DeepEqual(back, sample) {
		t.Errorf("YAML round trip = %v, want %v", back, sample)
	}
}

func TestRenderDispatch(t *testing.T) {
	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			out, err := Render(Format(name), sample, "header")
			if err != nil {
				t.Fatalf("Render(%s) failed: %v", name, err)
			}
			if !strings.Contains(out, "RPI_HOST") {
				t.Errorf("Render(%s) output missing key:\n%s", name, out)
			}
		})
	}

	if _, err := Render("toml", sample, ""); err == nil {
		t.Error("Render with unknown format should fail")
	}
}
