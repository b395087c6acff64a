package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/PolarWolf314/koru/internal/envfile"
)

// Format names one of the supported output formats.
type Format string

const (
	FormatJSON   Format = "json"
	FormatShell  Format = "shell"
	FormatDocker Format = "docker"
	FormatEnv    Format = "env"
	FormatYAML   Format = "yaml"
)

// Formats lists the supported format names for CLI help and
// validation.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatShell), string(FormatDocker), string(FormatEnv), string(FormatYAML)}
}

// Render serializes data in the named format. The env format takes an
// optional header comment; the others ignore it.
func Render(format Format, data map[string]string, header string) (string, error) {
	switch format {
	case FormatJSON:
		return ToJSON(data)
	case FormatShell:
		return ToShell(data), nil
	case FormatDocker:
		return ToDocker(data), nil
	case FormatEnv:
		return ToEnvFile(envfile.SortedPairs(data), header), nil
	case FormatYAML:
		return ToYAML(data)
	}
	return "", fmt.Errorf("unknown format: %q (supported: %s)", format, strings.Join(Formats(), ", "))
}

// ToJSON renders data as indented JSON. Keys come out sorted.
func ToJSON(data map[string]string) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(out), nil
}

// ToShell renders `export KEY='value'` lines in sorted key order,
// escaping single quotes for POSIX shells.
func ToShell(data map[string]string) string {
	lines := make([]string, 0, len(data))
	for _, key := range sortedKeys(data) {
		escaped := strings.ReplaceAll(data[key], "'", `'\''`)
		lines = append(lines, fmt.Sprintf("export %s='%s'", key, escaped))
	}
	return strings.Join(lines, "\n")
}

// ToDocker renders docker-compose environment lines (KEY=value) in
// sorted key order.
func ToDocker(data map[string]string) string {
	lines := make([]string, 0, len(data))
	for _, key := range sortedKeys(data) {
		lines = append(lines, key+"="+data[key])
	}
	return strings.Join(lines, "\n")
}

// ToEnvFile renders .env file content in the given pair order, with an
// optional header comment. Values are quoted with the same rule the
// profile store uses, so the output re-reads to the same mapping.
func ToEnvFile(pairs []envfile.Pair, header string) string {
	doc := envfile.New("")
	doc.Apply(pairs)
	body := doc.String()
	if header != "" {
		return "# " + header + "\n\n" + body
	}
	return body
}

// ToYAML renders data as a YAML mapping. Keys come out sorted.
func ToYAML(data map[string]string) (string, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(out), nil
}

func sortedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
