package envfile

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	korerrors "github.com/PolarWolf314/koru/internal/errors"
)

// keyPattern is the shape of a valid variable name. Lines whose left
// side does not match are preserved verbatim instead of being parsed.
var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// recordKeyPattern is the looser key shape for record documents, whose
// keys are names like categories rather than variable names. Anything
// without whitespace, quoting, '#', or '=' qualifies, so names such as
// api-keys round-trip through a record.
var recordKeyPattern = regexp.MustCompile(`^[^\s#'"=]+$`)

// Pair is one key/value assignment. Slices of Pair are the ordered
// form of a mapping used everywhere insertion order matters.
type Pair struct {
	Key   string
	Value string
}

// entry is one line of a document: either a key/value assignment or a
// pass-through line (comment, blank, or anything the parser could not
// interpret). Pass-through entries have an empty key.
type entry struct {
	key     string
	value   string
	comment string // trailing comment including the leading '#'
	raw     string // original source line, reused while unmodified
	dirty   bool   // value changed since parse; reformat on serialize
}

// Document is an order-preserving in-memory form of one .env file.
// A key index over the entry arena keeps Get and Set O(1).
type Document struct {
	path    string
	entries []entry
	index   map[string]int
}

// New returns an empty document that will save to path.
func New(path string) *Document {
	return &Document{path: path, index: make(map[string]int)}
}

// Parse builds a document from text. It never fails: lines that do not
// parse as KEY=VALUE are carried through verbatim. A duplicate key
// overwrites the first occurrence in place and the duplicate line is
// dropped, keeping keys unique within the document.
func Parse(text string) *Document {
	return parseWith(text, keyPattern)
}

// ParseRecord parses a record document. Records carry the same line
// format as profiles but allow any reasonable name on the left side,
// not just valid variable names.
func ParseRecord(text string) *Document {
	return parseWith(text, recordKeyPattern)
}

func parseWith(text string, pattern *regexp.Regexp) *Document {
	d := New("")
	if text == "" {
		return d
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for _, line := range lines {
		key, value, comment, ok := parseLine(line, pattern)
		if !ok {
			d.entries = append(d.entries, entry{raw: line})
			continue
		}
		if i, exists := d.index[key]; exists {
			d.entries[i].value = value
			d.entries[i].dirty = true
			continue
		}
		d.index[key] = len(d.entries)
		d.entries = append(d.entries, entry{key: key, value: value, comment: comment, raw: line})
	}
	return d
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	return load(path, keyPattern)
}

// LoadRecord reads and parses the record document at path.
func LoadRecord(path string) (*Document, error) {
	return load(path, recordKeyPattern)
}

func load(path string, pattern *regexp.Regexp) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &korerrors.StorageError{Op: "read", Path: path, Err: err}
	}
	d := parseWith(string(data), pattern)
	d.path = path
	return d, nil
}

// parseLine splits one line into key, de-quoted value, and trailing
// comment. ok is false for blank lines, full-line comments, lines
// without '=', and invalid keys.
func parseLine(line string, pattern *regexp.Regexp) (key, value, comment string, ok bool) {
	stripped := strings.TrimSpace(line)
	if stripped == "" || strings.HasPrefix(stripped, "#") {
		return "", "", "", false
	}
	eq := strings.Index(stripped, "=")
	if eq < 0 {
		return "", "", "", false
	}
	key = strings.TrimSpace(stripped[:eq])
	if !pattern.MatchString(key) {
		return "", "", "", false
	}
	value, comment = parseValue(strings.TrimSpace(stripped[eq+1:]))
	return key, value, comment, true
}

// parseValue de-quotes a raw value and splits off a trailing comment.
// Inside quotes '#' is literal; unquoted, a '#' preceded by whitespace
// starts the comment.
func parseValue(raw string) (value, comment string) {
	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"') {
		if end := strings.IndexByte(raw[1:], raw[0]); end >= 0 {
			value = raw[1 : 1+end]
			rest := strings.TrimSpace(raw[2+end:])
			if strings.HasPrefix(rest, "#") {
				comment = rest
			}
			return value, comment
		}
	}
	for i := 1; i < len(raw); i++ {
		if raw[i] == '#' && (raw[i-1] == ' ' || raw[i-1] == '\t') {
			return strings.TrimSpace(raw[:i]), raw[i:]
		}
	}
	if strings.HasPrefix(raw, "# ") {
		// "KEY= # note" strips to a bare comment with no value.
		return "", raw
	}
	return raw, ""
}

// Path returns the file this document loads from and saves to.
func (d *Document) Path() string { return d.path }

// Get returns the value for key.
func (d *Document) Get(key string) (string, bool) {
	i, ok := d.index[key]
	if !ok {
		return "", false
	}
	return d.entries[i].value, true
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Set updates key in place if present, else appends a new entry at the
// end. Existing entries keep their position and trailing comment.
func (d *Document) Set(key, value string) *Document {
	if i, ok := d.index[key]; ok {
		if d.entries[i].value != value {
			d.entries[i].value = value
			d.entries[i].dirty = true
		}
		return d
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, entry{key: key, value: value, dirty: true})
	return d
}

// Apply sets every pair in order.
func (d *Document) Apply(pairs []Pair) *Document {
	for _, p := range pairs {
		d.Set(p.Key, p.Value)
	}
	return d
}

// Delete removes the entry for key. Pass-through lines are untouched.
func (d *Document) Delete(key string) *Document {
	i, ok := d.index[key]
	if !ok {
		return d
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, key)
	for k, j := range d.index {
		if j > i {
			d.index[k] = j - 1
		}
	}
	return d
}

// AppendComment appends a full-line comment. The leading "# " is added
// unless text already starts with '#'.
func (d *Document) AppendComment(text string) *Document {
	if !strings.HasPrefix(text, "#") {
		text = "# " + text
	}
	d.entries = append(d.entries, entry{raw: text})
	return d
}

// Len returns the number of key/value entries.
func (d *Document) Len() int { return len(d.index) }

// Keys returns key names in entry order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.index))
	for _, e := range d.entries {
		if e.key != "" {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Pairs returns the key/value entries in entry order, dropping
// comments and blank lines.
func (d *Document) Pairs() []Pair {
	pairs := make([]Pair, 0, len(d.index))
	for _, e := range d.entries {
		if e.key != "" {
			pairs = append(pairs, Pair{Key: e.key, Value: e.value})
		}
	}
	return pairs
}

// Map returns the entries as a plain map.
func (d *Document) Map() map[string]string {
	m := make(map[string]string, len(d.index))
	for _, e := range d.entries {
		if e.key != "" {
			m[e.key] = e.value
		}
	}
	return m
}

// SortedPairs converts a map to pairs in alphabetical key order, the
// canonical deterministic order when the caller starts from a map.
func SortedPairs(m map[string]string) []Pair {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]Pair, 0, len(m))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: m[k]})
	}
	return pairs
}

// String serializes the document. Unmodified lines are emitted exactly
// as parsed; modified and new entries are formatted with the quoting
// rule in formatValue. Output ends with a newline unless empty.
func (d *Document) String() string {
	if len(d.entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range d.entries {
		if e.key == "" || (!e.dirty && e.raw != "") {
			b.WriteString(e.raw)
		} else {
			b.WriteString(e.key)
			b.WriteString("=")
			b.WriteString(formatValue(e.value))
			if e.comment != "" {
				b.WriteString(" ")
				b.WriteString(e.comment)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatValue quotes a value for serialization: single quotes when it
// contains whitespace, '#', '$', or is empty; double quotes when it
// also contains a single quote; bare otherwise.
func formatValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t#$") {
		if strings.Contains(v, "'") {
			return `"` + v + `"`
		}
		return "'" + v + "'"
	}
	if strings.Contains(v, "'") {
		return `"` + v + `"`
	}
	return v
}

// Save writes the document to its path. The write goes through a temp
// file in the same directory followed by a rename, so a concurrent
// reader sees either the old or the new content, never a torn file.
func (d *Document) Save() error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &korerrors.StorageError{Op: "write", Path: d.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".koru-*")
	if err != nil {
		return &korerrors.StorageError{Op: "write", Path: d.path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(d.String()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &korerrors.StorageError{Op: "write", Path: d.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &korerrors.StorageError{Op: "write", Path: d.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &korerrors.StorageError{Op: "write", Path: d.path, Err: err}
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return &korerrors.StorageError{Op: "write", Path: d.path, Err: err}
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return &korerrors.StorageError{Op: "write", Path: d.path, Err: err}
	}
	return nil
}
