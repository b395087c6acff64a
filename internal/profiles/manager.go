package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PolarWolf314/koru/internal/configs"
	"github.com/PolarWolf314/koru/internal/envfile"
	korerrors "github.com/PolarWolf314/koru/internal/errors"
)

const (
	profileExt         = ".env"
	categoriesFileName = "categories.toml"

	// defaultsDirName is reserved for per-app bindings and is never a
	// category.
	defaultsDirName = "defaults"
)

// categoryDecl is one category declaration in categories.toml.
type categoryDecl struct {
	RequiredKeys []string `toml:"required_keys"`
}

// categoriesFile is the on-disk shape of categories.toml.
type categoriesFile struct {
	Categories map[string]categoryDecl `toml:"categories"`
}

// Manager is a directory-tree-backed repository of profiles. Each
// category is a directory under the root and each profile is one .env
// file inside it. The root is always explicit; no ambient state.
type Manager struct {
	root       string
	categories map[string][]string // declared required keys by category
}

// NewManager opens (or prepares) a repository rooted at root.
// Category declarations are loaded from categories.toml when present.
func NewManager(root string) (*Manager, error) {
	root, err := configs.ExpandHome(root)
	if err != nil {
		return nil, err
	}

	m := &Manager{root: root, categories: make(map[string][]string)}

	declPath := filepath.Join(root, categoriesFileName)
	if _, err := os.Stat(declPath); err == nil {
		var decls categoriesFile
		if err := configs.LoadTOML(declPath, &decls); err != nil {
			return nil, &korerrors.StorageError{Op: "read", Path: declPath, Err: err}
		}
		for name, decl := range decls.Categories {
			m.categories[name] = decl.RequiredKeys
		}
	}

	return m, nil
}

// Root returns the repository root directory.
func (m *Manager) Root() string { return m.root }

func (m *Manager) categoryDir(category string) string {
	return filepath.Join(m.root, category)
}

func (m *Manager) profilePath(category, profile string) string {
	return filepath.Join(m.root, category, profile+profileExt)
}

// ValidCategoryName reports whether a name can serve as a category:
// usable as a directory name and representable as a key in an app
// defaults record.
func ValidCategoryName(name string) bool {
	return validName(name)
}

func validName(name string) bool {
	if name == "" || name == defaultsDirName || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, "/\\ \t='\"#")
}

// AddCategory declares a category, creating its directory. Redeclaring
// with different required keys overwrites the earlier declaration.
// Declarations persist in categories.toml so required-key policy holds
// across invocations.
func (m *Manager) AddCategory(name string, requiredKeys []string) error {
	if !validName(name) {
		return fmt.Errorf("invalid category name: %q", name)
	}

	if err := os.MkdirAll(m.categoryDir(name), 0700); err != nil {
		return &korerrors.StorageError{Op: "write", Path: m.categoryDir(name), Err: err}
	}

	m.categories[name] = requiredKeys
	return m.saveCategories()
}

func (m *Manager) saveCategories() error {
	decls := categoriesFile{Categories: make(map[string]categoryDecl, len(m.categories))}
	for name, keys := range m.categories {
		decls.Categories[name] = categoryDecl{RequiredKeys: keys}
	}
	declPath := filepath.Join(m.root, categoriesFileName)
	if err := configs.SaveTOML(declPath, decls); err != nil {
		return &korerrors.StorageError{Op: "write", Path: declPath, Err: err}
	}
	return nil
}

// RequiredKeys returns the declared required keys for a category.
func (m *Manager) RequiredKeys(category string) []string {
	return m.categories[category]
}

// Categories returns all category names, declared or present on disk,
// sorted. The defaults directory and hidden directories are skipped.
func (m *Manager) Categories() ([]string, error) {
	seen := make(map[string]bool, len(m.categories))
	for name := range m.categories {
		seen[name] = true
	}

	entries, err := os.ReadDir(m.root)
	if err != nil && !os.IsNotExist(err) {
		return nil, &korerrors.StorageError{Op: "list", Path: m.root, Err: err}
	}
	for _, e := range entries {
		if e.IsDir() && validName(e.Name()) {
			seen[e.Name()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ProfileNames returns the sorted profile names in a category.
func (m *Manager) ProfileNames(category string) ([]string, error) {
	dir := m.categoryDir(category)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, &korerrors.NotFoundError{Entity: korerrors.EntityCategory, Category: category}
	}
	if err != nil {
		return nil, &korerrors.StorageError{Op: "list", Path: dir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), profileExt) {
			names = append(names, strings.TrimSuffix(e.Name(), profileExt))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether the profile's backing file exists.
func (m *Manager) Exists(category, profile string) bool {
	_, err := os.Stat(m.profilePath(category, profile))
	return err == nil
}

// Document loads the raw document for a profile. This is the access
// path for layers that rewrite values in place, such as the sealing
// layer; the repository itself never interprets value contents.
func (m *Manager) Document(category, profile string) (*envfile.Document, error) {
	if _, err := os.Stat(m.categoryDir(category)); os.IsNotExist(err) {
		return nil, &korerrors.NotFoundError{Entity: korerrors.EntityCategory, Category: category}
	}
	path := m.profilePath(category, profile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &korerrors.NotFoundError{Entity: korerrors.EntityProfile, Category: category, Profile: profile}
	}
	return envfile.Load(path)
}

// Get returns one value. The error distinguishes a missing category, a
// missing profile, and a missing key.
func (m *Manager) Get(category, profile, key string) (string, error) {
	doc, err := m.Document(category, profile)
	if err != nil {
		return "", err
	}
	value, ok := doc.Get(key)
	if !ok {
		return "", &korerrors.NotFoundError{Entity: korerrors.EntityKey, Category: category, Profile: profile, Key: key}
	}
	return value, nil
}

// GetAll returns a profile's full mapping.
func (m *Manager) GetAll(category, profile string) (map[string]string, error) {
	doc, err := m.Document(category, profile)
	if err != nil {
		return nil, err
	}
	return doc.Map(), nil
}

// Set creates or updates a profile, applying pairs in order. With
// validate, the category's required keys are checked against the
// resulting mapping and nothing is persisted when any are missing or
// empty (all-or-nothing).
func (m *Manager) Set(category, profile string, pairs []envfile.Pair, validate bool) error {
	if !validName(category) {
		return fmt.Errorf("invalid category name: %q", category)
	}
	if profile == "" || strings.ContainsAny(profile, "/\\") {
		return fmt.Errorf("invalid profile name: %q", profile)
	}

	// Writing to an undeclared category creates its directory on save;
	// the category listing picks it up from disk.
	path := m.profilePath(category, profile)
	var doc *envfile.Document
	if _, err := os.Stat(path); err == nil {
		doc, err = envfile.Load(path)
		if err != nil {
			return err
		}
	} else {
		doc = envfile.New(path)
	}

	doc.Apply(pairs)

	if validate {
		if missing := m.Validate(category, doc.Map()); len(missing) > 0 {
			return &korerrors.ValidationError{Category: category, Profile: profile, Missing: missing}
		}
	}

	return doc.Save()
}

// Validate returns the category's required keys that are missing or
// empty in data, in declaration order.
func (m *Manager) Validate(category string, data map[string]string) []string {
	var missing []string
	for _, key := range m.categories[category] {
		if data[key] == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// DeleteProfile removes a profile's backing file. A second delete of
// the same profile fails with not-found.
func (m *Manager) DeleteProfile(category, profile string) error {
	if _, err := os.Stat(m.categoryDir(category)); os.IsNotExist(err) {
		return &korerrors.NotFoundError{Entity: korerrors.EntityCategory, Category: category}
	}
	path := m.profilePath(category, profile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &korerrors.NotFoundError{Entity: korerrors.EntityProfile, Category: category, Profile: profile}
	}
	if err := os.Remove(path); err != nil {
		return &korerrors.StorageError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// DeleteKey removes one key from a profile and re-saves it.
func (m *Manager) DeleteKey(category, profile, key string) error {
	doc, err := m.Document(category, profile)
	if err != nil {
		return err
	}
	if !doc.Has(key) {
		return &korerrors.NotFoundError{Entity: korerrors.EntityKey, Category: category, Profile: profile, Key: key}
	}
	doc.Delete(key)
	return doc.Save()
}

// Match is one hit from FindByKey.
type Match struct {
	Category string
	Profile  string
	Key      string
	Value    string
}

// FindByKey scans profiles for entries the predicate accepts. pattern
// is a doublestar glob matched against "category/profile"; empty means
// all profiles. Results come back in category, profile, then entry
// order.
func (m *Manager) FindByKey(pattern string, pred func(key, value string) bool) ([]Match, error) {
	categories, err := m.Categories()
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, category := range categories {
		names, err := m.ProfileNames(category)
		if err != nil {
			// Declared but never written to; nothing to scan.
			if _, ok := err.(*korerrors.NotFoundError); ok {
				continue
			}
			return nil, err
		}
		for _, name := range names {
			if pattern != "" {
				ok, err := doublestar.Match(pattern, category+"/"+name)
				if err != nil {
					return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
				}
				if !ok {
					continue
				}
			}
			doc, err := m.Document(category, name)
			if err != nil {
				return nil, err
			}
			for _, p := range doc.Pairs() {
				if pred(p.Key, p.Value) {
					matches = append(matches, Match{Category: category, Profile: name, Key: p.Key, Value: p.Value})
				}
			}
		}
	}
	return matches, nil
}

// DiffResult is the structural difference between two profiles.
type DiffResult struct {
	Added   map[string]string    // keys only in B
	Removed map[string]string    // keys only in A
	Changed map[string][2]string // common keys with differing values: {old, new}
}

// Empty reports whether the two profiles had identical mappings.
func (r *DiffResult) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Diff compares profiles a and b within one category.
func (m *Manager) Diff(category, a, b string) (*DiffResult, error) {
	mapA, err := m.GetAll(category, a)
	if err != nil {
		return nil, err
	}
	mapB, err := m.GetAll(category, b)
	if err != nil {
		return nil, err
	}

	result := &DiffResult{
		Added:   make(map[string]string),
		Removed: make(map[string]string),
		Changed: make(map[string][2]string),
	}
	for k, vb := range mapB {
		va, ok := mapA[k]
		switch {
		case !ok:
			result.Added[k] = vb
		case va != vb:
			result.Changed[k] = [2]string{va, vb}
		}
	}
	for k, va := range mapA {
		if _, ok := mapB[k]; !ok {
			result.Removed[k] = va
		}
	}
	return result, nil
}

// Copy writes the source profile's mapping as a fresh destination
// document in source key order. Comments are not carried over; the
// destination is overwritten if it exists.
func (m *Manager) Copy(srcCategory, srcProfile, dstCategory, dstProfile string) error {
	srcDoc, err := m.Document(srcCategory, srcProfile)
	if err != nil {
		return err
	}
	if !validName(dstCategory) {
		return fmt.Errorf("invalid category name: %q", dstCategory)
	}
	if err := os.MkdirAll(m.categoryDir(dstCategory), 0700); err != nil {
		return &korerrors.StorageError{Op: "write", Path: m.categoryDir(dstCategory), Err: err}
	}

	dst := envfile.New(m.profilePath(dstCategory, dstProfile))
	dst.Apply(srcDoc.Pairs())
	return dst.Save()
}
