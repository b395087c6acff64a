package appdefaults

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PolarWolf314/koru/internal/configs"
	"github.com/PolarWolf314/koru/internal/envfile"
	korerrors "github.com/PolarWolf314/koru/internal/errors"
	"github.com/PolarWolf314/koru/internal/profiles"
)

const (
	defaultsDirName = "defaults"
	recordExt       = ".conf"
)

// Store manages per-app default profile selections. Each app has one
// small record at <root>/defaults/<app>.conf holding category=profile
// lines, reusing the envfile document format.
type Store struct {
	root string
}

// NewStore opens the defaults store under the given profile root.
func NewStore(root string) (*Store, error) {
	root, err := configs.ExpandHome(root)
	if err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) dir() string {
	return filepath.Join(s.root, defaultsDirName)
}

func (s *Store) recordPath(app string) string {
	return filepath.Join(s.dir(), app+recordExt)
}

func validAppName(app string) bool {
	return app != "" && !strings.HasPrefix(app, ".") && !strings.ContainsAny(app, "/\\")
}

// Use binds a category to a profile for an app. Bindings for other
// categories are kept; only the named category is upserted.
func (s *Store) Use(app, category, profile string) error {
	if !validAppName(app) {
		return fmt.Errorf("invalid app name: %q", app)
	}
	if !profiles.ValidCategoryName(category) {
		return fmt.Errorf("invalid category name: %q", category)
	}

	path := s.recordPath(app)
	var doc *envfile.Document
	if _, err := os.Stat(path); err == nil {
		doc, err = envfile.LoadRecord(path)
		if err != nil {
			return err
		}
	} else {
		doc = envfile.New(path)
		doc.AppendComment("Default profiles for " + app)
	}

	doc.Set(category, profile)
	return doc.Save()
}

// Remove drops the binding for one category. Removing a category that
// was never bound is a no-op; a missing app record is not-found.
func (s *Store) Remove(app, category string) error {
	path := s.recordPath(app)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &korerrors.NotFoundError{Entity: korerrors.EntityApp, App: app}
	}
	doc, err := envfile.LoadRecord(path)
	if err != nil {
		return err
	}
	doc.Delete(category)
	return doc.Save()
}

// Show returns the app's bindings as a category→profile map. An absent
// app is an error here: Show exists for explicit display.
func (s *Store) Show(app string) (map[string]string, error) {
	path := s.recordPath(app)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &korerrors.NotFoundError{Entity: korerrors.EntityApp, App: app}
	}
	doc, err := envfile.LoadRecord(path)
	if err != nil {
		return nil, err
	}
	return doc.Map(), nil
}

// Selections returns the app's bindings as merge selections in
// alphabetical category order. An absent app yields an empty slice,
// not an error, so callers can merge unconditionally.
func (s *Store) Selections(app string) ([]profiles.Selection, error) {
	bindings, err := s.Show(app)
	if err != nil {
		if errors.Is(err, korerrors.ErrAppNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profiles.SelectionsFromMap(bindings), nil
}

// Apps returns the names of all apps with a defaults record, sorted.
func (s *Store) Apps() ([]string, error) {
	entries, err := os.ReadDir(s.dir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &korerrors.StorageError{Op: "list", Path: s.dir(), Err: err}
	}

	var apps []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), recordExt) {
			apps = append(apps, strings.TrimSuffix(e.Name(), recordExt))
		}
	}
	sort.Strings(apps)
	return apps, nil
}
