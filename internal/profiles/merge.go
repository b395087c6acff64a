package profiles

import (
	"sort"

	korerrors "github.com/PolarWolf314/koru/internal/errors"
)

// Selection names one profile to overlay during a merge.
type Selection struct {
	Category string
	Profile  string
}

// SelectionsFromMap converts a category→profile map into selections in
// alphabetical category order. This is the canonical deterministic
// order whenever the caller starts from an unordered source, and the
// order app-default bindings merge in.
func SelectionsFromMap(byCategory map[string]string) []Selection {
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	selections := make([]Selection, 0, len(byCategory))
	for _, category := range categories {
		selections = append(selections, Selection{Category: category, Profile: byCategory[category]})
	}
	return selections
}

// Merge overlays the selected profiles onto a copy of base, in the
// given order: each profile overwrites earlier profiles and base.
// Every selection is verified before anything is overlaid, so a
// missing profile yields a MergeError and no partial result. Neither
// base nor any stored profile is mutated.
func (m *Manager) Merge(base map[string]string, selections []Selection) (map[string]string, error) {
	overlays := make([]map[string]string, 0, len(selections))
	for _, sel := range selections {
		mapping, err := m.GetAll(sel.Category, sel.Profile)
		if err != nil {
			return nil, &korerrors.MergeError{Category: sel.Category, Profile: sel.Profile, Err: err}
		}
		overlays = append(overlays, mapping)
	}

	result := make(map[string]string, len(base))
	for k, v := range base {
		result[k] = v
	}
	for _, overlay := range overlays {
		for k, v := range overlay {
			result[k] = v
		}
	}
	return result, nil
}
