package diff

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// NormalizeKey derives the comparison key for a name-identified item.
// Matching is case-insensitive and whitespace-insensitive at the edges;
// the original casing travels with the item and is what reports show.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DuplicateKeyError reports two items sharing one normalized identity
// within a single schema. This violates the input invariants, so the
// comparison fails fast instead of silently overwriting one entry.
type DuplicateKeyError struct {
	Kind  string // "entity", "property", "input", "output"
	Scope string // owning entity name, empty at schema level
	Key   string // the colliding normalized key
}

func (e *DuplicateKeyError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("duplicate %s key %q in entity %q", e.Kind, e.Key, e.Scope)
	}
	return fmt.Sprintf("duplicate %s key %q", e.Kind, e.Key)
}

// indexByKey builds a normalized-key index over a slice. Returns a
// DuplicateKeyError on the first collision.
func indexByKey[T any](items []T, keyOf func(T) string, kind, scope string) (map[string]T, error) {
	idx := make(map[string]T, len(items))
	for _, item := range items {
		key := NormalizeKey(keyOf(item))
		if _, ok := idx[key]; ok {
			return nil, &DuplicateKeyError{Kind: kind, Scope: scope, Key: key}
		}
		idx[key] = item
	}
	return idx, nil
}

// diffKeySets computes the added, removed, and common key sets of two
// indexes. All three results are sorted: map iteration order must never
// leak into the report.
func diffKeySets[K cmp.Ordered, V any](old, new map[K]V) (added, removed, common []K) {
	added = []K{}
	removed = []K{}
	for k := range new {
		if _, ok := old[k]; ok {
			common = append(common, k)
		} else {
			added = append(added, k)
		}
	}
	for k := range old {
		if _, ok := new[k]; !ok {
			removed = append(removed, k)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	slices.Sort(common)
	return added, removed, common
}

// sortedKeys returns a map's keys in sorted order.
func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// stringChange returns a FieldChange when two strings differ, nil
// otherwise.
func stringChange(old, new string) *FieldChange[string] {
	if old == new {
		return nil
	}
	return &FieldChange[string]{Old: old, New: new}
}

// boolChange returns a FieldChange when two bools differ, nil otherwise.
func boolChange(old, new bool) *FieldChange[bool] {
	if old == new {
		return nil
	}
	return &FieldChange[bool]{Old: old, New: new}
}
