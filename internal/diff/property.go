package diff

import (
	"cmp"
	"slices"

	"github.com/hammerkit/fgdiff/internal/fgd"
)

// compareProperties diffs two property sets keyed by normalized name.
// Returns nil when the sets are identical.
func compareProperties(scope string, old, new []*fgd.Property) (*PropertySetDiff, error) {
	oldIdx, err := indexByKey(old, func(p *fgd.Property) string { return p.Name }, "property", scope)
	if err != nil {
		return nil, err
	}
	newIdx, err := indexByKey(new, func(p *fgd.Property) string { return p.Name }, "property", scope)
	if err != nil {
		return nil, err
	}

	added, removed, common := diffKeySets(oldIdx, newIdx)

	d := &PropertySetDiff{
		Added:    []string{},
		Removed:  []string{},
		Modified: map[string]*PropertyDiff{},
	}
	for _, key := range added {
		d.Added = append(d.Added, newIdx[key].Name)
	}
	for _, key := range removed {
		d.Removed = append(d.Removed, oldIdx[key].Name)
	}
	for _, key := range common {
		if pd := compareProperty(oldIdx[key], newIdx[key]); pd != nil {
			d.Modified[newIdx[key].Name] = pd
		}
	}

	if len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0 {
		return nil, nil
	}
	return d, nil
}

// compareProperty compares the closed field set of one matched property
// pair: value type, readonly, report, display name, default value,
// description, and the choice list. Returns nil when nothing differs.
func compareProperty(old, new *fgd.Property) *PropertyDiff {
	d := &PropertyDiff{
		ValueType:    stringChange(old.ValueType, new.ValueType),
		Readonly:     boolChange(old.Readonly, new.Readonly),
		Report:       boolChange(old.Report, new.Report),
		DisplayName:  stringChange(old.DisplayName, new.DisplayName),
		DefaultValue: stringChange(old.DefaultValue, new.DefaultValue),
		Description:  stringChange(old.Description, new.Description),
		Choices:      compareChoices(old.Choices, new.Choices),
	}
	if d.empty() {
		return nil
	}
	return d
}

// compareChoices compares two choice lists as order-insensitive sets
// keyed by choice value. Any inequality reports both lists whole, sorted
// by value.
func compareChoices(old, new []fgd.Choice) *ChoicesChange {
	oldSorted := sortChoices(old)
	newSorted := sortChoices(new)
	if slices.Equal(oldSorted, newSorted) {
		return nil
	}
	return &ChoicesChange{Old: oldSorted, New: newSorted}
}

func sortChoices(choices []fgd.Choice) []fgd.Choice {
	out := make([]fgd.Choice, len(choices))
	copy(out, choices)
	slices.SortStableFunc(out, func(a, b fgd.Choice) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.DisplayName, b.DisplayName)
	})
	return out
}
