package diff

import "github.com/hammerkit/fgdiff/internal/fgd"

// compareIOSet diffs one direction's io signal set keyed by normalized
// name. kind names the set for duplicate-key errors ("input"/"output").
// Returns nil when the sets are identical.
func compareIOSet(scope, kind string, old, new []*fgd.IOSignal) (*IOSetDiff, error) {
	oldIdx, err := indexByKey(old, func(s *fgd.IOSignal) string { return s.Name }, kind, scope)
	if err != nil {
		return nil, err
	}
	newIdx, err := indexByKey(new, func(s *fgd.IOSignal) string { return s.Name }, kind, scope)
	if err != nil {
		return nil, err
	}

	added, removed, common := diffKeySets(oldIdx, newIdx)

	d := &IOSetDiff{
		Added:    []string{},
		Removed:  []string{},
		Modified: map[string]*IODiff{},
	}
	for _, key := range added {
		d.Added = append(d.Added, newIdx[key].Name)
	}
	for _, key := range removed {
		d.Removed = append(d.Removed, oldIdx[key].Name)
	}
	for _, key := range common {
		if sd := compareIOSignal(oldIdx[key], newIdx[key]); sd != nil {
			d.Modified[newIdx[key].Name] = sd
		}
	}

	if len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0 {
		return nil, nil
	}
	return d, nil
}

// compareIOSignal compares one matched io pair over {kind, value type,
// description}. A direction-tag mismatch on the same normalized name is
// reported explicitly as a kind change, never treated as an unrelated
// add+remove.
func compareIOSignal(old, new *fgd.IOSignal) *IODiff {
	d := &IODiff{
		Kind:        stringChange(string(old.Kind), string(new.Kind)),
		ValueType:   stringChange(old.ValueType, new.ValueType),
		Description: stringChange(old.Description, new.Description),
	}
	if d.empty() {
		return nil
	}
	return d
}
