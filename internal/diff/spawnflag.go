package diff

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/hammerkit/fgdiff/internal/fgd"
)

// flagIndex groups one side's spawnflags by parsed bit value. Flags
// whose value token is not an integer are skipped with a warning rather
// than aborting the run.
func flagIndex(side, entity string, flags []*fgd.Spawnflag) (map[int64][]*fgd.Spawnflag, []Warning) {
	idx := map[int64][]*fgd.Spawnflag{}
	var warnings []Warning
	for _, flag := range flags {
		value, err := strconv.ParseInt(flag.Value, 10, 64)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:   WarnNonIntegerFlag,
				Side:   side,
				Entity: entity,
				Detail: fmt.Sprintf("spawnflag value %q is not an integer; flag skipped", flag.Value),
			})
			continue
		}
		idx[value] = append(idx[value], flag)
	}
	return idx, warnings
}

// compareSpawnflags diffs two spawnflag sets keyed by integer bit value.
//
// A bit value carried by more than one flag on either side is ambiguous:
// the flags cannot be paired without guessing, so the bit is reported as
// a collision warning and excluded from modified-pairing. Added/removed
// reporting still lists every flag at the bit, by display name.
func compareSpawnflags(entity string, old, new []*fgd.Spawnflag) (*SpawnflagSetDiff, []Warning) {
	oldIdx, warnings := flagIndex("old", entity, old)
	newIdx, newWarns := flagIndex("new", entity, new)
	warnings = append(warnings, newWarns...)

	added, removed, common := diffKeySets(oldIdx, newIdx)

	d := &SpawnflagSetDiff{
		Added:    []FlagRef{},
		Removed:  []FlagRef{},
		Modified: map[string]*SpawnflagDiff{},
	}
	for _, value := range added {
		for _, flag := range newIdx[value] {
			d.Added = append(d.Added, FlagRef{Value: value, DisplayName: flag.DisplayName})
		}
	}
	for _, value := range removed {
		for _, flag := range oldIdx[value] {
			d.Removed = append(d.Removed, FlagRef{Value: value, DisplayName: flag.DisplayName})
		}
	}
	sortFlagRefs(d.Added)
	sortFlagRefs(d.Removed)

	for _, value := range common {
		oldFlags, newFlags := oldIdx[value], newIdx[value]
		if len(oldFlags) > 1 || len(newFlags) > 1 {
			side := "old"
			if len(newFlags) > 1 {
				side = "new"
			}
			warnings = append(warnings, Warning{
				Code:   WarnFlagCollision,
				Side:   side,
				Entity: entity,
				Detail: fmt.Sprintf("bit value %d carried by multiple spawnflags; pairing is ambiguous, bit skipped", value),
			})
			continue
		}
		if fd := compareSpawnflag(oldFlags[0], newFlags[0]); fd != nil {
			d.Modified[strconv.FormatInt(value, 10)] = fd
		}
	}

	if len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0 {
		return nil, warnings
	}
	return d, warnings
}

// compareSpawnflag compares one matched bit value's display name and
// default state.
func compareSpawnflag(old, new *fgd.Spawnflag) *SpawnflagDiff {
	d := &SpawnflagDiff{
		DisplayName: stringChange(old.DisplayName, new.DisplayName),
		Default:     boolChange(old.Default, new.Default),
	}
	if d.DisplayName == nil && d.Default == nil {
		return nil
	}
	return d
}

func sortFlagRefs(refs []FlagRef) {
	slices.SortFunc(refs, func(a, b FlagRef) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.DisplayName, b.DisplayName)
	})
}
