package diff

import (
	"slices"
	"strings"

	"github.com/hammerkit/fgdiff/internal/fgd"
)

// compareEntities compares one matched entity pair across class type,
// description, header clauses, properties, spawnflags, and io signals.
//
// Returns (nil, warnings, nil) when the pair is identical: an unchanged
// entity contributes nothing to the parent report. A duplicate identity
// inside either entity aborts with an error.
func compareEntities(old, new *fgd.Entity) (*EntityDiff, []Warning, error) {
	d := &EntityDiff{
		ClassType:   stringChange(old.ClassType, new.ClassType),
		Description: stringChange(old.Description, new.Description),
		Definitions: compareDefinitions(old, new),
	}

	var err error
	if d.Properties, err = compareProperties(new.Name, old.Properties, new.Properties); err != nil {
		return nil, nil, err
	}
	if d.Inputs, err = compareIOSet(new.Name, "input", old.Inputs, new.Inputs); err != nil {
		return nil, nil, err
	}
	if d.Outputs, err = compareIOSet(new.Name, "output", old.Outputs, new.Outputs); err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	d.Spawnflags, warnings = compareSpawnflags(new.Name, old.Spawnflags, new.Spawnflags)

	if d.empty() {
		return nil, warnings, nil
	}

	d.Summary = summarize(d)
	d.ComplexityScore = ScoreSummary(d.Summary)
	d.PortingComplexity = BucketScore(d.ComplexityScore)
	return d, warnings, nil
}

// compareDefinitions diffs the header clauses. Base references are an
// order-insensitive set (matched case-insensitively, reported with the
// respective side's casing); all remaining clauses are an
// order-insensitive multiset, reported whole on any inequality.
func compareDefinitions(old, new *fgd.Entity) *DefinitionsDiff {
	oldBases := baseSet(old)
	newBases := baseSet(new)
	added, removed, _ := diffKeySets(oldBases, newBases)

	d := &DefinitionsDiff{}
	for _, key := range added {
		d.BasesAdded = append(d.BasesAdded, newBases[key])
	}
	for _, key := range removed {
		d.BasesRemoved = append(d.BasesRemoved, oldBases[key])
	}

	oldClauses := nonBaseClauses(old)
	newClauses := nonBaseClauses(new)
	if !slices.Equal(sortedClauseKeys(oldClauses), sortedClauseKeys(newClauses)) {
		d.ClausesChanged = true
		d.OldClauses = oldClauses
		d.NewClauses = newClauses
	}

	if len(d.BasesAdded) == 0 && len(d.BasesRemoved) == 0 && !d.ClausesChanged {
		return nil
	}
	return d
}

func baseSet(e *fgd.Entity) map[string]string {
	set := map[string]string{}
	for _, base := range e.Bases() {
		set[NormalizeKey(base)] = base
	}
	return set
}

func nonBaseClauses(e *fgd.Entity) []fgd.Definition {
	var clauses []fgd.Definition
	for _, def := range e.Definitions {
		if !strings.EqualFold(def.Name, "base") {
			clauses = append(clauses, def)
		}
	}
	return clauses
}

// sortedClauseKeys renders each clause to a canonical string form and
// sorts, giving multiset equality without clause-by-clause pairing.
func sortedClauseKeys(clauses []fgd.Definition) []string {
	keys := make([]string, len(clauses))
	for i, c := range clauses {
		keys[i] = NormalizeKey(c.Name) + "(" + strings.Join(c.Args, ",") + ")"
	}
	slices.Sort(keys)
	return keys
}
