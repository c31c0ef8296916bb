package diff

import (
	"cmp"
	"slices"
	"time"

	"github.com/hammerkit/fgdiff/internal/fgd"
)

// Porting issue messages.
const (
	issueNewEntity   = "entity exists only in the new schema"
	issueNewProperty = "property exists only in the new schema"
)

// Options labels a comparison and injects its clock. The zero value is
// usable: empty labels and wall-clock time.
type Options struct {
	OldLabel string
	NewLabel string

	// Now supplies the comparison timestamp. Defaults to time.Now.
	// Under a fixed clock Compare is fully deterministic.
	Now func() time.Time
}

// Compare diffs two parsed schemas and assembles the report. Neither
// input is mutated. The only failure mode is a duplicate identity within
// one schema; every routine difference is a representable outcome.
func Compare(old, new *fgd.Schema, opts Options) (*Report, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	oldIdx, err := indexByKey(old.Entities, func(e *fgd.Entity) string { return e.Name }, "entity", "")
	if err != nil {
		return nil, err
	}
	newIdx, err := indexByKey(new.Entities, func(e *fgd.Entity) string { return e.Name }, "entity", "")
	if err != nil {
		return nil, err
	}

	added, removed, common := diffKeySets(oldIdx, newIdx)

	report := &Report{
		Metadata: Metadata{
			OldLabel:       opts.OldLabel,
			NewLabel:       opts.NewLabel,
			ComparisonDate: now().UTC().Format(time.RFC3339),
		},
		NewEntities:           []string{},
		RemovedEntities:       []string{},
		ModifiedEntities:      map[string]*EntityDiff{},
		BackwardPortingIssues: []PortingIssue{},
	}

	for _, key := range added {
		ent := newIdx[key]
		report.NewEntities = append(report.NewEntities, ent.Name)
		report.BackwardPortingIssues = append(report.BackwardPortingIssues, PortingIssue{
			Entity:   ent.Name,
			Issue:    issueNewEntity,
			Severity: SeverityHigh,
		})
	}
	for _, key := range removed {
		report.RemovedEntities = append(report.RemovedEntities, oldIdx[key].Name)
	}

	var warnings []Warning
	for _, key := range common {
		oldEnt, newEnt := oldIdx[key], newIdx[key]
		entityDiff, entityWarnings, err := compareEntities(oldEnt, newEnt)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, entityWarnings...)
		if entityDiff == nil {
			continue
		}
		report.ModifiedEntities[newEnt.Name] = entityDiff

		// The issue list is a derived view over the same diff data: one
		// Medium entry per property present only on the new side.
		if entityDiff.Properties != nil {
			for _, prop := range entityDiff.Properties.Added {
				report.BackwardPortingIssues = append(report.BackwardPortingIssues, PortingIssue{
					Entity:   newEnt.Name,
					Property: prop,
					Issue:    issueNewProperty,
					Severity: SeverityMedium,
				})
			}
		}
	}

	report.EditorDataChanges = compareEditorData(old.EditorData, new.EditorData)

	sortIssues(report.BackwardPortingIssues)
	if len(warnings) > 0 {
		sortWarnings(warnings)
		report.Warnings = warnings
	}
	return report, nil
}

// sortIssues orders the issue list deterministically: severity (High
// first), then entity, then property.
func sortIssues(issues []PortingIssue) {
	rank := func(s Severity) int {
		if s == SeverityHigh {
			return 0
		}
		return 1
	}
	slices.SortFunc(issues, func(a, b PortingIssue) int {
		if c := cmp.Compare(rank(a.Severity), rank(b.Severity)); c != 0 {
			return c
		}
		if c := cmp.Compare(NormalizeKey(a.Entity), NormalizeKey(b.Entity)); c != 0 {
			return c
		}
		return cmp.Compare(NormalizeKey(a.Property), NormalizeKey(b.Property))
	})
}

func sortWarnings(warnings []Warning) {
	slices.SortFunc(warnings, func(a, b Warning) int {
		if c := cmp.Compare(a.Code, b.Code); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Entity, b.Entity); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Side, b.Side); c != 0 {
			return c
		}
		return cmp.Compare(a.Detail, b.Detail)
	})
}
