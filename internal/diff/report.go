package diff

import "github.com/hammerkit/fgdiff/internal/fgd"

// Report is the complete result of comparing two schemas. It is a plain
// value tree with no references back into the input schemas: safe to
// serialize, store, and hand to any writer.
//
// All JSON tags use snake_case. Collection fields are sorted at
// construction time so serialization is deterministic.
type Report struct {
	Metadata              Metadata               `json:"metadata"`
	NewEntities           []string               `json:"new_entities"`
	RemovedEntities       []string               `json:"removed_entities"`
	ModifiedEntities      map[string]*EntityDiff `json:"modified_entities"`
	EditorDataChanges     *EditorDataDiff        `json:"editor_data_changes,omitempty"`
	BackwardPortingIssues []PortingIssue         `json:"backward_porting_issues"`
	Warnings              []Warning              `json:"warnings,omitempty"`
}

// Metadata labels the two compared schema versions.
type Metadata struct {
	OldLabel       string `json:"old_label"`
	NewLabel       string `json:"new_label"`
	ComparisonDate string `json:"comparison_date"` // RFC 3339
}

// FieldChange records one differing field as a verbatim (old, new) pair.
type FieldChange[T any] struct {
	Old T `json:"old"`
	New T `json:"new"`
}

// EntityDiff holds every difference found for one matched entity pair.
// Nil sub-diffs mean "no difference in that dimension"; an EntityDiff
// with all sub-diffs nil is never emitted into a Report.
type EntityDiff struct {
	ClassType   *FieldChange[string] `json:"class_type,omitempty"`
	Description *FieldChange[string] `json:"description,omitempty"`
	Definitions *DefinitionsDiff     `json:"definitions,omitempty"`
	Properties  *PropertySetDiff     `json:"properties,omitempty"`
	Spawnflags  *SpawnflagSetDiff    `json:"spawnflags,omitempty"`
	Inputs      *IOSetDiff           `json:"inputs,omitempty"`
	Outputs     *IOSetDiff           `json:"outputs,omitempty"`

	Summary           ChangeSummary `json:"changes_summary"`
	ComplexityScore   float64       `json:"complexity_score"`
	PortingComplexity Complexity    `json:"backward_porting_complexity"`
}

func (d *EntityDiff) empty() bool {
	return d.ClassType == nil &&
		d.Description == nil &&
		d.Definitions == nil &&
		d.Properties == nil &&
		d.Spawnflags == nil &&
		d.Inputs == nil &&
		d.Outputs == nil
}

// DefinitionsDiff covers the entity's header clauses. Base references
// are compared as an order-insensitive set; all other clauses are
// compared as an order-insensitive multiset and reported whole when the
// multisets differ.
type DefinitionsDiff struct {
	BasesAdded     []string         `json:"bases_added,omitempty"`
	BasesRemoved   []string         `json:"bases_removed,omitempty"`
	ClausesChanged bool             `json:"clauses_changed,omitempty"`
	OldClauses     []fgd.Definition `json:"old_clauses,omitempty"`
	NewClauses     []fgd.Definition `json:"new_clauses,omitempty"`
}

// PropertySetDiff is the name-keyed diff of an entity's properties.
// Added/Removed carry original-cased names (new side and old side
// respectively), sorted by normalized key. Modified is keyed by the new
// side's original casing.
type PropertySetDiff struct {
	Added    []string                 `json:"new"`
	Removed  []string                 `json:"removed"`
	Modified map[string]*PropertyDiff `json:"modified"`
}

// PropertyDiff enumerates the closed set of compared property fields.
type PropertyDiff struct {
	ValueType    *FieldChange[string] `json:"value_type,omitempty"`
	Readonly     *FieldChange[bool]   `json:"readonly,omitempty"`
	Report       *FieldChange[bool]   `json:"report,omitempty"`
	DisplayName  *FieldChange[string] `json:"display_name,omitempty"`
	DefaultValue *FieldChange[string] `json:"default_value,omitempty"`
	Description  *FieldChange[string] `json:"description,omitempty"`
	Choices      *ChoicesChange       `json:"choices,omitempty"`
}

func (d *PropertyDiff) empty() bool {
	return d.ValueType == nil &&
		d.Readonly == nil &&
		d.Report == nil &&
		d.DisplayName == nil &&
		d.DefaultValue == nil &&
		d.Description == nil &&
		d.Choices == nil
}

// ChoicesChange reports both full choice lists when the value-keyed
// choice sets differ. Choice semantics are positional-agnostic but
// value-identified, so a per-choice diff would add noise without
// information; both lists are emitted sorted by choice value.
type ChoicesChange struct {
	Old []fgd.Choice `json:"old"`
	New []fgd.Choice `json:"new"`
}

// IOSetDiff is the name-keyed diff of an entity's inputs or outputs.
type IOSetDiff struct {
	Added    []string           `json:"new"`
	Removed  []string           `json:"removed"`
	Modified map[string]*IODiff `json:"modified"`
}

// IODiff enumerates the compared io signal fields. Kind is included so
// that a signal whose direction tag changed between versions is reported
// explicitly rather than treated as an unrelated add+remove.
type IODiff struct {
	Kind        *FieldChange[string] `json:"kind,omitempty"`
	ValueType   *FieldChange[string] `json:"value_type,omitempty"`
	Description *FieldChange[string] `json:"description,omitempty"`
}

func (d *IODiff) empty() bool {
	return d.Kind == nil && d.ValueType == nil && d.Description == nil
}

// SpawnflagSetDiff is keyed by integer bit value, not display name: the
// bit value is the stable identity that affects runtime behavior, while
// display names are freely renamed across versions. Modified is keyed by
// the decimal bit value.
type SpawnflagSetDiff struct {
	Added    []FlagRef                 `json:"new"`
	Removed  []FlagRef                 `json:"removed"`
	Modified map[string]*SpawnflagDiff `json:"modified"`
}

// FlagRef identifies one spawnflag by bit value, with its display name
// carried along for readability.
type FlagRef struct {
	Value       int64  `json:"value"`
	DisplayName string `json:"display_name"`
}

// SpawnflagDiff holds field changes for one matched bit value.
type SpawnflagDiff struct {
	DisplayName *FieldChange[string] `json:"display_name,omitempty"`
	Default     *FieldChange[bool]   `json:"default_value,omitempty"`
}

// EditorDataDiff covers the schema's editor data blocks, keyed by
// (class type, name) when a name is present and class type alone
// otherwise. Payloads are opaque: matched blocks with unequal payloads
// report both payloads whole.
type EditorDataDiff struct {
	Added    []EditorBlock                `json:"new"`
	Removed  []EditorBlock                `json:"removed"`
	Modified map[string]*FieldChange[any] `json:"modified"`
}

func (d *EditorDataDiff) empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// EditorBlock is the reported copy of one editor data block.
type EditorBlock struct {
	ClassType string `json:"class_type"`
	Name      string `json:"name,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// Severity ranks backward-porting issues.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
)

// PortingIssue is one entry of the backward-porting issue list: a
// derived view over the same diff data, kept consistent with the
// per-entity property-added sets.
type PortingIssue struct {
	Entity   string   `json:"entity"`
	Property string   `json:"property,omitempty"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
}

// Warning codes for recoverable conditions found during comparison.
const (
	WarnNonIntegerFlag = "non_integer_spawnflag"
	WarnFlagCollision  = "spawnflag_value_collision"
)

// Warning reports a recoverable input defect. The offending item is
// skipped from comparison; the run continues.
type Warning struct {
	Code   string `json:"code"`
	Side   string `json:"side"` // "old" | "new"
	Entity string `json:"entity,omitempty"`
	Detail string `json:"detail"`
}
