package fgd

import "strings"

// Schema is the root of one parsed FGD file: an ordered list of entity
// definitions plus any editor data blocks that appeared alongside them.
type Schema struct {
	Entities   []*Entity     `json:"entities"`
	EditorData []*EditorData `json:"editor_data,omitempty"`
}

// Entity represents one class definition (@PointClass, @SolidClass, ...).
//
// Name is the identity: unique within a Schema under case-insensitive
// comparison. Original casing is preserved for reporting.
type Entity struct {
	ClassType   string       `json:"class_type"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Definitions []Definition `json:"definitions,omitempty"`
	Properties  []*Property  `json:"properties,omitempty"`
	Spawnflags  []*Spawnflag `json:"spawnflags,omitempty"`
	Inputs      []*IOSignal  `json:"inputs,omitempty"`
	Outputs     []*IOSignal  `json:"outputs,omitempty"`
}

// Definition is one raw clause from the class header, e.g.
// base(Targetname, Parentname) or size(-8 -8 -8, 8 8 8).
type Definition struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

// Bases returns the entity's base-class references, in declaration order.
// Collected from every header clause named "base" (case-insensitive).
func (e *Entity) Bases() []string {
	var bases []string
	for _, d := range e.Definitions {
		if strings.EqualFold(d.Name, "base") {
			bases = append(bases, d.Args...)
		}
	}
	return bases
}

// Property is one keyvalue declaration inside an entity body.
// Name is the identity within the owning entity, case-insensitive.
type Property struct {
	Name         string   `json:"name"`
	ValueType    string   `json:"value_type"`
	Readonly     bool     `json:"readonly,omitempty"`
	Report       bool     `json:"report,omitempty"`
	DisplayName  string   `json:"display_name,omitempty"`
	DefaultValue string   `json:"default_value,omitempty"`
	Description  string   `json:"description,omitempty"`
	Choices      []Choice `json:"choices,omitempty"`
}

// Choice is one option of a choices-typed property.
type Choice struct {
	Value       string `json:"value"`
	DisplayName string `json:"display_name"`
}

// Spawnflag is one bit of the spawnflags bitmask.
//
// Value is the raw token from the source text. The integer bit value is
// the identity (display names may be renamed across schema versions);
// parsing the token is deferred to the consumer so that a non-integer
// value can be handled as a recoverable condition.
type Spawnflag struct {
	Value       string `json:"value"`
	DisplayName string `json:"display_name"`
	Default     bool   `json:"default"`
}

// IOKind discriminates input and output signals.
type IOKind string

const (
	KindInput  IOKind = "input"
	KindOutput IOKind = "output"
)

// IOSignal is one input or output declaration. Name is the identity,
// case-insensitive, scoped per direction within the owning entity.
type IOSignal struct {
	Kind        IOKind `json:"kind"`
	Name        string `json:"name"`
	ValueType   string `json:"value_type"`
	Description string `json:"description,omitempty"`
}

// EditorData is one non-entity block: @include, @mapsize,
// @MaterialExclusion, @AutoVisGroup and the like. Name is set only for
// block kinds that carry one (@AutoVisGroup); Data is opaque.
type EditorData struct {
	ClassType string `json:"class_type"`
	Name      string `json:"name,omitempty"`
	Data      any    `json:"data,omitempty"`
}
