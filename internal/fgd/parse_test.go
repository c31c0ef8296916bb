package fgd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFGD = `
// Test fixture covering the core constructs.
@BaseClass = Targetname : "Name" [
	targetname(target_source) : "Name" : : "The name other entities refer to this entity by."
]

@PointClass base(Targetname) size(-8 -8 -8, 8 8 8) color(255 0 0) = func_door : "A door " + "entity" [
	speed(integer) : "Speed" : 100 : "Movement speed"
	locked(choices) : "Locked" : 0 = [
		0 : "No"
		1 : "Yes"
	]
	spawnflags(flags) = [
		1 : "Starts Open" : 0
		2 : "Silent" : 1
	]
	input Open(void) : "Opens the door."
	output OnOpen(void) : "Fired when opened."
]

@mapsize(-16384, 16384)
@include "base.fgd"
@MaterialExclusion [ "debug" "tools" ]
@AutoVisGroup = "Brushes" [
	"Triggers" [ "trigger_once" ]
]
`

func TestParse_Entities(t *testing.T) {
	schema, err := ParseString(sampleFGD)
	require.NoError(t, err)
	require.Len(t, schema.Entities, 2)

	base := schema.Entities[0]
	assert.Equal(t, "BaseClass", base.ClassType)
	assert.Equal(t, "Targetname", base.Name)
	assert.Equal(t, "Name", base.Description)
	require.Len(t, base.Properties, 1)
	prop := base.Properties[0]
	assert.Equal(t, "targetname", prop.Name)
	assert.Equal(t, "target_source", prop.ValueType)
	assert.Equal(t, "Name", prop.DisplayName)
	assert.Empty(t, prop.DefaultValue)
	assert.Equal(t, "The name other entities refer to this entity by.", prop.Description)

	door := schema.Entities[1]
	assert.Equal(t, "PointClass", door.ClassType)
	assert.Equal(t, "func_door", door.Name)
	assert.Equal(t, "A door entity", door.Description)
	assert.Equal(t, []string{"Targetname"}, door.Bases())
	require.Len(t, door.Definitions, 3)
	assert.Equal(t, Definition{Name: "size", Args: []string{"-8 -8 -8", "8 8 8"}}, door.Definitions[1])
	assert.Equal(t, Definition{Name: "color", Args: []string{"255 0 0"}}, door.Definitions[2])
}

func TestParse_PropertiesAndChoices(t *testing.T) {
	schema, err := ParseString(sampleFGD)
	require.NoError(t, err)

	door := schema.Entities[1]
	require.Len(t, door.Properties, 2)

	speed := door.Properties[0]
	assert.Equal(t, "speed", speed.Name)
	assert.Equal(t, "integer", speed.ValueType)
	assert.Equal(t, "Speed", speed.DisplayName)
	assert.Equal(t, "100", speed.DefaultValue)
	assert.Equal(t, "Movement speed", speed.Description)

	locked := door.Properties[1]
	assert.Equal(t, "choices", locked.ValueType)
	assert.Equal(t, "0", locked.DefaultValue)
	require.Len(t, locked.Choices, 2)
	assert.Equal(t, Choice{Value: "0", DisplayName: "No"}, locked.Choices[0])
	assert.Equal(t, Choice{Value: "1", DisplayName: "Yes"}, locked.Choices[1])
}

func TestParse_Spawnflags(t *testing.T) {
	schema, err := ParseString(sampleFGD)
	require.NoError(t, err)

	door := schema.Entities[1]
	require.Len(t, door.Spawnflags, 2)
	assert.Equal(t, Spawnflag{Value: "1", DisplayName: "Starts Open", Default: false}, *door.Spawnflags[0])
	assert.Equal(t, Spawnflag{Value: "2", DisplayName: "Silent", Default: true}, *door.Spawnflags[1])
}

func TestParse_IO(t *testing.T) {
	schema, err := ParseString(sampleFGD)
	require.NoError(t, err)

	door := schema.Entities[1]
	require.Len(t, door.Inputs, 1)
	require.Len(t, door.Outputs, 1)
	assert.Equal(t, IOSignal{Kind: KindInput, Name: "Open", ValueType: "void", Description: "Opens the door."}, *door.Inputs[0])
	assert.Equal(t, IOSignal{Kind: KindOutput, Name: "OnOpen", ValueType: "void", Description: "Fired when opened."}, *door.Outputs[0])
}

func TestParse_EditorData(t *testing.T) {
	schema, err := ParseString(sampleFGD)
	require.NoError(t, err)
	require.Len(t, schema.EditorData, 4)

	mapsize := schema.EditorData[0]
	assert.Equal(t, "mapsize", mapsize.ClassType)
	assert.Equal(t, []any{int64(-16384), int64(16384)}, mapsize.Data)

	include := schema.EditorData[1]
	assert.Equal(t, "include", include.ClassType)
	assert.Equal(t, "base.fgd", include.Data)

	exclusion := schema.EditorData[2]
	assert.Equal(t, "MaterialExclusion", exclusion.ClassType)
	assert.Equal(t, []any{"debug", "tools"}, exclusion.Data)

	visgroup := schema.EditorData[3]
	assert.Equal(t, "AutoVisGroup", visgroup.ClassType)
	assert.Equal(t, "Brushes", visgroup.Name)
	assert.Equal(t, map[string]any{"Triggers": []any{"trigger_once"}}, visgroup.Data)
}

func TestParse_EmptyBody(t *testing.T) {
	schema, err := ParseString(`@PointClass = info_null : "Nothing" []`)
	require.NoError(t, err)
	require.Len(t, schema.Entities, 1)
	assert.Empty(t, schema.Entities[0].Properties)
}

func TestParse_NoBody(t *testing.T) {
	schema, err := ParseString(`@SolidClass = worldspawn : "World"`)
	require.NoError(t, err)
	require.Len(t, schema.Entities, 1)
	assert.Equal(t, "worldspawn", schema.Entities[0].Name)
}

func TestParse_PropertyNamedInput(t *testing.T) {
	// A property named "input" must not be mistaken for an io declaration.
	schema, err := ParseString(`@PointClass = logic_case : "Case" [
		input(string) : "Input value" : : "Raw input."
	]`)
	require.NoError(t, err)
	require.Len(t, schema.Entities[0].Properties, 1)
	assert.Equal(t, "input", schema.Entities[0].Properties[0].Name)
	assert.Empty(t, schema.Entities[0].Inputs)
}

func TestParse_BareProperty(t *testing.T) {
	// No display/default/description segments; the next declaration's
	// name follows immediately.
	schema, err := ParseString(`@PointClass = func_door : "d" [
		origin(origin)
		speed(integer) : "Speed" : 100
	]`)
	require.NoError(t, err)

	props := schema.Entities[0].Properties
	require.Len(t, props, 2)
	assert.Equal(t, "origin", props[0].Name)
	assert.Equal(t, "origin", props[0].ValueType)
	assert.Empty(t, props[0].DisplayName)
	assert.Equal(t, "speed", props[1].Name)
	assert.Equal(t, "100", props[1].DefaultValue)
}

func TestParse_BarePropertyBeforeIO(t *testing.T) {
	schema, err := ParseString(`@PointClass = func_door : "d" [
		origin(origin)
		input Open(void)
		output OnOpen(void)
	]`)
	require.NoError(t, err)

	ent := schema.Entities[0]
	require.Len(t, ent.Properties, 1)
	assert.Equal(t, "origin", ent.Properties[0].Name)
	require.Len(t, ent.Inputs, 1)
	assert.Equal(t, "Open", ent.Inputs[0].Name)
	require.Len(t, ent.Outputs, 1)
	assert.Equal(t, "OnOpen", ent.Outputs[0].Name)
}

func TestParse_ModifierThenNextProperty(t *testing.T) {
	schema, err := ParseString(`@PointClass = x : "d" [
		speed(integer) readonly
		health(integer) : "Health" : 100
	]`)
	require.NoError(t, err)

	props := schema.Entities[0].Properties
	require.Len(t, props, 2)
	assert.True(t, props[0].Readonly)
	assert.Equal(t, "health", props[1].Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `@PointClass = x : "oops`},
		{"unknown directive", `@Widget [ "a" ]`},
		{"missing equals", `@PointClass base(A) x : "y" []`},
		{"unterminated body", `@PointClass = x : "y" [ speed(integer)`},
		{"stray identifier in body", `@PointClass = x [ speed(integer) frobnicate : "S" ]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.src)
			require.Error(t, err)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseError_Position(t *testing.T) {
	_, err := ParseString("\n\n@Widget")
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Line)
}
