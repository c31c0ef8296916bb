package diff

import (
	"slices"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammerkit/fgdiff/internal/fgd"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func basicSchemas() (*fgd.Schema, *fgd.Schema) {
	old := &fgd.Schema{Entities: []*fgd.Entity{
		{
			ClassType: "PointClass", Name: "func_door",
			Properties: []*fgd.Property{
				{Name: "speed", ValueType: "integer", DefaultValue: "100"},
			},
		},
	}}
	new := &fgd.Schema{Entities: []*fgd.Entity{
		{
			ClassType: "PointClass", Name: "func_door",
			Properties: []*fgd.Property{
				{Name: "speed", ValueType: "integer", DefaultValue: "200"},
				{Name: "torque", ValueType: "integer"},
			},
		},
	}}
	return old, new
}

func TestCompare_Identical(t *testing.T) {
	old, _ := basicSchemas()

	report, err := Compare(old, old, Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Empty(t, report.NewEntities)
	assert.Empty(t, report.RemovedEntities)
	assert.Empty(t, report.ModifiedEntities)
	assert.Nil(t, report.EditorDataChanges)
	assert.Empty(t, report.BackwardPortingIssues)
	assert.Empty(t, report.Warnings)
}

func TestCompare_SwappedInputs(t *testing.T) {
	old, new := basicSchemas()

	forward, err := Compare(old, new, Options{Now: fixedClock})
	require.NoError(t, err)
	reverse, err := Compare(new, old, Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, len(forward.NewEntities), len(reverse.RemovedEntities))
	assert.Equal(t, len(forward.RemovedEntities), len(reverse.NewEntities))
	require.Contains(t, reverse.ModifiedEntities, "func_door")
	assert.Equal(t, []string{"torque"}, reverse.ModifiedEntities["func_door"].Properties.Removed)
}

func TestCompare_CaseInsensitiveEntityMatch(t *testing.T) {
	old := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "func_Door", Description: "a"},
	}}
	new := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "FUNC_DOOR", Description: "b"},
	}}

	report, err := Compare(old, new, Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Empty(t, report.NewEntities)
	assert.Empty(t, report.RemovedEntities)
	// The modified map is keyed by the new side's original casing.
	require.Contains(t, report.ModifiedEntities, "FUNC_DOOR")
	assert.Equal(t, &FieldChange[string]{Old: "a", New: "b"}, report.ModifiedEntities["FUNC_DOOR"].Description)
}

func TestCompare_NewEntityIssue(t *testing.T) {
	old := &fgd.Schema{}
	new := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "new_trigger"},
	}}

	report, err := Compare(old, new, Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, []string{"new_trigger"}, report.NewEntities)
	require.Len(t, report.BackwardPortingIssues, 1)
	issue := report.BackwardPortingIssues[0]
	assert.Equal(t, "new_trigger", issue.Entity)
	assert.Empty(t, issue.Property)
	assert.Equal(t, SeverityHigh, issue.Severity)
}

func TestCompare_NewPropertyIssue(t *testing.T) {
	old, new := basicSchemas()

	report, err := Compare(old, new, Options{Now: fixedClock})
	require.NoError(t, err)

	require.Len(t, report.BackwardPortingIssues, 1)
	issue := report.BackwardPortingIssues[0]
	assert.Equal(t, "func_door", issue.Entity)
	assert.Equal(t, "torque", issue.Property)
	assert.Equal(t, SeverityMedium, issue.Severity)
}

func TestCompare_IssueOrdering(t *testing.T) {
	old := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "zebra"},
	}}
	new := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "zebra", Properties: []*fgd.Property{
			{Name: "extra", ValueType: "string"},
		}},
		{ClassType: "PointClass", Name: "aardvark"},
	}}

	report, err := Compare(old, new, Options{Now: fixedClock})
	require.NoError(t, err)

	// High severity first, then Medium, regardless of entity order.
	require.Len(t, report.BackwardPortingIssues, 2)
	assert.Equal(t, SeverityHigh, report.BackwardPortingIssues[0].Severity)
	assert.Equal(t, "aardvark", report.BackwardPortingIssues[0].Entity)
	assert.Equal(t, SeverityMedium, report.BackwardPortingIssues[1].Severity)
	assert.Equal(t, "zebra", report.BackwardPortingIssues[1].Entity)
}

func TestCompare_DuplicateEntityFailsFast(t *testing.T) {
	old := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "func_door"},
		{ClassType: "SolidClass", Name: "FUNC_DOOR"},
	}}

	_, err := Compare(old, &fgd.Schema{}, Options{})
	require.Error(t, err)
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "entity", dup.Kind)
	assert.Equal(t, "func_door", dup.Key)
}

func TestCompare_DeterministicAcrossInputOrder(t *testing.T) {
	build := func(reversed bool) *fgd.Schema {
		entities := []*fgd.Entity{
			{ClassType: "PointClass", Name: "func_door", Properties: []*fgd.Property{
				{Name: "speed", ValueType: "integer"},
				{Name: "health", ValueType: "integer"},
			}},
			{ClassType: "PointClass", Name: "env_spark"},
			{ClassType: "BaseClass", Name: "Targetname"},
		}
		if reversed {
			slices.Reverse(entities)
		}
		return &fgd.Schema{Entities: entities}
	}
	other := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "func_door", Properties: []*fgd.Property{
			{Name: "speed", ValueType: "string"},
		}},
		{ClassType: "PointClass", Name: "logic_relay"},
	}}
	opts := Options{OldLabel: "a", NewLabel: "b", Now: fixedClock}

	first, err := Compare(build(false), other, opts)
	require.NoError(t, err)
	second, err := Compare(build(true), other, opts)
	require.NoError(t, err)

	firstBytes, err := MarshalCanonical(first)
	require.NoError(t, err)
	secondBytes, err := MarshalCanonical(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstBytes), string(secondBytes))
}

func TestCompare_ModifiedEntityScoreAndBucket(t *testing.T) {
	old, new := basicSchemas()

	report, err := Compare(old, new, Options{Now: fixedClock})
	require.NoError(t, err)

	d := report.ModifiedEntities["func_door"]
	require.NotNil(t, d)
	// One property added (2.0) plus one modified (1.0).
	assert.InDelta(t, 3.0, d.ComplexityScore, 1e-9)
	assert.Equal(t, ComplexityLow, d.PortingComplexity)
	assert.Equal(t, ScoreSummary(d.Summary), d.ComplexityScore)
}

func TestCompare_CollectsSpawnflagWarnings(t *testing.T) {
	old := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "func_door", Spawnflags: []*fgd.Spawnflag{
			{Value: "banana", DisplayName: "Bad"},
		}},
	}}
	new := &fgd.Schema{Entities: []*fgd.Entity{
		{ClassType: "PointClass", Name: "func_door", Description: "changed"},
	}}

	report, err := Compare(old, new, Options{Now: fixedClock})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, WarnNonIntegerFlag, report.Warnings[0].Code)
	assert.Equal(t, "old", report.Warnings[0].Side)
	assert.Equal(t, "func_door", report.Warnings[0].Entity)
}

func TestCompare_Golden(t *testing.T) {
	old, new := basicSchemas()

	report, err := Compare(old, new, Options{
		OldLabel: "css",
		NewLabel: "csgo",
		Now:      fixedClock,
	})
	require.NoError(t, err)

	data, err := MarshalCanonical(report)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "compare_basic", data)
}
