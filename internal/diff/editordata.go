package diff

import (
	"bytes"
	"reflect"

	"github.com/hammerkit/fgdiff/internal/fgd"
)

// editorDataKey derives the comparison key for one editor data block:
// (class type, name) when the block carries a name, class type alone
// otherwise.
func editorDataKey(ed *fgd.EditorData) string {
	key := NormalizeKey(ed.ClassType)
	if ed.Name != "" {
		key += "/" + NormalizeKey(ed.Name)
	}
	return key
}

// compareEditorData diffs the two schemas' editor data blocks. Payloads
// are opaque, so matched blocks with unequal payloads report both
// payloads whole rather than a field-level diff.
//
// Several unnamed blocks of one class type share a key and cannot be
// told apart; such a key is compared as a whole: the payload lists must
// match element for element in order, otherwise both lists are reported.
func compareEditorData(old, new []*fgd.EditorData) *EditorDataDiff {
	oldIdx := groupEditorData(old)
	newIdx := groupEditorData(new)

	added, removed, common := diffKeySets(oldIdx, newIdx)

	d := &EditorDataDiff{
		Added:    []EditorBlock{},
		Removed:  []EditorBlock{},
		Modified: map[string]*FieldChange[any]{},
	}
	for _, key := range added {
		for _, ed := range newIdx[key] {
			d.Added = append(d.Added, editorBlock(ed))
		}
	}
	for _, key := range removed {
		for _, ed := range oldIdx[key] {
			d.Removed = append(d.Removed, editorBlock(ed))
		}
	}
	for _, key := range common {
		oldData := payloads(oldIdx[key])
		newData := payloads(newIdx[key])
		if !payloadEqual(oldData, newData) {
			d.Modified[key] = &FieldChange[any]{Old: oldData, New: newData}
		}
	}

	if d.empty() {
		return nil
	}
	return d
}

// payloadEqual compares two opaque payloads by their canonical JSON
// form. Equal values can arrive with different numeric types depending
// on the loader (int64 from the FGD parser, float64 from JSON input),
// so a structural comparison would report phantom changes.
func payloadEqual(a, b any) bool {
	aj, errA := MarshalCanonical(a)
	bj, errB := MarshalCanonical(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(aj, bj)
}

func groupEditorData(blocks []*fgd.EditorData) map[string][]*fgd.EditorData {
	idx := map[string][]*fgd.EditorData{}
	for _, ed := range blocks {
		key := editorDataKey(ed)
		idx[key] = append(idx[key], ed)
	}
	return idx
}

func editorBlock(ed *fgd.EditorData) EditorBlock {
	return EditorBlock{ClassType: ed.ClassType, Name: ed.Name, Data: ed.Data}
}

// payloads unwraps a key's payloads: the bare payload for the common
// single-block case, the payload list when the key is ambiguous.
func payloads(blocks []*fgd.EditorData) any {
	if len(blocks) == 1 {
		return blocks[0].Data
	}
	data := make([]any, len(blocks))
	for i, ed := range blocks {
		data[i] = ed.Data
	}
	return data
}
