package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{"zebra": 1, "apple": 2, "mango": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":2,"mango":3,"zebra":1}`, string(data))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{"s": "<a> & </a>"})
	require.NoError(t, err)
	assert.Equal(t, `{"s":"<a> & </a>"}`, string(data))
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// e + combining acute accent normalizes to the precomposed form.
	data, err := MarshalCanonical(map[string]any{"s": "café"})
	require.NoError(t, err)
	assert.Equal(t, "{\"s\":\"café\"}", string(data))
}

func TestMarshalCanonical_Numbers(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{"i": 3, "f": 1.5})
	require.NoError(t, err)
	assert.Equal(t, `{"f":1.5,"i":3}`, string(data))
}

func TestMarshalCanonical_ControlCharacterEscapes(t *testing.T) {
	data, err := MarshalCanonical("a\nb\tc\x01d")
	require.NoError(t, err)
	assert.Equal(t, `"a\nb\tc\u0001d"`, string(data))
}

func TestMarshalCanonical_Structs(t *testing.T) {
	type inner struct {
		B string `json:"b"`
		A string `json:"a"`
	}
	data, err := MarshalCanonical(inner{B: "2", A: "1"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":"1","b":"2"}`, string(data))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	v := map[string]any{
		"list": []any{1, "two", true, nil},
		"map":  map[string]any{"x": 1, "y": 2, "z": 3},
	}
	first, err := MarshalCanonical(v)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		next, err := MarshalCanonical(v)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestMarshalCanonicalIndent(t *testing.T) {
	data, err := MarshalCanonicalIndent(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(data))
}
