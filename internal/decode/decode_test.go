package decode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		v, ok := Decode(`{"widgetType":"image","image":{"id":42,"url":"x"}}`)
		require.True(t, ok)
		m, isMap := v.(map[string]any)
		require.True(t, isMap)
		assert.Equal(t, "image", m["widgetType"])
	})

	t.Run("array", func(t *testing.T) {
		v, ok := Decode(`[{"id":7},{"id":8}]`)
		require.True(t, ok)
		assert.Len(t, v.([]any), 2)
	})

	t.Run("scalar top level rejected", func(t *testing.T) {
		for _, raw := range []string{`42`, `"hello"`, `true`, `null`} {
			_, ok := Decode(raw)
			assert.False(t, ok, "input %q", raw)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, ok := Decode(`{"unterminated": `)
		assert.False(t, ok)
	})
}

func TestDecodeSerialized(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		v, ok := Decode(`a:2:{i:0;i:10;i:1;i:20;}`)
		require.True(t, ok)
		assert.Equal(t, []any{int64(10), int64(20)}, v)
	})

	t.Run("associative", func(t *testing.T) {
		v, ok := Decode(`a:2:{s:2:"id";i:42;s:3:"url";s:1:"x";}`)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"id": int64(42), "url": "x"}, v)
	})

	t.Run("nested", func(t *testing.T) {
		v, ok := Decode(`a:1:{s:5:"image";a:1:{s:2:"id";i:7;}}`)
		require.True(t, ok)
		m := v.(map[string]any)
		inner := m["image"].(map[string]any)
		assert.Equal(t, int64(7), inner["id"])
	})

	t.Run("string with quotes and braces", func(t *testing.T) {
		// Byte lengths are authoritative, so delimiters inside the payload
		// must not confuse the parser.
		v, ok := Decode(`a:1:{s:4:"note";s:9:"a"b{c};d"";}`)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"note": `a"b{c};d"`}, v)
	})

	t.Run("scalar types", func(t *testing.T) {
		v, ok := Decode(`a:4:{i:0;b:1;i:1;b:0;i:2;d:1.5;i:3;N;}`)
		require.True(t, ok)
		assert.Equal(t, []any{true, false, 1.5, nil}, v)
	})

	t.Run("sparse integer keys become a map", func(t *testing.T) {
		v, ok := Decode(`a:2:{i:0;i:10;i:5;i:20;}`)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"0": int64(10), "5": int64(20)}, v)
	})

	t.Run("object token fails whole decode", func(t *testing.T) {
		_, ok := Decode(`a:1:{s:1:"o";O:8:"stdClass":0:{}}`)
		assert.False(t, ok)
	})

	t.Run("trailing garbage rejected", func(t *testing.T) {
		_, ok := Decode(`a:1:{i:0;i:1;}extra`)
		assert.False(t, ok)
	})

	t.Run("count mismatch rejected", func(t *testing.T) {
		_, ok := Decode(`a:3:{i:0;i:1;}`)
		assert.False(t, ok)
	})

	t.Run("length mismatch rejected", func(t *testing.T) {
		_, ok := Decode(`a:1:{s:9:"id";i:42;}`)
		assert.False(t, ok)
	})

	t.Run("scalar top level rejected", func(t *testing.T) {
		_, ok := Decode(`i:42;`)
		assert.False(t, ok)
	})
}

func TestDecodeSizeCeiling(t *testing.T) {
	huge := `{"pad":"` + strings.Repeat("x", MaxBlobLen) + `"}`
	v, ok := Decode(huge)
	assert.False(t, ok)
	assert.Nil(t, v)

	// Just under the ceiling still decodes.
	small := `{"pad":"` + strings.Repeat("x", 1024) + `"}`
	_, ok = Decode(small)
	assert.True(t, ok)
}

func TestDecodeNeverPanics(t *testing.T) {
	inputs := []string{
		"", ";", "a:", "a:1:{", `s:5:"ab";`, "i:;", "d:;", "b:2;",
		`a:-1:{}`, `s:-3:"x";`, "a:1:{i:0;}", "N", "{", "[",
		// Absurd declared sizes must fail cheaply, never allocate for the
		// claim. The element count and the string length are both
		// attacker-controlled in a blob far under the size ceiling.
		"a:2000000000:{}",
		"a:9223372036854775807:{}",
		`s:9223372036854775807:"x";`,
		`a:1:{s:2:"id";a:2000000000:{}}`,
	}
	for _, raw := range inputs {
		_, ok := Decode(raw)
		assert.False(t, ok, "input %q", raw)
	}
}
