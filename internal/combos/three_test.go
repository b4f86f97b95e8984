package combos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeThree(t *testing.T, raw string) *ThreeCardSet {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return NormalizeThreeCard(v)
}

func TestNormalizeThreeCard(t *testing.T) {
	set := decodeThree(t, `{
		"love": {
			"a|b|c": "любовный расклад",
			" a | b | c ": "с пробелами",
			"x|y": "только две карты",
			"bad": 42
		},
		"career": {"d|e|f": "карьерный расклад"},
		"junk": "not an object"
	}`)

	// "a|b|c" and " a | b | c " normalize to the same key.
	assert.Equal(t, 1, set.TopicCount("love"))
	assert.Equal(t, 1, set.TopicCount("career"))
	assert.Equal(t, 0, set.TopicCount("junk"))
	assert.Equal(t, 3, set.PoolSize())
}

func TestSelect_TopicScoped(t *testing.T) {
	set := decodeThree(t, `{"love": {"a|b|c": "смысл"}}`)

	cards, meaning, ok := set.Select("love")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, cards)
	assert.Equal(t, "смысл", meaning)
}

func TestSelect_FallsBackToGlobalPool(t *testing.T) {
	set := decodeThree(t, `{"career": {"d|e|f": "карьера"}}`)

	cards, meaning, ok := set.Select("love")
	require.True(t, ok, "empty topic must fall back to the global pool")
	assert.Equal(t, []string{"d", "e", "f"}, cards)
	assert.Equal(t, "карьера", meaning)
}

func TestSelect_EmptyEverything(t *testing.T) {
	set := decodeThree(t, `{}`)
	_, _, ok := set.Select("love")
	assert.False(t, ok)

	set = decodeThree(t, `"not even an object"`)
	_, _, ok = set.Select("love")
	assert.False(t, ok)
}

func TestSelect_UniformOverTopicEntries(t *testing.T) {
	set := decodeThree(t, `{"love": {
		"a|b|c": "один",
		"d|e|f": "два"
	}}`)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		_, meaning, ok := set.Select("love")
		require.True(t, ok)
		seen[meaning] = true
	}
	assert.Len(t, seen, 2, "both topic entries should be selectable")
}
