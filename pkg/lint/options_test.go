package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIntOption(t *testing.T) {
	opts := map[string]any{
		"direct":  42,
		"float":   float64(80),
		"invalid": "nope",
	}

	assert.Equal(t, 42, GetIntOption(opts, "direct", 0))
	assert.Equal(t, 80, GetIntOption(opts, "float", 0))
	assert.Equal(t, 7, GetIntOption(opts, "invalid", 7))
	assert.Equal(t, 7, GetIntOption(opts, "missing", 7))
	assert.Equal(t, 7, GetIntOption(nil, "direct", 7))
}

func TestGetStringOption(t *testing.T) {
	opts := map[string]any{"mode": "strict", "count": 3}

	assert.Equal(t, "strict", GetStringOption(opts, "mode", "lax"))
	assert.Equal(t, "lax", GetStringOption(opts, "count", "lax"))
	assert.Equal(t, "lax", GetStringOption(opts, "missing", "lax"))
}

func TestGetBoolOption(t *testing.T) {
	opts := map[string]any{"enabled": true, "label": "yes"}

	assert.True(t, GetBoolOption(opts, "enabled", false))
	assert.False(t, GetBoolOption(opts, "label", false))
	assert.True(t, GetBoolOption(opts, "missing", true))
}

func TestGetStringSliceOption(t *testing.T) {
	opts := map[string]any{
		"typed": []string{"a", "b"},
		"any":   []any{"c", "d"},
		"mixed": []any{"e", 1},
	}

	assert.Equal(t, []string{"a", "b"}, GetStringSliceOption(opts, "typed", nil))
	assert.Equal(t, []string{"c", "d"}, GetStringSliceOption(opts, "any", nil))
	assert.Equal(t, []string{"e"}, GetStringSliceOption(opts, "mixed", []string{"x"}), "non-string items are dropped")
	assert.Equal(t, []string{"x"}, GetStringSliceOption(opts, "missing", []string{"x"}))
}

func TestDecodeOptions(t *testing.T) {
	type target struct {
		MaxLength  int    `mapstructure:"max_length"`
		IgnoreURLs bool   `mapstructure:"ignore_urls"`
		Label      string `mapstructure:"label"`
	}

	// JSON-decoded configs deliver numbers as float64 and booleans as
	// strings often enough that weak decoding has to cope with both.
	opts := map[string]any{
		"max_length":  float64(72),
		"ignore_urls": "true",
		"label":       "short",
	}

	got := target{MaxLength: 100}
	require.NoError(t, DecodeOptions(opts, &got))
	assert.Equal(t, 72, got.MaxLength)
	assert.True(t, got.IgnoreURLs)
	assert.Equal(t, "short", got.Label)
}

func TestDecodeOptionsPartial(t *testing.T) {
	type target struct {
		MaxLength int `mapstructure:"max_length"`
	}

	got := target{MaxLength: 100}
	require.NoError(t, DecodeOptions(map[string]any{}, &got))
	assert.Equal(t, 100, got.MaxLength, "absent keys keep defaults")
}
