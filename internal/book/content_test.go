package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    string
	}{
		{"plain text", TextContent("Hello\n\nWorld"), `"Hello\n\nWorld"`},
		{"segments", SegmentedContent([]string{"one", "two"}), `["one","two"]`},
		{"no segments", SegmentedContent(nil), `[]`},
		{"zero value", Content{}, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.content)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestContent_UnmarshalJSON(t *testing.T) {
	var text Content
	require.NoError(t, json.Unmarshal([]byte(`"chapter"`), &text))
	assert.True(t, text.IsText())
	assert.Equal(t, "chapter", text.Text())
	assert.Equal(t, 1, text.TotalPages())

	var pages Content
	require.NoError(t, json.Unmarshal([]byte(` ["a", "b", "c"]`), &pages))
	assert.False(t, pages.IsText())
	assert.Equal(t, []string{"a", "b", "c"}, pages.Segments())
	assert.Equal(t, 3, pages.TotalPages())

	var empty Content
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.Equal(t, 0, empty.TotalPages())

	var bad Content
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestContent_SegmentsAreCopied(t *testing.T) {
	src := []string{"a", "b"}
	c := SegmentedContent(src)
	src[0] = "changed"

	got := c.Segments()
	got[1] = "changed"

	assert.Equal(t, []string{"a", "b"}, c.Segments())
}
