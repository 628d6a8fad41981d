package pexels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "pexelsearch/pkg/errors"
)

func TestJSONDecoder(t *testing.T) {
	body, err := JSONDecoder{}.Decode([]byte(`{"page":1,"photos":[{"id":9007199254740993}]}`))
	require.NoError(t, err)

	assert.Equal(t, json.Number("1"), body["page"])
	photos := body["photos"].([]any)
	id, ok := Photo(photos[0].(map[string]any)).ID()
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), id, "large ids are not rounded")
}

func TestJSONDecoderErrors(t *testing.T) {
	for _, body := range []string{
		``,
		`not json`,
		`{"photos": [`,
		`[1, 2, 3]`,
		`null`,
		`{"a":1} {"b":2}`,
	} {
		t.Run(body, func(t *testing.T) {
			_, err := JSONDecoder{}.Decode([]byte(body))
			require.Error(t, err)
			assert.True(t, errs.IsType(err, errs.ErrorTypeParsing))
		})
	}
}

func TestPhotoAccessors(t *testing.T) {
	p := Photo{
		"id":             json.Number("2014422"),
		"url":            "https://www.pexels.com/photo/2014422/",
		"photographer":   "Joey Farina",
		"original_query": "nature",
		"src": map[string]any{
			"original": "https://images.pexels.com/photos/2014422/original.jpeg",
		},
	}

	id, ok := p.ID()
	require.True(t, ok)
	assert.Equal(t, int64(2014422), id)
	assert.Equal(t, "https://www.pexels.com/photo/2014422/", p.URL())
	assert.Equal(t, "Joey Farina", p.Photographer())
	assert.Equal(t, "nature", p.OriginalQuery())
	assert.Equal(t, "https://images.pexels.com/photos/2014422/original.jpeg", p.Src("original"))
	assert.Empty(t, p.Src("tiny"))

	var empty Photo
	_, ok = empty.ID()
	assert.False(t, ok)
	assert.Empty(t, empty.Photographer())
	assert.Empty(t, empty.Src("original"))
}

func TestPhotoIDVariants(t *testing.T) {
	tests := []struct {
		raw  any
		want int64
		ok   bool
	}{
		{json.Number("12"), 12, true},
		{json.Number("1.5"), 0, false},
		{float64(7), 7, true},
		{int64(8), 8, true},
		{9, 9, true},
		{"10", 10, true},
		{"abc", 0, false},
		{true, 0, false},
	}

	for _, tt := range tests {
		id, ok := Photo{"id": tt.raw}.ID()
		assert.Equal(t, tt.ok, ok, "%v", tt.raw)
		assert.Equal(t, tt.want, id, "%v", tt.raw)
	}
}

func TestExtractPhotos(t *testing.T) {
	body := map[string]any{
		"photos": []any{
			map[string]any{"id": json.Number("1")},
			map[string]any{"id": json.Number("2")},
		},
	}

	photos, err := extractPhotos(body, "cats")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	for _, p := range photos {
		assert.Equal(t, "cats", p.OriginalQuery())
	}
}

func TestExtractPhotosErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{"missing field", map[string]any{"page": 1}, "response has no photos field"},
		{"in-band error", map[string]any{"error": "Rate limit exceeded"}, "Rate limit exceeded"},
		{"not an array", map[string]any{"photos": "none"}, "not an array"},
		{"non-object element", map[string]any{"photos": []any{"x"}}, "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractPhotos(tt.body, "q")
			require.Error(t, err)
			assert.True(t, errs.IsType(err, errs.ErrorTypeParsing))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
