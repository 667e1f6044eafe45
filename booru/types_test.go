package booru

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/imgdl/request"
)

func TestPostRoundTrip(t *testing.T) {
	score := int64(31)
	sample := true
	width, height := 850, 478
	sampleURL := "https://api-cdn.rule34.xxx/samples/3081/sample_x.jpg"

	post := Post{
		ID:           9123456,
		Directory:    3081,
		Hash:         "a1b2",
		Image:        "a1b2.png",
		Width:        1920,
		Height:       1080,
		Rating:       "explicit",
		Owner:        "bot",
		Tags:         "cat solo",
		Score:        &score,
		Sample:       &sample,
		SampleWidth:  &width,
		SampleHeight: &height,
		SampleURL:    &sampleURL,
		FileURL:      "https://api-cdn.rule34.xxx/images/3081/a1b2.png",
		PreviewURL:   "https://api-cdn.rule34.xxx/thumbnails/3081/thumbnail_a1b2.jpg",
		Source:       "https://example.org/p/1",
		Status:       "active",
	}

	data, err := json.Marshal(post)
	require.NoError(t, err)

	var got Post
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, post, got)
}

func TestRatingIsFreeForm(t *testing.T) {
	var p Post
	err := json.Unmarshal([]byte(`{"id":1,"directory":1,"hash":"h","image":"x","width":1,"height":1,
		"rating":"anything-goes","owner":"o","tags":"","file_url":"u","preview_url":"p","source":"","status":"active"}`), &p)
	require.NoError(t, err)
	assert.Equal(t, "anything-goes", p.Rating)
}

func TestPostRequiredFields(t *testing.T) {
	full := `{"id":1,"directory":1,"hash":"h","image":"x","width":1,"height":1,"rating":"safe",
		"owner":"o","tags":"","file_url":"u","preview_url":"p","source":"","status":"active"}`

	var ok Post
	require.NoError(t, json.Unmarshal([]byte(full), &ok))
	assert.Nil(t, ok.HasNotes)

	for _, field := range postRequiredFields {
		t.Run(field, func(t *testing.T) {
			var fields map[string]any
			require.NoError(t, json.Unmarshal([]byte(full), &fields))
			delete(fields, field)
			data, err := json.Marshal(fields)
			require.NoError(t, err)

			var p Post
			err = json.Unmarshal(data, &p)
			var missing *request.MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, field, missing.Field)
		})
	}

	for _, field := range []string{"preview_url", "source", "status"} {
		assert.Contains(t, postRequiredFields, field)
	}
}
