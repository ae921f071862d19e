package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContentVariants(t *testing.T) {
	tests := []struct {
		name string
		typ  BlockType
		raw  string
		want Content
	}{
		{"text", BlockTypeText, `{"text":"Demolición y saneamiento"}`, TextContent{Text: "Demolición y saneamiento"}},
		{"image", BlockTypeImage, `{"url":"https://x/1.jpg","alt":"kitchen"}`, ImageContent{URL: "https://x/1.jpg", Alt: ptr("kitchen")}},
		{"gallery", BlockTypeGallery, `{"images":[{"url":"https://x/1.jpg"},{"url":"https://x/2.jpg","caption":"after"}]}`, GalleryContent{Images: []ImageContent{{URL: "https://x/1.jpg"}, {URL: "https://x/2.jpg", Caption: ptr("after")}}}},
		{"video", BlockTypeVideo, `{"url":"https://youtu.be/abc","type":"youtube"}`, VideoContent{URL: "https://youtu.be/abc", Type: VideoTypeYoutube}},
		{"quote", BlockTypeQuote, `{"quote":"Excelente trabajo","author":"Ana"}`, QuoteContent{Quote: "Excelente trabajo", Author: ptr("Ana")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeContent(tt.typ, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.typ, got.BlockType())
			assert.NoError(t, got.Validate())
		})
	}
}

func TestDecodeTwoColumns(t *testing.T) {
	raw := `{
		"leftType": "text",
		"rightType": "image",
		"leftContent": {"text": "Antes era un local vacío"},
		"rightContent": {"url": "https://x/local.jpg", "caption": "hoy"}
	}`

	got, err := DecodeContent(BlockTypeTwoColumns, []byte(raw))
	require.NoError(t, err)

	tc, ok := got.(TwoColumnsContent)
	require.True(t, ok)
	require.NotNil(t, tc.LeftContent.Text)
	assert.Nil(t, tc.LeftContent.Image)
	assert.Equal(t, "Antes era un local vacío", tc.LeftContent.Text.Text)
	require.NotNil(t, tc.RightContent.Image)
	assert.Equal(t, "https://x/local.jpg", tc.RightContent.Image.URL)
	assert.NoError(t, tc.Validate())

	encoded, err := EncodeContent(tc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"leftType": "text",
		"rightType": "image",
		"leftContent": {"text": "Antes era un local vacío"},
		"rightContent": {"url": "https://x/local.jpg", "caption": "hoy"}
	}`, string(encoded))
}

func TestTwoColumnsValidation(t *testing.T) {
	_, err := ParseContent(BlockTypeTwoColumns, []byte(`{"leftType":"text","rightType":"image","leftContent":{"text":""},"rightContent":{"url":"https://x"}}`))
	assert.Error(t, err)

	_, err = ParseContent(BlockTypeTwoColumns, []byte(`{"leftType":"table","rightType":"image","leftContent":{},"rightContent":{"url":"https://x"}}`))
	assert.Error(t, err)
}

func TestDecodeUnknownTypeIsPlaceholder(t *testing.T) {
	raw := []byte(`{"rows":[[1,2],[3,4]]}`)

	got, err := DecodeContent(BlockType("table"), raw)
	require.NoError(t, err)

	u, ok := got.(UnsupportedContent)
	require.True(t, ok)
	assert.Equal(t, BlockType("table"), u.Type)
	assert.Equal(t, BlockTypeUnsupported, u.BlockType())
	assert.ErrorIs(t, u.Validate(), ErrUnsupportedBlockType)

	encoded, err := EncodeContent(u)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(encoded))
}

func TestParseContentRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		typ  BlockType
		raw  string
	}{
		{"unknown type", BlockType("table"), `{}`},
		{"empty text", BlockTypeText, `{"text":""}`},
		{"image without url", BlockTypeImage, `{"caption":"x"}`},
		{"empty gallery", BlockTypeGallery, `{"images":[]}`},
		{"gallery image without url", BlockTypeGallery, `{"images":[{"caption":"x"}]}`},
		{"video bad type", BlockTypeVideo, `{"url":"https://x","type":"dailymotion"}`},
		{"quote missing", BlockTypeQuote, `{"author":"x"}`},
		{"malformed json", BlockTypeText, `{"text":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContent(tt.typ, []byte(tt.raw))
			assert.Error(t, err)
			if tt.typ.IsValid() {
				assert.ErrorIs(t, err, ErrInvalidContent)
			}
		})
	}
}

func TestBlockJSONShowsPlaceholder(t *testing.T) {
	content, err := DecodeContent(BlockType("map"), []byte(`{"lat":1}`))
	require.NoError(t, err)

	out, err := json.Marshal(Block{ID: "b1", Type: "map", Content: content, Supported: false})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"b1","blockType":"map","content":{"originalType":"map","raw":{"lat":1}},"orderIndex":0,"supported":false}`, string(out))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "gallery of 2 images", Summary(GalleryContent{Images: []ImageContent{{URL: "a"}, {URL: "b"}}}))
	assert.Equal(t, "youtube video", Summary(VideoContent{URL: "u", Type: VideoTypeYoutube}))
	assert.Equal(t, `unsupported block "map"`, Summary(UnsupportedContent{Type: "map"}))
	assert.Equal(t, "two columns (text | image)", Summary(TwoColumnsContent{LeftType: ColumnTypeText, RightType: ColumnTypeImage}))
}

func ptr[T any](v T) *T {
	return &v
}
