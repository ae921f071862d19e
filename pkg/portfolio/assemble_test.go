package portfolio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func img(id string, t ImageType, order int) Image {
	return Image{ID: id, ProjectID: "p1", URL: "https://cdn.example.com/" + id + ".jpg", Type: t, OrderIndex: order}
}

func ids(images []Image) []string {
	out := make([]string, 0, len(images))
	for _, i := range images {
		out = append(out, i.ID)
	}
	return out
}

func TestAssembleProjectSortsGalleryByOrderIndex(t *testing.T) {
	images := []Image{
		img("g2", ImageTypeGallery, 2),
		img("g0", ImageTypeGallery, 0),
		img("g1", ImageTypeGallery, 1),
	}

	view := AssembleProject(Project{ID: "p1"}, images, nil)

	require.Len(t, view.GalleryImages, 3)
	assert.Equal(t, []string{"g0", "g1", "g2"}, ids(view.GalleryImages))
	for i, got := range view.GalleryImages {
		assert.Equal(t, i, got.OrderIndex)
		assert.Equal(t, "https://cdn.example.com/"+got.ID+".jpg", got.URL)
	}
	assert.Empty(t, view.BeforeImages)
	assert.Empty(t, view.AfterImages)
	assert.NotNil(t, view.Videos)
}

func TestAssembleProjectPartitionsAreDisjointAndComplete(t *testing.T) {
	images := []Image{
		img("a", ImageTypeGallery, 5),
		img("b", ImageTypeBefore, 0),
		img("c", ImageTypeAfter, 0),
		img("d", ImageTypeBefore, 3),
		img("e", ImageTypeGallery, 1),
		img("f", ImageTypeAfter, 9),
		img("g", ImageTypeAfter, 4),
	}

	view := AssembleProject(Project{ID: "p1"}, images, nil)

	seen := map[string]ImageType{}
	for _, bucket := range [][]Image{view.GalleryImages, view.BeforeImages, view.AfterImages} {
		for _, i := range bucket {
			_, dup := seen[i.ID]
			assert.False(t, dup, "image %s in two buckets", i.ID)
			seen[i.ID] = i.Type
		}
	}
	assert.Len(t, seen, len(images))
	assert.Len(t, view.Images, len(images))

	for _, bucket := range [][]Image{view.GalleryImages, view.BeforeImages, view.AfterImages} {
		for i := 1; i < len(bucket); i++ {
			assert.LessOrEqual(t, bucket[i-1].OrderIndex, bucket[i].OrderIndex)
		}
	}
}

func TestAssembleProjectKeepsGaps(t *testing.T) {
	images := []Image{
		img("x", ImageTypeBefore, 7),
		img("y", ImageTypeBefore, 2),
	}

	view := AssembleProject(Project{ID: "p1"}, images, nil)

	assert.Equal(t, []string{"y", "x"}, ids(view.BeforeImages))
	assert.Equal(t, 2, view.BeforeImages[0].OrderIndex)
	assert.Equal(t, 7, view.BeforeImages[1].OrderIndex)
}

func TestAssembleProjectIsIndependentOfInputOrder(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	images := []Image{
		img("a", ImageTypeGallery, 0),
		img("b", ImageTypeGallery, 0),
		img("c", ImageTypeGallery, 1),
		img("d", ImageTypeAfter, 0),
		img("e", ImageTypeBefore, 0),
	}
	images[0].CreatedAt = now
	images[1].CreatedAt = now
	videos := []Video{
		{ID: "v2", Type: VideoTypeVimeo, URL: "https://vimeo.com/2", OrderIndex: 1},
		{ID: "v1", Type: VideoTypeYoutube, URL: "https://youtu.be/abc", OrderIndex: 0},
	}

	want := AssembleProject(Project{ID: "p1"}, images, videos)

	r := rand.New(rand.NewSource(42))
	for n := 0; n < 20; n++ {
		shuffledImages := append([]Image{}, images...)
		shuffledVideos := append([]Video{}, videos...)
		r.Shuffle(len(shuffledImages), func(i, j int) { shuffledImages[i], shuffledImages[j] = shuffledImages[j], shuffledImages[i] })
		r.Shuffle(len(shuffledVideos), func(i, j int) { shuffledVideos[i], shuffledVideos[j] = shuffledVideos[j], shuffledVideos[i] })

		got := AssembleProject(Project{ID: "p1"}, shuffledImages, shuffledVideos)
		assert.Equal(t, want, got)
	}
}

func TestAssembleProjectOrdersVideosAndFillsEmbedURL(t *testing.T) {
	videos := []Video{
		{ID: "v2", Type: VideoTypeVimeo, URL: "https://vimeo.com/76979871", OrderIndex: 3},
		{ID: "v1", Type: VideoTypeYoutube, URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", OrderIndex: 1},
	}

	view := AssembleProject(Project{ID: "p1"}, nil, videos)

	require.Len(t, view.Videos, 2)
	assert.Equal(t, "v1", view.Videos[0].ID)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", view.Videos[0].EmbedURL)
	assert.Equal(t, "https://player.vimeo.com/video/76979871", view.Videos[1].EmbedURL)
}

func TestAssembleProjectDoesNotMutateInput(t *testing.T) {
	images := []Image{img("b", ImageTypeGallery, 1), img("a", ImageTypeGallery, 0)}

	AssembleProject(Project{ID: "p1"}, images, nil)

	assert.Equal(t, "b", images[0].ID)
}
