package portfolio

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"
)

// compareOrder orders rows by order_index, then creation time, then id, so that
// equal indexes never depend on the order rows were fetched in.
func compareOrder(aIdx, bIdx int, aCreated, bCreated time.Time, aID, bID string) int {
	if c := cmp.Compare(aIdx, bIdx); c != 0 {
		return c
	}
	if c := aCreated.Compare(bCreated); c != 0 {
		return c
	}
	return cmp.Compare(aID, bID)
}

func SortImages(images []Image) []Image {
	out := append(make([]Image, 0, len(images)), images...)
	slices.SortStableFunc(out, func(a, b Image) int {
		return compareOrder(a.OrderIndex, b.OrderIndex, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}

func SortVideos(videos []Video) []Video {
	out := append(make([]Video, 0, len(videos)), videos...)
	slices.SortStableFunc(out, func(a, b Video) int {
		return compareOrder(a.OrderIndex, b.OrderIndex, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}

// PartitionImages groups images by type, each group sorted by order_index.
func PartitionImages(images []Image) map[ImageType][]Image {
	groups := lo.GroupBy(images, func(img Image) ImageType {
		return img.Type
	})

	out := make(map[ImageType][]Image, len(ImageTypes))
	for _, t := range ImageTypes {
		out[t] = SortImages(groups[t])
	}
	return out
}

// AssembleProject builds the view of a project from its flat image and video rows.
// Order indexes are used as stored: gaps left by deletions are kept.
func AssembleProject(project Project, images []Image, videos []Video) ProjectView {
	partitions := PartitionImages(images)

	all := make([]Image, 0, len(images))
	for _, t := range ImageTypes {
		all = append(all, partitions[t]...)
	}
	// rows with an unknown type only show up in the full list
	all = append(all, SortImages(lo.Filter(images, func(img Image, _ int) bool {
		return !img.Type.IsValid()
	}))...)

	sortedVideos := SortVideos(videos)
	for i := range sortedVideos {
		if sortedVideos[i].EmbedURL == "" {
			sortedVideos[i].EmbedURL = EmbedURL(sortedVideos[i].Type, sortedVideos[i].URL)
		}
	}

	if project.Materials == nil {
		project.Materials = map[string]string{}
	}
	if project.Features == nil {
		project.Features = []string{}
	}

	return ProjectView{
		Project:       project,
		Images:        all,
		GalleryImages: partitions[ImageTypeGallery],
		BeforeImages:  partitions[ImageTypeBefore],
		AfterImages:   partitions[ImageTypeAfter],
		Videos:        sortedVideos,
	}
}
