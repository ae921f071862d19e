package portfolio

import "time"

type ImageType string

const (
	ImageTypeGallery ImageType = "gallery"
	ImageTypeBefore  ImageType = "before"
	ImageTypeAfter   ImageType = "after"
)

var ImageTypes = []ImageType{ImageTypeGallery, ImageTypeBefore, ImageTypeAfter}

func (t ImageType) IsValid() bool {
	switch t {
	case ImageTypeGallery, ImageTypeBefore, ImageTypeAfter:
		return true
	}
	return false
}

type VideoType string

const (
	VideoTypeYoutube VideoType = "youtube"
	VideoTypeVimeo   VideoType = "vimeo"
	VideoTypeUpload  VideoType = "upload"
)

func (t VideoType) IsValid() bool {
	switch t {
	case VideoTypeYoutube, VideoTypeVimeo, VideoTypeUpload:
		return true
	}
	return false
}

type Image struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	URL        string    `json:"imageUrl"`
	Type       ImageType `json:"imageType"`
	Caption    *string   `json:"caption"`
	OrderIndex int       `json:"orderIndex"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	CreatedAt  time.Time `json:"-"`
}

type Video struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	URL         string    `json:"videoUrl"`
	EmbedURL    string    `json:"embedUrl"`
	Type        VideoType `json:"videoType"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	OrderIndex  int       `json:"orderIndex"`
	CreatedAt   time.Time `json:"-"`
}

// Project is the raw project record as stored, without its media.
type Project struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Category       string            `json:"category"`
	CategoryID     *string           `json:"categoryId"`
	Location       string            `json:"location"`
	Description    string            `json:"description"`
	CoverImage     string            `json:"coverImage"`
	Client         string            `json:"client"`
	CompletionDate *time.Time        `json:"completionDate"`
	Area           string            `json:"area"`
	BudgetRange    string            `json:"budgetRange"`
	Materials      map[string]string `json:"materials"`
	Features       []string          `json:"features"`
	Published      bool              `json:"published"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ProjectView is a project with its media split into ordered collections.
type ProjectView struct {
	Project
	Images        []Image `json:"images"`
	GalleryImages []Image `json:"galleryImages"`
	BeforeImages  []Image `json:"beforeImages"`
	AfterImages   []Image `json:"afterImages"`
	Videos        []Video `json:"videos"`
}
