package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type BlockType string

const (
	BlockTypeText       BlockType = "text"
	BlockTypeImage      BlockType = "image"
	BlockTypeGallery    BlockType = "gallery"
	BlockTypeVideo      BlockType = "video"
	BlockTypeQuote      BlockType = "quote"
	BlockTypeTwoColumns BlockType = "two_columns"

	// BlockTypeUnsupported is what readers see for a stored type this version does not know.
	BlockTypeUnsupported BlockType = "unsupported"
)

var BlockTypes = []BlockType{
	BlockTypeText,
	BlockTypeImage,
	BlockTypeGallery,
	BlockTypeVideo,
	BlockTypeQuote,
	BlockTypeTwoColumns,
}

func (t BlockType) IsValid() bool {
	switch t {
	case BlockTypeText, BlockTypeImage, BlockTypeGallery, BlockTypeVideo, BlockTypeQuote, BlockTypeTwoColumns:
		return true
	}
	return false
}

var (
	ErrUnsupportedBlockType = errors.New("unsupported block type")
	ErrInvalidContent       = errors.New("invalid block content")
)

var validate = validator.New()

// Content is the payload of a content block. The set of implementations is closed.
type Content interface {
	BlockType() BlockType
	Validate() error
	isContent()
}

type TextContent struct {
	Text string `json:"text" validate:"required"`
}

type ImageContent struct {
	URL     string  `json:"url" validate:"required"`
	Caption *string `json:"caption,omitempty"`
	Alt     *string `json:"alt,omitempty"`
}

type GalleryContent struct {
	Images []ImageContent `json:"images" validate:"required,min=1,dive"`
}

type VideoContent struct {
	URL         string    `json:"url" validate:"required"`
	Type        VideoType `json:"type" validate:"required,oneof=youtube vimeo upload"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
}

type QuoteContent struct {
	Quote  string  `json:"quote" validate:"required"`
	Author *string `json:"author,omitempty"`
	Role   *string `json:"role,omitempty"`
}

type ColumnType string

const (
	ColumnTypeText  ColumnType = "text"
	ColumnTypeImage ColumnType = "image"
)

// ColumnContent is one side of a two-column block: either text or an image.
type ColumnContent struct {
	Text  *TextContent
	Image *ImageContent
}

func (cc ColumnContent) MarshalJSON() ([]byte, error) {
	switch {
	case cc.Image != nil:
		return json.Marshal(cc.Image)
	case cc.Text != nil:
		return json.Marshal(cc.Text)
	}
	return []byte("{}"), nil
}

func decodeColumn(t ColumnType, raw json.RawMessage) (ColumnContent, error) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = []byte("{}")
	}
	switch t {
	case ColumnTypeText:
		var text TextContent
		if err := json.Unmarshal(raw, &text); err != nil {
			return ColumnContent{}, err
		}
		return ColumnContent{Text: &text}, nil
	case ColumnTypeImage:
		var img ImageContent
		if err := json.Unmarshal(raw, &img); err != nil {
			return ColumnContent{}, err
		}
		return ColumnContent{Image: &img}, nil
	}
	return ColumnContent{}, fmt.Errorf("invalid column type %q", t)
}

func (cc ColumnContent) validate(t ColumnType) error {
	switch t {
	case ColumnTypeText:
		if cc.Text == nil {
			return errors.New("text column is missing its text")
		}
		return validate.Struct(cc.Text)
	case ColumnTypeImage:
		if cc.Image == nil {
			return errors.New("image column is missing its image")
		}
		return validate.Struct(cc.Image)
	}
	return fmt.Errorf("invalid column type %q", t)
}

type TwoColumnsContent struct {
	LeftType     ColumnType    `json:"leftType"`
	RightType    ColumnType    `json:"rightType"`
	LeftContent  ColumnContent `json:"leftContent"`
	RightContent ColumnContent `json:"rightContent"`
}

func (tc *TwoColumnsContent) UnmarshalJSON(data []byte) error {
	var raw struct {
		LeftType     ColumnType      `json:"leftType"`
		RightType    ColumnType      `json:"rightType"`
		LeftContent  json.RawMessage `json:"leftContent"`
		RightContent json.RawMessage `json:"rightContent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	left, err := decodeColumn(raw.LeftType, raw.LeftContent)
	if err != nil {
		return fmt.Errorf("left column: %w", err)
	}
	right, err := decodeColumn(raw.RightType, raw.RightContent)
	if err != nil {
		return fmt.Errorf("right column: %w", err)
	}

	*tc = TwoColumnsContent{
		LeftType:     raw.LeftType,
		RightType:    raw.RightType,
		LeftContent:  left,
		RightContent: right,
	}
	return nil
}

// UnsupportedContent keeps a payload whose block type is unknown so it can be shown
// as a placeholder and written back untouched.
type UnsupportedContent struct {
	Type BlockType       `json:"originalType"`
	Raw  json.RawMessage `json:"raw,omitempty"`
}

func (TextContent) BlockType() BlockType        { return BlockTypeText }
func (ImageContent) BlockType() BlockType       { return BlockTypeImage }
func (GalleryContent) BlockType() BlockType     { return BlockTypeGallery }
func (VideoContent) BlockType() BlockType       { return BlockTypeVideo }
func (QuoteContent) BlockType() BlockType       { return BlockTypeQuote }
func (TwoColumnsContent) BlockType() BlockType  { return BlockTypeTwoColumns }
func (UnsupportedContent) BlockType() BlockType { return BlockTypeUnsupported }

func (c TextContent) Validate() error    { return validate.Struct(c) }
func (c ImageContent) Validate() error   { return validate.Struct(c) }
func (c GalleryContent) Validate() error { return validate.Struct(c) }
func (c VideoContent) Validate() error   { return validate.Struct(c) }
func (c QuoteContent) Validate() error   { return validate.Struct(c) }

func (c TwoColumnsContent) Validate() error {
	if err := c.LeftContent.validate(c.LeftType); err != nil {
		return fmt.Errorf("left column: %w", err)
	}
	if err := c.RightContent.validate(c.RightType); err != nil {
		return fmt.Errorf("right column: %w", err)
	}
	return nil
}

func (c UnsupportedContent) Validate() error {
	return fmt.Errorf("%w: %s", ErrUnsupportedBlockType, c.Type)
}

func (TextContent) isContent()        {}
func (ImageContent) isContent()       {}
func (GalleryContent) isContent()     {}
func (VideoContent) isContent()       {}
func (QuoteContent) isContent()       {}
func (TwoColumnsContent) isContent()  {}
func (UnsupportedContent) isContent() {}

func decodeInto[T Content](raw []byte) (Content, error) {
	var c T
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeContent parses a stored payload according to its block type. An unknown
// type is not an error: it decodes to UnsupportedContent.
func DecodeContent(t BlockType, raw []byte) (Content, error) {
	var (
		c   Content
		err error
	)

	switch t {
	case BlockTypeText:
		c, err = decodeInto[TextContent](raw)
	case BlockTypeImage:
		c, err = decodeInto[ImageContent](raw)
	case BlockTypeGallery:
		c, err = decodeInto[GalleryContent](raw)
	case BlockTypeVideo:
		c, err = decodeInto[VideoContent](raw)
	case BlockTypeQuote:
		c, err = decodeInto[QuoteContent](raw)
	case BlockTypeTwoColumns:
		c, err = decodeInto[TwoColumnsContent](raw)
	default:
		return UnsupportedContent{Type: t, Raw: append(json.RawMessage{}, raw...)}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s content: %w", t, err)
	}
	return c, nil
}

// ParseContent decodes and validates a payload submitted for writing.
func ParseContent(t BlockType, raw []byte) (Content, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBlockType, t)
	}

	c, err := DecodeContent(t, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	return c, nil
}

func EncodeContent(c Content) ([]byte, error) {
	if u, ok := c.(UnsupportedContent); ok {
		return u.Raw, nil
	}
	return json.Marshal(c)
}

// Block is a decoded content block ready to be sent to a renderer.
type Block struct {
	ID         string    `json:"id"`
	Type       BlockType `json:"blockType"`
	Content    Content   `json:"content"`
	OrderIndex int       `json:"orderIndex"`
	Supported  bool      `json:"supported"`
}

// Summary gives a short plain-text description of a block, used in listings and logs.
func Summary(c Content) string {
	switch v := c.(type) {
	case TextContent:
		return truncate(v.Text, 80)
	case ImageContent:
		if v.Caption != nil && *v.Caption != "" {
			return "image: " + *v.Caption
		}
		return "image"
	case GalleryContent:
		return fmt.Sprintf("gallery of %d images", len(v.Images))
	case VideoContent:
		if v.Title != nil && *v.Title != "" {
			return fmt.Sprintf("%s video: %s", v.Type, *v.Title)
		}
		return fmt.Sprintf("%s video", v.Type)
	case QuoteContent:
		return "“" + truncate(v.Quote, 60) + "”"
	case TwoColumnsContent:
		return fmt.Sprintf("two columns (%s | %s)", v.LeftType, v.RightType)
	case UnsupportedContent:
		return fmt.Sprintf("unsupported block %q", v.Type)
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
