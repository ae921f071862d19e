package util

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type validationForm struct {
	Title     string `binding:"strNotEmpty,cmin=3,cmax=20"`
	Slug      string `binding:"slug"`
	ImageType string `binding:"imageType"`
	VideoType string `binding:"omitempty,videoType"`
	BlockType string `binding:"omitempty,blockType"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestCustomValidations(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		form      validationForm
		wantField string
	}{
		{"valid", validationForm{Title: "Reforma ático", Slug: "reforma-atico", ImageType: "before", VideoType: "vimeo", BlockType: "two_columns"}, ""},
		{"blank title", validationForm{Title: "   ", Slug: "a", ImageType: "gallery"}, "Title"},
		{"title too short after trim", validationForm{Title: " ab ", Slug: "a", ImageType: "gallery"}, "Title"},
		{"bad slug", validationForm{Title: "Reforma", Slug: "Reforma Atico", ImageType: "gallery"}, "Slug"},
		{"bad image type", validationForm{Title: "Reforma", Slug: "a", ImageType: "hero"}, "ImageType"},
		{"bad video type", validationForm{Title: "Reforma", Slug: "a", ImageType: "after", VideoType: "dailymotion"}, "VideoType"},
		{"bad block type", validationForm{Title: "Reforma", Slug: "a", ImageType: "after", BlockType: "table"}, "BlockType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			msgs := GenerateErrorMessages(err)
			require.NotEmpty(t, msgs)
			assert.Equal(t, tt.wantField, msgs[0].Field)
			assert.Contains(t, msgs[0].Message, tt.wantField)
		})
	}
}

func TestGenerateErrorMessagesNonValidation(t *testing.T) {
	msgs := GenerateErrorMessages(gorm.ErrRecordNotFound)
	assert.Equal(t, []ApiError{{Field: "Unknown", Message: "Record not found"}}, msgs)

	msgs = GenerateErrorMessages(errors.New("slug already taken"), "slug")
	assert.Equal(t, []ApiError{{Field: "slug", Message: "slug already taken"}}, msgs)
}
