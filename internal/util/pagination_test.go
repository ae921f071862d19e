package util

import (
	"testing"

	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize uint
		want     int
	}{
		{"no items", 0, 10, 1},
		{"exact pages", 20, 10, 2},
		{"partial page", 21, 10, 3},
		{"default size", 13, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotalPage(tt.total, tt.pageSize))
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0)
	assert.Equal(t, uint(1), page)
	assert.Equal(t, uint(constant.DefaultPageSize), size)

	_, size = NormalizePage(3, 1000)
	assert.Equal(t, uint(constant.MaxPageSize), size)

	assert.Equal(t, 24, PageOffset(3, 12))
}
