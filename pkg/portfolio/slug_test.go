package portfolio

import (
	"strings"
	"testing"
)

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"reforma-cocina", true},
		{"bano-2024", true},
		{"a", true},
		{"", false},
		{"Reforma-Cocina", false},
		{"reforma--cocina", false},
		{"-reforma", false},
		{"reforma-", false},
		{"reforma cocina", false},
		{"reforma_cocina", false},
		{"baño", false},
		{strings.Repeat("a", MaxSlugLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Reforma de Cocina Integral", "reforma-de-cocina-integral"},
		{"Baño en Málaga (2024)", "bano-en-malaga-2024"},
		{"  --Ático  & Terraza--  ", "atico-terraza"},
		{"Pequeña  reforma", "pequena-reforma"},
		{"¿?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if got != "" && !IsValidSlug(got) {
				t.Errorf("Slugify(%q) produced invalid slug %q", tt.title, got)
			}
		})
	}
}
