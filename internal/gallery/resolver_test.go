package gallery

import (
	"fmt"
	"testing"

	"github.com/mirellenails/salon-backend/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedGallery(start, end int, order []int) settings.Gallery {
	return settings.Gallery{
		AssetVersion: 1,
		Mode:         settings.GalleryModeNumbered,
		Numbered: settings.Numbered{
			Folder:    "/gallery",
			Start:     start,
			End:       end,
			Extension: "jpeg",
			Order:     order,
		},
	}
}

func TestResolveNumbered(t *testing.T) {
	tests := []struct {
		name     string
		gallery  settings.Gallery
		expected []string
	}{
		{
			name:    "natural ascending order",
			gallery: numberedGallery(1, 3, nil),
			expected: []string{
				"/gallery/1.jpeg?v=1",
				"/gallery/2.jpeg?v=1",
				"/gallery/3.jpeg?v=1",
			},
		},
		{
			name:    "manual order first, rest backfilled ascending",
			gallery: numberedGallery(1, 3, []int{3, 1}),
			expected: []string{
				"/gallery/3.jpeg?v=1",
				"/gallery/1.jpeg?v=1",
				"/gallery/2.jpeg?v=1",
			},
		},
		{
			name:    "out of range and duplicate order entries dropped",
			gallery: numberedGallery(2, 4, []int{7, 3, 3, 0, 2}),
			expected: []string{
				"/gallery/3.jpeg?v=1",
				"/gallery/2.jpeg?v=1",
				"/gallery/4.jpeg?v=1",
			},
		},
		{
			name:    "non-positive start clamps to 1",
			gallery: numberedGallery(-5, 2, nil),
			expected: []string{
				"/gallery/1.jpeg?v=1",
				"/gallery/2.jpeg?v=1",
			},
		},
		{
			name:     "end below start clamps to single image",
			gallery:  numberedGallery(4, 2, nil),
			expected: []string{"/gallery/4.jpeg?v=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveNumbered(tt.gallery))
		})
	}
}

func TestResolveNumberedAlwaysCoversRange(t *testing.T) {
	orders := [][]int{
		nil,
		{},
		{5, 5, 5},
		{9, 8, 7, 6, 5, 4, 3, 2, 1},
		{100, -3, 4},
	}

	for _, order := range orders {
		t.Run(fmt.Sprintf("order=%v", order), func(t *testing.T) {
			g := numberedGallery(3, 9, order)

			resolved := ResolveNumbered(g)

			require.Len(t, resolved, 7)

			seen := make(map[string]bool)
			for _, u := range resolved {
				require.False(t, seen[u], "duplicate entry %s", u)
				seen[u] = true
			}
		})
	}
}

func TestResolveNumberedIsIdempotent(t *testing.T) {
	g := numberedGallery(1, 5, []int{4, 2})

	first := ResolveNumbered(g)
	second := ResolveNumbered(g)

	assert.Equal(t, first, second)
}

func TestResolveCustom(t *testing.T) {
	g := settings.Gallery{
		Mode: settings.GalleryModeCustom,
		CustomImages: []string{
			"https://cdn.example.com/a.png",
			"",
			"  ",
			"https://cdn.example.com/b.png",
		},
	}

	assert.Equal(t, []string{
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.png",
	}, ResolveCustom(g))
}

func TestResolveDispatchesOnMode(t *testing.T) {
	g := numberedGallery(1, 2, nil)
	g.CustomImages = []string{"https://cdn.example.com/a.png"}

	assert.Len(t, Resolve(g), 2)

	g.Mode = settings.GalleryModeCustom

	assert.Equal(t, []string{"https://cdn.example.com/a.png"}, Resolve(g))
}

func TestResolveFeatured(t *testing.T) {
	tests := []struct {
		name         string
		assetVersion int
		input        []string
		expected     []string
	}{
		{
			name:         "digits expand to numbered gallery shorthand",
			assetVersion: 4,
			input:        []string{"12"},
			expected:     []string{"/gallery/12.jpeg?v=4"},
		},
		{
			name:         "bare filename lands in gallery with default extension",
			assetVersion: 2,
			input:        []string{"nails1"},
			expected:     []string{"/gallery/nails1.jpeg?v=2"},
		},
		{
			name:         "absolute url passes through unversioned",
			assetVersion: 3,
			input:        []string{"https://cdn.x.com/a.png"},
			expected:     []string{"https://cdn.x.com/a.png"},
		},
		{
			name:         "existing version parameter is replaced, not appended",
			assetVersion: 5,
			input:        []string{"/gallery/7.jpeg?v=3"},
			expected:     []string{"/gallery/7.jpeg?v=5"},
		},
		{
			name:         "gallery-relative path gains leading slash",
			assetVersion: 1,
			input:        []string{"gallery/8.jpeg"},
			expected:     []string{"/gallery/8.jpeg?v=1"},
		},
		{
			name:         "non-gallery internal path stays unversioned",
			assetVersion: 1,
			input:        []string{"media/promo"},
			expected:     []string{"/media/promo.jpeg"},
		},
		{
			name:         "blank entries dropped, duplicates collapse to first occurrence",
			assetVersion: 1,
			input:        []string{"", "12", " 12 ", "nails1"},
			expected:     []string{"/gallery/12.jpeg?v=1", "/gallery/nails1.jpeg?v=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := settings.Gallery{
				AssetVersion: tt.assetVersion,
				Numbered: settings.Numbered{
					Folder:    "/gallery",
					Extension: "jpeg",
				},
				FeaturedNails: settings.FeaturedNails{
					ImageURLs: tt.input,
				},
			}

			assert.Equal(t, tt.expected, ResolveFeatured(g))
		})
	}
}

func TestResolveFeaturedKeepsQueryWhenDefaultingExtension(t *testing.T) {
	g := settings.Gallery{
		AssetVersion: 2,
		Numbered: settings.Numbered{
			Folder:    "/gallery",
			Extension: "jpeg",
		},
		FeaturedNails: settings.FeaturedNails{
			ImageURLs: []string{"gallery/15?w=200"},
		},
	}

	assert.Equal(t, []string{"/gallery/15.jpeg?w=200&v=2"}, ResolveFeatured(g))
}
