package handler

import (
	"github.com/mirellenails/salon-backend/internal/gallery"
	"github.com/mirellenails/salon-backend/internal/settings"
)

type GalleryResponse struct {
	Images       []string         `json:"images"`
	Featured     FeaturedResponse `json:"featured"`
	InitialCount int              `json:"initialCount"`
	PageSize     int              `json:"pageSize"`
	TileFit      string           `json:"tileFit"`
}

type FeaturedResponse struct {
	Enabled bool     `json:"enabled"`
	Title   string   `json:"title"`
	Images  []string `json:"images"`
}

type PromotionsResponse struct {
	Promotions []settings.Promotion `json:"promotions"`
}

func NewGalleryResponse(g settings.Gallery) GalleryResponse {
	return GalleryResponse{
		Images: gallery.Resolve(g),
		Featured: FeaturedResponse{
			Enabled: g.FeaturedNails.Enabled,
			Title:   g.FeaturedNails.Title,
			Images:  gallery.ResolveFeatured(g),
		},
		InitialCount: g.InitialCount,
		PageSize:     g.PageSize,
		TileFit:      g.TileFit,
	}
}
