package settings

// defaultSettings is the compiled-in document. Every externally sourced
// document is merged onto a copy of it, so a partial or malformed document can
// never leave a field without a usable value.
var defaultSettings = SiteSettings{
	Contact: Contact{
		AddressLines: []string{"Mirelle Nails Studio", "12 Rosemary Lane", "Dublin 2"},
		MapLink:      "https://maps.google.com/?q=Mirelle+Nails+Studio",
		Phone:        "+353 1 555 0123",
		PhoneDial:    "+35315550123",
		Messenger:    "+35315550123",
		Email:        "hello@mirellenails.ie",
		Hours:        "Mon-Sat 9:00-19:00",
	},
	Socials: map[string]string{
		"instagram": "https://instagram.com/mirellenails",
		"facebook":  "https://facebook.com/mirellenails",
	},
	Media: Media{
		HeroVideoURL:  "/media/hero.mp4",
		HeroPosterURL: "/media/hero-poster.jpg",
		Fit:           "cover",
		Position:      "center",
	},
	Promotions: Promotions{
		Enabled: false,
		Items:   []Promotion{},
	},
	Gallery: Gallery{
		AssetVersion: 1,
		Mode:         GalleryModeNumbered,
		InitialCount: 12,
		PageSize:     8,
		TileFit:      "cover",
		FeaturedNails: FeaturedNails{
			Enabled:   false,
			Title:     "Featured nails",
			ImageURLs: []string{},
		},
		FeaturedVideo: FeaturedVideo{},
		Numbered: Numbered{
			Folder:    "/gallery",
			Start:     1,
			End:       24,
			Extension: "jpeg",
		},
		CustomImages: []string{},
	},
}

// Default returns a deep copy of the compiled-in document.
func Default() SiteSettings {
	return defaultSettings.Clone()
}
