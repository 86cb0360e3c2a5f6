package settings

// SiteSettings is the single site-wide content document. It is stored as one
// JSON row remotely and mirrored to the local cache as an offline fallback.
type SiteSettings struct {
	Contact    Contact           `json:"contact"`
	Socials    map[string]string `json:"socials"`
	Media      Media             `json:"media"`
	Promotions Promotions        `json:"promotions"`
	Gallery    Gallery           `json:"gallery"`
}

type Contact struct {
	AddressLines []string `json:"addressLines"`
	MapLink      string   `json:"mapLink"`
	Phone        string   `json:"phone"`
	PhoneDial    string   `json:"phoneDial"`
	Messenger    string   `json:"messenger"`
	Email        string   `json:"email"`
	Hours        string   `json:"hours"`
}

type Media struct {
	HeroVideoURL  string `json:"heroVideoUrl"`
	HeroPosterURL string `json:"heroPosterUrl"`
	Fit           string `json:"fit"`
	Position      string `json:"position"`
}

type Promotions struct {
	Enabled bool        `json:"enabled"`
	Items   []Promotion `json:"items"`
}

type Promotion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
	CTAText     string `json:"ctaText"`
	ImageURL    string `json:"imageUrl"`
	ValidUntil  string `json:"validUntil"`
}

const (
	GalleryModeNumbered = "numbered"
	GalleryModeCustom   = "custom"
)

type Gallery struct {
	AssetVersion  int           `json:"assetVersion"`
	Mode          string        `json:"mode"`
	InitialCount  int           `json:"initialCount"`
	PageSize      int           `json:"pageSize"`
	TileFit       string        `json:"tileFit"`
	FeaturedNails FeaturedNails `json:"featuredNails"`
	// FeaturedVideo is retained for documents written by older clients.
	FeaturedVideo FeaturedVideo `json:"featuredVideo"`
	Numbered      Numbered      `json:"numbered"`
	CustomImages  []string      `json:"customImages"`
}

type FeaturedNails struct {
	Enabled   bool     `json:"enabled"`
	Title     string   `json:"title"`
	ImageURLs []string `json:"imageUrls"`
}

type FeaturedVideo struct {
	Enabled   bool   `json:"enabled"`
	VideoURL  string `json:"videoUrl"`
	PosterURL string `json:"posterUrl"`
}

// Numbered addresses gallery images by an inclusive integer range and a shared
// filename pattern. Order, when non-empty, is a manual reorder of that range.
type Numbered struct {
	Folder    string `json:"folder"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Extension string `json:"extension"`
	Order     []int  `json:"order,omitempty"`
}

// Clone returns a deep copy, so holders of a snapshot can never mutate the
// canonical document through shared slices or maps.
func (s SiteSettings) Clone() SiteSettings {
	out := s

	out.Contact.AddressLines = append([]string(nil), s.Contact.AddressLines...)

	if s.Socials != nil {
		out.Socials = make(map[string]string, len(s.Socials))
		for k, v := range s.Socials {
			out.Socials[k] = v
		}
	}

	out.Promotions.Items = append([]Promotion(nil), s.Promotions.Items...)

	out.Gallery.FeaturedNails.ImageURLs = append([]string(nil), s.Gallery.FeaturedNails.ImageURLs...)
	out.Gallery.Numbered.Order = append([]int(nil), s.Gallery.Numbered.Order...)
	out.Gallery.CustomImages = append([]string(nil), s.Gallery.CustomImages...)

	return out
}
