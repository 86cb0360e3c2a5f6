package settings

import "encoding/json"

// Merge decodes an externally sourced document (remote fetch, remote push or
// cached copy) onto a fresh copy of the defaults, field by field. A field is
// taken from the document only when it is present and of the expected shape;
// anything missing or malformed keeps its default. A document written by an
// older or newer schema version therefore heals instead of crashing, and a
// partial document (say, only "contact") never blows away other sections.
func Merge(raw []byte) SiteSettings {
	merged := Default()

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return merged
	}

	if sec, ok := section(doc, "contact"); ok {
		mergeStringSlice(&merged.Contact.AddressLines, sec, "addressLines")
		mergeString(&merged.Contact.MapLink, sec, "mapLink")
		mergeString(&merged.Contact.Phone, sec, "phone")
		mergeString(&merged.Contact.PhoneDial, sec, "phoneDial")
		mergeString(&merged.Contact.Messenger, sec, "messenger")
		mergeString(&merged.Contact.Email, sec, "email")
		mergeString(&merged.Contact.Hours, sec, "hours")
	}

	if raw, ok := doc["socials"]; ok {
		var socials map[string]string
		if err := json.Unmarshal(raw, &socials); err == nil {
			for platform, url := range socials {
				merged.Socials[platform] = url
			}
		}
	}

	if sec, ok := section(doc, "media"); ok {
		mergeString(&merged.Media.HeroVideoURL, sec, "heroVideoUrl")
		mergeString(&merged.Media.HeroPosterURL, sec, "heroPosterUrl")
		mergeString(&merged.Media.Fit, sec, "fit")
		mergeString(&merged.Media.Position, sec, "position")
	}

	if sec, ok := section(doc, "promotions"); ok {
		mergeBool(&merged.Promotions.Enabled, sec, "enabled")
		if raw, ok := sec["items"]; ok {
			var items []Promotion
			if err := json.Unmarshal(raw, &items); err == nil {
				merged.Promotions.Items = items
			}
		}
	}

	if sec, ok := section(doc, "gallery"); ok {
		mergeGallery(&merged.Gallery, sec)
	}

	return merged
}

func mergeGallery(g *Gallery, sec map[string]json.RawMessage) {
	mergeInt(&g.AssetVersion, sec, "assetVersion")
	if g.AssetVersion < 1 {
		g.AssetVersion = 1
	}

	mergeString(&g.Mode, sec, "mode")
	if g.Mode != GalleryModeNumbered && g.Mode != GalleryModeCustom {
		g.Mode = defaultSettings.Gallery.Mode
	}

	mergeInt(&g.InitialCount, sec, "initialCount")
	mergeInt(&g.PageSize, sec, "pageSize")
	mergeString(&g.TileFit, sec, "tileFit")

	if fn, ok := section(sec, "featuredNails"); ok {
		mergeBool(&g.FeaturedNails.Enabled, fn, "enabled")
		mergeString(&g.FeaturedNails.Title, fn, "title")
		mergeStringSlice(&g.FeaturedNails.ImageURLs, fn, "imageUrls")
	}

	if fv, ok := section(sec, "featuredVideo"); ok {
		mergeBool(&g.FeaturedVideo.Enabled, fv, "enabled")
		mergeString(&g.FeaturedVideo.VideoURL, fv, "videoUrl")
		mergeString(&g.FeaturedVideo.PosterURL, fv, "posterUrl")
	}

	if num, ok := section(sec, "numbered"); ok {
		mergeString(&g.Numbered.Folder, num, "folder")
		mergeInt(&g.Numbered.Start, num, "start")
		mergeInt(&g.Numbered.End, num, "end")
		mergeString(&g.Numbered.Extension, num, "extension")
		mergeIntSlice(&g.Numbered.Order, num, "order")
	}

	mergeStringSlice(&g.CustomImages, sec, "customImages")
}

func section(fields map[string]json.RawMessage, key string) (map[string]json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok {
		return nil, false
	}

	var sec map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sec); err != nil {
		return nil, false
	}

	return sec, true
}

func mergeString(dst *string, fields map[string]json.RawMessage, key string) {
	raw, ok := fields[key]
	if !ok {
		return
	}

	var v string
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

func mergeBool(dst *bool, fields map[string]json.RawMessage, key string) {
	raw, ok := fields[key]
	if !ok {
		return
	}

	var v bool
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

func mergeInt(dst *int, fields map[string]json.RawMessage, key string) {
	raw, ok := fields[key]
	if !ok {
		return
	}

	// Documents written by loosely typed clients may hold "5" or 5.0 here.
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		*dst = int(f)
		return
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var parsed float64
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			*dst = int(parsed)
		}
	}
}

func mergeStringSlice(dst *[]string, fields map[string]json.RawMessage, key string) {
	raw, ok := fields[key]
	if !ok {
		return
	}

	var v []string
	if err := json.Unmarshal(raw, &v); err == nil && v != nil {
		*dst = v
	}
}

func mergeIntSlice(dst *[]int, fields map[string]json.RawMessage, key string) {
	raw, ok := fields[key]
	if !ok {
		return
	}

	var v []int
	if err := json.Unmarshal(raw, &v); err == nil && v != nil {
		*dst = v
	}
}
