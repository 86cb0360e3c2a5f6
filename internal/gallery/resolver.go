// Package gallery computes the ordered, deduplicated, cache-busted image lists
// for a settings snapshot. Everything here is a pure function of its input.
package gallery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mirellenails/salon-backend/internal/settings"
)

var (
	digitsRe  = regexp.MustCompile(`^\d+$`)
	versionRe = regexp.MustCompile(`([?&])v=\d+`)
)

// Resolve returns the display list for the snapshot's active gallery mode.
func Resolve(g settings.Gallery) []string {
	if g.Mode == settings.GalleryModeCustom {
		return ResolveCustom(g)
	}

	return ResolveNumbered(g)
}

// ResolveNumbered expands the numbered range into image references. Every
// in-range image appears exactly once: manually ordered ones first in the
// given order, the rest following in ascending order. Range bounds coming
// from a half-edited admin form are clamped, never rejected.
func ResolveNumbered(g settings.Gallery) []string {
	start := g.Numbered.Start
	if start < 1 {
		start = 1
	}

	end := g.Numbered.End
	if end < start {
		end = start
	}

	seen := make(map[int]bool, end-start+1)
	sequence := make([]int, 0, end-start+1)

	for _, n := range g.Numbered.Order {
		if n < start || n > end || seen[n] {
			continue
		}

		seen[n] = true
		sequence = append(sequence, n)
	}

	for n := start; n <= end; n++ {
		if !seen[n] {
			sequence = append(sequence, n)
		}
	}

	urls := make([]string, len(sequence))
	for i, n := range sequence {
		urls[i] = fmt.Sprintf("%s/%d.%s?v=%d", g.Numbered.Folder, n, g.Numbered.Extension, g.AssetVersion)
	}

	return urls
}

// ResolveCustom returns the curated URL list in stored order, with empty
// entries dropped. The URLs are already fully qualified.
func ResolveCustom(g settings.Gallery) []string {
	urls := make([]string, 0, len(g.CustomImages))
	for _, u := range g.CustomImages {
		if strings.TrimSpace(u) != "" {
			urls = append(urls, u)
		}
	}

	return urls
}

// ResolveFeatured normalizes the featured-nails list: shorthand entries expand
// to gallery references, relative paths become internal paths with the gallery
// extension defaulted, internal references get the current asset version, and
// the final list is deduplicated keeping first occurrences.
func ResolveFeatured(g settings.Gallery) []string {
	seen := make(map[string]bool, len(g.FeaturedNails.ImageURLs))
	urls := make([]string, 0, len(g.FeaturedNails.ImageURLs))

	for _, raw := range g.FeaturedNails.ImageURLs {
		u, ok := normalizeFeaturedURL(raw, g)
		if !ok || seen[u] {
			continue
		}

		seen[u] = true
		urls = append(urls, u)
	}

	return urls
}

func normalizeFeaturedURL(raw string, g settings.Gallery) (string, bool) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", false
	}

	switch {
	case digitsRe.MatchString(u):
		// Bare number is shorthand for an image of the numbered gallery.
		u = fmt.Sprintf("%s/%s.%s", g.Numbered.Folder, u, g.Numbered.Extension)
	case isAbsolute(u):
		// External URLs pass through untouched.
		return u, true
	default:
		u = internalPath(u, g.Numbered.Extension)
	}

	if isInternal(u, g.Numbered.Folder) {
		u = applyVersion(u, g.AssetVersion)
	}

	return u, true
}

func isAbsolute(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// internalPath turns a relative reference into a rooted path: a bare filename
// lands in /gallery, and a path whose final segment has no extension gets the
// numbered gallery's extension appended, preserving any query string.
func internalPath(u, extension string) string {
	switch {
	case !strings.Contains(u, "/"):
		u = "/gallery/" + u
	case strings.HasPrefix(u, "gallery/"):
		u = "/" + u
	case !strings.HasPrefix(u, "/"):
		u = "/" + u
	}

	path, query, hasQuery := strings.Cut(u, "?")

	lastSegment := path[strings.LastIndex(path, "/")+1:]
	if !strings.Contains(lastSegment, ".") {
		path += "." + extension
	}

	if hasQuery {
		return path + "?" + query
	}

	return path
}

func isInternal(u, folder string) bool {
	if strings.HasPrefix(u, "/gallery/") {
		return true
	}

	return folder != "" && strings.HasPrefix(u, folder+"/")
}

// applyVersion replaces an existing v= parameter or appends one.
func applyVersion(u string, version int) string {
	if versionRe.MatchString(u) {
		return versionRe.ReplaceAllString(u, fmt.Sprintf("${1}v=%d", version))
	}

	separator := "?"
	if strings.Contains(u, "?") {
		separator = "&"
	}

	return fmt.Sprintf("%s%sv=%d", u, separator, version)
}
