package settings

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// validUntil accepts either a bare date or a full timestamp.
var validUntilLayouts = []string{time.RFC3339, "2006-01-02"}

// DisplayEligible reports whether the promotion should be shown: the title
// must be non-empty and validUntil, when set, must not be a past date. An
// unparseable validUntil never hides a promotion the admin typed in.
func (p Promotion) DisplayEligible(now time.Time) bool {
	if strings.TrimSpace(p.Title) == "" {
		return false
	}

	if p.ValidUntil == "" {
		return true
	}

	for _, layout := range validUntilLayouts {
		if t, err := time.Parse(layout, p.ValidUntil); err == nil {
			return t.After(now)
		}
	}

	return true
}

// Active returns the display-eligible promotions in stored order. The list is
// empty when the promotions block is disabled.
func (p Promotions) Active(now time.Time) []Promotion {
	if !p.Enabled {
		return []Promotion{}
	}

	active := make([]Promotion, 0, len(p.Items))
	for _, item := range p.Items {
		if item.DisplayEligible(now) {
			active = append(active, item)
		}
	}

	return active
}

// NewPromotionID generates the opaque token a promotion keeps for its whole
// lifetime, across edits and reorders.
func NewPromotionID() string {
	return uuid.New().String()
}

// Add appends the promotion; a missing id is generated.
func (p *Promotions) Add(item Promotion) Promotion {
	if item.ID == "" {
		item.ID = NewPromotionID()
	}

	p.Items = append(p.Items, item)

	return item
}

// Update replaces the promotion with the same id in place, keeping its
// position. Returns false when no promotion has that id.
func (p *Promotions) Update(item Promotion) bool {
	for i := range p.Items {
		if p.Items[i].ID == item.ID {
			p.Items[i] = item
			return true
		}
	}

	return false
}

// Remove deletes the promotion by id, preserving the order of the rest.
func (p *Promotions) Remove(id string) bool {
	for i := range p.Items {
		if p.Items[i].ID == id {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			return true
		}
	}

	return false
}

// Move swaps the promotion with its neighbor: delta -1 moves it up, +1 down.
// A move past either end is a no-op.
func (p *Promotions) Move(id string, delta int) bool {
	if delta != -1 && delta != 1 {
		return false
	}

	for i := range p.Items {
		if p.Items[i].ID != id {
			continue
		}

		j := i + delta
		if j < 0 || j >= len(p.Items) {
			return false
		}

		p.Items[i], p.Items[j] = p.Items[j], p.Items[i]

		return true
	}

	return false
}
