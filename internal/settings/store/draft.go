package store

import (
	"context"

	"github.com/mirellenails/salon-backend/internal/settings"
)

// Draft is an admin-local working copy of the settings document. Edits on it
// are invisible to every other reader until Commit; a remote push arriving
// while a draft is open updates the canonical value but leaves the draft
// untouched.
type Draft struct {
	Settings settings.SiteSettings

	store     *Store
	committed bool
}

// BeginEdit clones the canonical value into a new draft.
func (s *Store) BeginEdit() *Draft {
	return &Draft{
		Settings: s.Snapshot(),
		store:    s,
	}
}

// Commit makes the draft the canonical value with Save's write-through
// behavior. A draft commits at most once.
func (d *Draft) Commit(ctx context.Context) bool {
	if d.committed {
		return false
	}

	d.committed = true
	d.store.Save(ctx, d.Settings)

	return true
}

// Discard drops the draft; the canonical value is unaffected.
func (d *Draft) Discard() {
	d.committed = true
}
