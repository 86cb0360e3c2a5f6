package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/mirellenails/salon-backend/internal/settings"
	"go.uber.org/zap"
)

// CacheKey is the fixed key of the locally cached settings document.
const CacheKey = "site_settings"

var ErrDocumentNotFound = errors.New("document not found")

//go:generate mockgen -source=store.go -destination=mocks/mock.go -package=mockstore

// RemoteStore is the hosted document store the settings document syncs with.
// Fetch returns ErrDocumentNotFound when no document has been written yet.
// Subscribe delivers every subsequent remote write to onChange until the
// returned stop function is called.
type RemoteStore interface {
	Fetch(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, doc []byte) error
	Subscribe(ctx context.Context, onChange func(doc []byte), onError func(err error)) (func(), error)
}

// LocalCache is the offline fallback. A miss is ("", nil), not an error.
type LocalCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// Store owns the canonical SiteSettings value and keeps it synchronized
// between the local cache, the remote store and live subscribers. Remote
// unavailability at any stage never takes the value away: the store always
// serves defaults, the cached copy, or the last known document.
type Store struct {
	remote RemoteStore
	cache  LocalCache
	logger *zap.Logger

	mu        sync.RWMutex
	current   settings.SiteSettings
	connected bool

	subsMu sync.Mutex
	subs   map[chan settings.SiteSettings]struct{}

	stopSubscription func()
}

func New(remote RemoteStore, cache LocalCache, logger *zap.Logger) *Store {
	return &Store{
		remote:  remote,
		cache:   cache,
		logger:  logger,
		current: settings.Default(),
		subs:    make(map[chan settings.SiteSettings]struct{}),
	}
}

// Load reads the cached copy and makes it canonical. An absent or corrupt
// cache entry degrades to the compiled-in defaults; Load never fails.
func (s *Store) Load(ctx context.Context) settings.SiteSettings {
	cached, err := s.cache.Get(ctx, CacheKey)
	if err != nil {
		s.logger.Warn("failed to read settings cache", zap.Error(err))
		cached = ""
	}

	loaded := settings.Merge([]byte(cached))

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	return loaded.Clone()
}

// InitializeFromRemote fetches the remote document, makes it canonical and
// establishes the live subscription. When no remote document exists yet, the
// current local document is pushed up as the initial value. Every failure is
// logged and swallowed; the store keeps operating on local data.
func (s *Store) InitializeFromRemote(ctx context.Context) settings.SiteSettings {
	raw, err := s.remote.Fetch(ctx)

	switch {
	case err == nil:
		merged := settings.Merge(raw)
		s.replace(ctx, merged)
		s.setConnected(true)
	case errors.Is(err, ErrDocumentNotFound):
		if err := s.push(ctx, s.Snapshot()); err != nil {
			s.logger.Warn("failed to write initial settings document", zap.Error(err))
		} else {
			s.setConnected(true)
		}
	default:
		s.logger.Warn("failed to fetch settings document", zap.Error(err))
	}

	stop, err := s.remote.Subscribe(ctx, s.onRemoteChange, func(err error) {
		s.logger.Warn("settings subscription error", zap.Error(err))
	})
	if err != nil {
		s.logger.Warn("failed to subscribe to settings document", zap.Error(err))
	} else {
		s.stopSubscription = stop
		s.setConnected(true)
	}

	return s.Snapshot()
}

// Save makes next the canonical value, writes it through to the local cache
// and, if remote connectivity was ever established, pushes it to the remote
// store best-effort. Whichever of a local save and a remote push lands last
// wins; there is no conflict resolution beyond that.
func (s *Store) Save(ctx context.Context, next settings.SiteSettings) {
	s.replace(ctx, next.Clone())

	if s.isConnected() {
		if err := s.push(ctx, next); err != nil {
			s.logger.Warn("failed to push settings document", zap.Error(err))
		}
	}
}

// Reset restores the compiled-in defaults with the same write-through
// behavior as Save.
func (s *Store) Reset(ctx context.Context) settings.SiteSettings {
	defaults := settings.Default()
	s.Save(ctx, defaults)

	return defaults
}

// Snapshot returns a deep copy of the canonical value.
func (s *Store) Snapshot() settings.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.Clone()
}

// Subscribe returns a channel receiving every change of the canonical value
// and a function that cancels the subscription. Slow receivers miss updates
// rather than block the store.
func (s *Store) Subscribe() (<-chan settings.SiteSettings, func()) {
	ch := make(chan settings.SiteSettings, 1)

	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	cancel := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()

		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}

	return ch, cancel
}

// Close tears down the remote subscription and all change-feed channels.
func (s *Store) Close() {
	if s.stopSubscription != nil {
		s.stopSubscription()
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

// onRemoteChange merges a pushed document onto defaults and makes it
// canonical, overwriting any concurrent local edit (last write wins).
func (s *Store) onRemoteChange(doc []byte) {
	merged := settings.Merge(doc)
	s.replace(context.Background(), merged)
}

func (s *Store) replace(ctx context.Context, next settings.SiteSettings) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if err := s.writeCache(ctx, next); err != nil {
		s.logger.Warn("failed to write settings cache", zap.Error(err))
	}

	s.broadcast(next)
}

func (s *Store) writeCache(ctx context.Context, value settings.SiteSettings) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.cache.Set(ctx, CacheKey, string(raw))
}

func (s *Store) push(ctx context.Context, value settings.SiteSettings) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.remote.Write(ctx, raw)
}

func (s *Store) broadcast(value settings.SiteSettings) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for ch := range s.subs {
		select {
		case ch <- value.Clone():
		default:
		}
	}
}

func (s *Store) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}

func (s *Store) isConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.connected
}
