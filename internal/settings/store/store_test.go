package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mirellenails/salon-backend/internal/settings"
	mockstore "github.com/mirellenails/salon-backend/internal/settings/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var errUnexpected = errors.New("unexpected error")

func newTestStore(t *testing.T) (*Store, *mockstore.MockRemoteStore, *mockstore.MockLocalCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRemote := mockstore.NewMockRemoteStore(ctrl)
	mockCache := mockstore.NewMockLocalCache(ctrl)

	return New(mockRemote, mockCache, zap.NewNop()), mockRemote, mockCache
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		cachedValue   string
		cacheError    error
		expectedEmail string
	}{
		{
			name:          "cached document merged onto defaults",
			cachedValue:   `{"contact":{"email":"cached@x.com"}}`,
			expectedEmail: "cached@x.com",
		},
		{
			name:          "cache miss yields defaults",
			cachedValue:   "",
			expectedEmail: settings.Default().Contact.Email,
		},
		{
			name:          "cache error yields defaults",
			cacheError:    errUnexpected,
			expectedEmail: settings.Default().Contact.Email,
		},
		{
			name:          "corrupt cache yields defaults",
			cachedValue:   "{broken",
			expectedEmail: settings.Default().Contact.Email,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, mockCache := newTestStore(t)

			mockCache.EXPECT().Get(gomock.Any(), CacheKey).Return(tt.cachedValue, tt.cacheError)

			loaded := s.Load(context.Background())

			assert.Equal(t, tt.expectedEmail, loaded.Contact.Email)
			assert.Equal(t, tt.expectedEmail, s.Snapshot().Contact.Email)
		})
	}
}

func TestInitializeFromRemoteWithExistingDocument(t *testing.T) {
	s, mockRemote, mockCache := newTestStore(t)

	mockRemote.EXPECT().Fetch(gomock.Any()).Return([]byte(`{"contact":{"email":"remote@x.com"}}`), nil)
	mockRemote.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Return(func() {}, nil)
	mockCache.EXPECT().Set(gomock.Any(), CacheKey, gomock.Any()).Return(nil).AnyTimes()

	initialized := s.InitializeFromRemote(context.Background())

	assert.Equal(t, "remote@x.com", initialized.Contact.Email)
	// Every other field healed from defaults.
	assert.Equal(t, settings.Default().Gallery, initialized.Gallery)
}

func TestInitializeFromRemoteSeedsAbsentDocument(t *testing.T) {
	s, mockRemote, mockCache := newTestStore(t)

	mockRemote.EXPECT().Fetch(gomock.Any()).Return(nil, ErrDocumentNotFound)
	mockRemote.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
	mockRemote.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Return(func() {}, nil)
	mockCache.EXPECT().Set(gomock.Any(), CacheKey, gomock.Any()).Return(nil).AnyTimes()

	initialized := s.InitializeFromRemote(context.Background())

	assert.Equal(t, settings.Default(), initialized)

	// Connectivity was established, so a save pushes through.
	next := s.Snapshot()
	next.Contact.Email = "edited@x.com"

	mockRemote.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)

	s.Save(context.Background(), next)

	assert.Equal(t, "edited@x.com", s.Snapshot().Contact.Email)
}

func TestInitializeFromRemoteDegradesToLocalOnFailure(t *testing.T) {
	s, mockRemote, mockCache := newTestStore(t)

	mockRemote.EXPECT().Fetch(gomock.Any()).Return(nil, errUnexpected)
	mockRemote.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errUnexpected)
	mockCache.EXPECT().Set(gomock.Any(), CacheKey, gomock.Any()).Return(nil).AnyTimes()

	initialized := s.InitializeFromRemote(context.Background())

	assert.Equal(t, settings.Default(), initialized)

	// Local-only from here on: no remote Write is expected.
	next := s.Snapshot()
	next.Contact.Email = "offline@x.com"

	s.Save(context.Background(), next)

	assert.Equal(t, "offline@x.com", s.Snapshot().Contact.Email)
}

func TestSaveSwallowsRemotePushFailure(t *testing.T) {
	s, mockRemote, mockCache := newTestStore(t)

	mockRemote.EXPECT().Fetch(gomock.Any()).Return([]byte(`{}`), nil)
	mockRemote.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Return(func() {}, nil)
	mockCache.EXPECT().Set(gomock.Any(), CacheKey, gomock.Any()).Return(nil).AnyTimes()

	s.InitializeFromRemote(context.Background())

	next := s.Snapshot()
	next.Contact.Email = "edited@x.com"

	mockRemote.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errUnexpected)

	s.Save(context.Background(), next)

	// The local value stays durable despite the failed push.
	assert.Equal(t, "edited@x.com", s.Snapshot().Contact.Email)
}

func TestRemotePushOverwritesCanonicalButNotDraft(t *testing.T) {
	s, mockRemote, mockCache := newTestStore(t)

	var onChange func([]byte)

	mockRemote.EXPECT().Fetch(gomock.Any()).Return([]byte(`{}`), nil)
	mockRemote.EXPECT().
		Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, change func([]byte), fail func(error)) (func(), error) {
			onChange = change
			return func() {}, nil
		})
	mockCache.EXPECT().Set(gomock.Any(), CacheKey, gomock.Any()).Return(nil).AnyTimes()
	mockRemote.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.InitializeFromRemote(context.Background())

	draft := s.BeginEdit()
	draft.Settings.Contact.Email = "draft@x.com"

	onChange([]byte(`{"contact":{"email":"pushed@x.com"}}`))

	// The push lands on the canonical value; the unsaved draft is untouched.
	assert.Equal(t, "pushed@x.com", s.Snapshot().Contact.Email)
	assert.Equal(t, "draft@x.com", draft.Settings.Contact.Email)

	// An explicit commit afterwards wins, last write takes the document.
	require.True(t, draft.Commit(context.Background()))
	assert.Equal(t, "draft@x.com", s.Snapshot().Contact.Email)
}

func TestDraftCommitsAtMostOnce(t *testing.T) {
	s, _, mockCache := newTestStore(t)

	mockCache.EXPECT().Set(gomock.Any(), CacheKey, gomock.Any()).Return(nil).AnyTimes()

	draft := s.BeginEdit()
	draft.Settings.Contact.Email = "draft@x.com"

	require.True(t, draft.Commit(context.Background()))
	assert.False(t, draft.Commit(context.Background()))
}

func TestDiscardedDraftNeverLands(t *testing.T) {
	s, _, _ := newTestStore(t)

	before := s.Snapshot()

	draft := s.BeginEdit()
	draft.Settings.Contact.Email = "draft@x.com"
	draft.Discard()

	assert.False(t, draft.Commit(context.Background()))
	assert.Equal(t, before, s.Snapshot())
}

func TestEditingSnapshotDoesNotLeak(t *testing.T) {
	s, _, _ := newTestStore(t)

	snapshot := s.Snapshot()
	snapshot.Contact.AddressLines[0] = "mutated"
	snapshot.Socials["instagram"] = "mutated"

	assert.NotEqual(t, "mutated", s.Snapshot().Contact.AddressLines[0])
	assert.NotEqual(t, "mutated", s.Snapshot().Socials["instagram"])
}

func TestReset(t *testing.T) {
	s, _, mockCache := newTestStore(t)

	mockCache.EXPECT().Set(gomock.Any(), CacheKey, gomock.Any()).Return(nil).AnyTimes()

	next := s.Snapshot()
	next.Contact.Email = "edited@x.com"
	s.Save(context.Background(), next)

	restored := s.Reset(context.Background())

	assert.Equal(t, settings.Default(), restored)
	assert.Equal(t, settings.Default(), s.Snapshot())
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s, _, mockCache := newTestStore(t)

	mockCache.EXPECT().Set(gomock.Any(), CacheKey, gomock.Any()).Return(nil).AnyTimes()

	changes, cancel := s.Subscribe()
	defer cancel()

	next := s.Snapshot()
	next.Contact.Email = "published@x.com"
	s.Save(context.Background(), next)

	select {
	case value := <-changes:
		assert.Equal(t, "published@x.com", value.Contact.Email)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestCancelledSubscriptionChannelCloses(t *testing.T) {
	s, _, _ := newTestStore(t)

	changes, cancel := s.Subscribe()
	cancel()

	_, open := <-changes
	assert.False(t, open)

	// A second cancel is harmless.
	cancel()
}
