package feedimpl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelbites/reelbites/internal/docstore"
	"github.com/reelbites/reelbites/internal/domain"
	"github.com/reelbites/reelbites/pkg/config"
	"github.com/reelbites/reelbites/pkg/logger"
)

var errProfiles = errors.New("profiles unavailable")

type stubStore struct {
	mu    sync.Mutex
	users []docstore.Document
	fail  bool
}

func (s *stubStore) QueryEquals(context.Context, string, string, any) ([]docstore.Document, error) {
	return nil, nil
}

func (s *stubStore) QueryIn(context.Context, string, string, []string) ([]docstore.Document, error) {
	return nil, nil
}

func (s *stubStore) QueryAll(_ context.Context, collection string) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errProfiles
	}
	if collection == domain.CollectionUsers {
		return s.users, nil
	}
	return nil, nil
}

func (s *stubStore) Delete(context.Context, string, string) error { return nil }

func (s *stubStore) setUsers(docs []docstore.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = docs
}

type stubResolver struct {
	err  error
	miss bool
}

func (r stubResolver) GetPublicURL(_ context.Context, bucket, path string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.miss || path == "" {
		return "", nil
	}
	return "https://cdn.test/" + bucket + "/" + path, nil
}

var fixedNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newEnricher(store *stubStore, resolver stubResolver) *EnricherImpl {
	cfg := &config.Config{}
	cfg.S3.Bucket = "videos"

	e := New(Opts{
		Store:  store,
		Media:  resolver,
		Config: cfg,
		Logger: logger.NewNop(),
	})
	e.now = func() time.Time { return fixedNow }
	return e
}

func profileDoc(id, name, username, photo, restaurant string) docstore.Document {
	return docstore.Document{ID: id, Fields: map[string]any{
		"displayName":  name,
		"username":     username,
		"photoURL":     photo,
		"restaurantId": restaurant,
	}}
}

func TestEnrich_EmptyInput(t *testing.T) {
	e := newEnricher(&stubStore{}, stubResolver{})

	items, err := e.Enrich(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestEnrich_FullProfile(t *testing.T) {
	store := &stubStore{}
	store.setUsers([]docstore.Document{
		profileDoc("u1", "Ada", "@ada", "pics/ada.jpg", "rest-9"),
	})
	e := newEnricher(store, stubResolver{})

	items, err := e.Enrich(context.Background(), []domain.VideoRecord{{
		ID:         "v1",
		UploaderID: "u1",
		Caption:    "pho night",
		MediaRef:   "v1.mp4",
		UploadedAt: fixedNow.Add(-47 * time.Minute),
		Views:      12,
	}})

	require.NoError(t, err)
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "v1", item.ID)
	assert.Equal(t, "https://cdn.test/videos/v1.mp4", item.VideoSrc)
	assert.Equal(t, "pho night", item.Caption)
	assert.Equal(t, "Ada", item.UploaderName)
	assert.Equal(t, "@ada", item.UploaderUsername)
	assert.Equal(t, "pics/ada.jpg", item.UploaderProfilePic)
	assert.Equal(t, "rest-9", item.UploaderRestaurantID)
	assert.Equal(t, "47 minutes ago", item.TimeUploaded)
	assert.Equal(t, 12, item.Views)
}

func TestEnrich_ProfileMissDefaults(t *testing.T) {
	e := newEnricher(&stubStore{}, stubResolver{})

	items, err := e.Enrich(context.Background(), []domain.VideoRecord{{
		ID:         "v1",
		UploaderID: "ghost",
		UploadedAt: fixedNow,
	}})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Unknown", items[0].UploaderName)
	assert.Equal(t, "@unknown", items[0].UploaderUsername)
	assert.Empty(t, items[0].UploaderProfilePic)
	assert.Empty(t, items[0].UploaderRestaurantID)
}

func TestEnrich_MediaMissGivesEmptySrc(t *testing.T) {
	e := newEnricher(&stubStore{}, stubResolver{miss: true})

	items, err := e.Enrich(context.Background(), []domain.VideoRecord{{ID: "v1", MediaRef: "gone.mp4"}})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].VideoSrc)
}

func TestEnrich_ResolverErrorDegradesToEmptySrc(t *testing.T) {
	e := newEnricher(&stubStore{}, stubResolver{err: errors.New("presign failed")})

	items, err := e.Enrich(context.Background(), []domain.VideoRecord{{ID: "v1", MediaRef: "v1.mp4"}})

	require.NoError(t, err, "resolver trouble must not fail the feed")
	require.Len(t, items, 1)
	assert.Empty(t, items[0].VideoSrc)
}

func TestEnrich_RelativeAgeBuckets(t *testing.T) {
	e := newEnricher(&stubStore{}, stubResolver{})

	records := []domain.VideoRecord{
		{ID: "minutes", UploadedAt: fixedNow.Add(-59 * time.Minute)},
		{ID: "hours", UploadedAt: fixedNow.Add(-23 * time.Hour)},
		{ID: "days", UploadedAt: fixedNow.Add(-49 * time.Hour)},
		{ID: "future", UploadedAt: fixedNow.Add(time.Hour)},
	}

	items, err := e.Enrich(context.Background(), records)

	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "59 minutes ago", items[0].TimeUploaded)
	assert.Equal(t, "23 hours ago", items[1].TimeUploaded)
	assert.Equal(t, "2 days ago", items[2].TimeUploaded)
	assert.Equal(t, "0 minutes ago", items[3].TimeUploaded)
}

func TestEnrich_Idempotent(t *testing.T) {
	store := &stubStore{}
	store.setUsers([]docstore.Document{profileDoc("u1", "Ada", "@ada", "", "")})
	e := newEnricher(store, stubResolver{})

	records := []domain.VideoRecord{{ID: "v1", UploaderID: "u1", MediaRef: "v1.mp4", UploadedAt: fixedNow.Add(-time.Hour)}}

	first, err := e.Enrich(context.Background(), records)
	require.NoError(t, err)
	second, err := e.Enrich(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEnrich_ProfileAlwaysFresh(t *testing.T) {
	store := &stubStore{}
	store.setUsers([]docstore.Document{profileDoc("u1", "Ada", "@ada", "", "")})
	e := newEnricher(store, stubResolver{})

	records := []domain.VideoRecord{{ID: "v1", UploaderID: "u1", UploadedAt: fixedNow}}

	first, err := e.Enrich(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, "Ada", first[0].UploaderName)

	store.setUsers([]docstore.Document{profileDoc("u1", "Ada Lovelace", "@ada", "", "")})

	second, err := e.Enrich(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", second[0].UploaderName, "profile edits must show on the next fetch")
}

func TestEnrich_StoreFailurePropagates(t *testing.T) {
	e := newEnricher(&stubStore{fail: true}, stubResolver{})

	items, err := e.Enrich(context.Background(), []domain.VideoRecord{{ID: "v1"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, errProfiles)
	assert.Nil(t, items)
}

func TestEnrich_PreservesInputOrder(t *testing.T) {
	e := newEnricher(&stubStore{}, stubResolver{})

	records := make([]domain.VideoRecord, 25)
	for i := range records {
		records[i] = domain.VideoRecord{ID: string(rune('a' + i)), UploadedAt: fixedNow}
	}

	items, err := e.Enrich(context.Background(), records)

	require.NoError(t, err)
	require.Len(t, items, len(records))
	for i, rec := range records {
		assert.Equal(t, rec.ID, items[i].ID)
	}
}
