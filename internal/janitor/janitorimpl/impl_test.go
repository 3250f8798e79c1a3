package janitorimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelbites/reelbites/internal/docstore"
	"github.com/reelbites/reelbites/internal/domain"
	"github.com/reelbites/reelbites/pkg/logger"
)

type memStore struct {
	collections map[string][]docstore.Document
	deleted     []string
	failAll     bool
}

func (m *memStore) QueryEquals(context.Context, string, string, any) ([]docstore.Document, error) {
	return nil, nil
}

func (m *memStore) QueryIn(context.Context, string, string, []string) ([]docstore.Document, error) {
	return nil, nil
}

func (m *memStore) QueryAll(_ context.Context, collection string) ([]docstore.Document, error) {
	if m.failAll {
		return nil, errors.New("store down")
	}
	return m.collections[collection], nil
}

func (m *memStore) Delete(_ context.Context, collection, id string) error {
	m.deleted = append(m.deleted, collection+"/"+id)
	return nil
}

func likeDoc(id, videoID string) docstore.Document {
	return docstore.Document{ID: id, Fields: map[string]any{
		"userId":  "u1",
		"videoId": videoID,
		"type":    "like",
	}}
}

func TestRunOnce_DeletesOrphanedLikes(t *testing.T) {
	store := &memStore{collections: map[string][]docstore.Document{
		domain.CollectionVideos: {
			{ID: "v1", Fields: map[string]any{}},
		},
		domain.CollectionLikes: {
			likeDoc("l1", "v1"),
			likeDoc("l2", "v-deleted"),
			likeDoc("l3", ""),
		},
	}}

	j := New(Opts{Store: store, Logger: logger.NewNop()})
	deleted, err := j.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, []string{"likes/l2"}, store.deleted, "only the orphan goes; blank video ids are left alone")
}

func TestRunOnce_NothingToDo(t *testing.T) {
	store := &memStore{collections: map[string][]docstore.Document{
		domain.CollectionVideos: {{ID: "v1", Fields: map[string]any{}}},
		domain.CollectionLikes:  {likeDoc("l1", "v1")},
	}}

	j := New(Opts{Store: store, Logger: logger.NewNop()})
	deleted, err := j.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Empty(t, store.deleted)
}

func TestRunOnce_StoreFailure(t *testing.T) {
	j := New(Opts{Store: &memStore{failAll: true}, Logger: logger.NewNop()})

	_, err := j.RunOnce(context.Background())
	require.Error(t, err)
}
