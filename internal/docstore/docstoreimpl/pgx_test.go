package docstoreimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelbites/reelbites/internal/docstore"
	"github.com/reelbites/reelbites/pkg/logger"
)

// These cases exercise the guards that run before any connection is touched,
// so a nil pool is fine.

func TestQueryIn_FanOutLimitEnforced(t *testing.T) {
	s := NewPgxStore(nil, logger.NewNop())

	values := make([]string, docstore.MaxInValues+1)
	for i := range values {
		values[i] = "v"
	}

	docs, err := s.QueryIn(context.Background(), "likes", "videoId", values)

	require.Error(t, err)
	assert.ErrorIs(t, err, docstore.ErrFanOutExceeded)
	assert.Nil(t, docs)
}

func TestQueryIn_EmptyValueListShortCircuits(t *testing.T) {
	s := NewPgxStore(nil, logger.NewNop())

	docs, err := s.QueryIn(context.Background(), "likes", "videoId", nil)

	require.NoError(t, err)
	assert.Empty(t, docs)
}
