package recommend

import (
	"context"

	"github.com/reelbites/reelbites/internal/domain"
)

// ShuffleSource is where fallback randomness comes from. *math/rand.Rand
// satisfies it; tests inject a seeded one for determinism.
type ShuffleSource interface {
	Shuffle(n int, swap func(i, j int))
}

// Client computes personalized feeds by co-like collaborative filtering:
// videos liked by users who liked what the viewer liked.
type Client interface {
	// GetRecommendedVideos returns feed items for the viewer, newest first.
	// An empty viewer id yields an empty result without touching the store.
	// When there is no like signal to work from, it degrades to the discover
	// feed: every video, enriched and shuffled.
	GetRecommendedVideos(ctx context.Context, viewerID string) ([]domain.FeedItem, error)

	// GetDiscoverFeed returns every video enriched, in randomized order.
	GetDiscoverFeed(ctx context.Context) ([]domain.FeedItem, error)
}
