package feed

import (
	"context"

	"github.com/reelbites/reelbites/internal/domain"
)

// Enricher turns raw video records into display-ready feed items: uploader
// profile data, a playable media URL, and a human-readable age. Every
// feed-like surface (recommended, discover, profile) shares this step.
type Enricher interface {
	Enrich(ctx context.Context, videos []domain.VideoRecord) ([]domain.FeedItem, error)
}
