package recommendimpl

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/reelbites/reelbites/internal/docstore"
	"github.com/reelbites/reelbites/internal/domain"
	"github.com/reelbites/reelbites/internal/feed"
	"github.com/reelbites/reelbites/internal/recommend"
	"github.com/reelbites/reelbites/pkg/errors"
	"github.com/reelbites/reelbites/pkg/logger"
)

type Opts struct {
	fx.In

	Store    docstore.Store
	Enricher feed.Enricher
	Logger   logger.Logger
}

type RecommenderImpl struct {
	Store    docstore.Store
	Enricher feed.Enricher
	Logger   logger.Logger

	// shuffle overrides the per-call randomness source when set.
	shuffle recommend.ShuffleSource
}

func New(opts Opts) *RecommenderImpl {
	return &RecommenderImpl{
		Store:    opts.Store,
		Enricher: opts.Enricher,
		Logger:   opts.Logger,
	}
}

var _ recommend.Client = (*RecommenderImpl)(nil)

// GetRecommendedVideos walks the co-like graph two hops out from the viewer:
// own likes -> users who liked the same videos -> everything those users
// liked. Already-seen videos are excluded and the remainder is fetched,
// enriched and ordered newest first. Every step that fans out over a value
// set is chunked to the store's membership-query limit; a failure at any
// step aborts the whole call.
func (r *RecommenderImpl) GetRecommendedVideos(ctx context.Context, viewerID string) ([]domain.FeedItem, error) {
	if viewerID == "" {
		return []domain.FeedItem{}, nil
	}

	ownLiked, err := r.fetchOwnLikedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(ownLiked) == 0 {
		r.Logger.Debug("Viewer has no likes, serving discover feed", "viewer_id", viewerID)
		return r.GetDiscoverFeed(ctx)
	}

	similarUsers, err := r.findSimilarUsers(ctx, viewerID, ownLiked)
	if err != nil {
		return nil, err
	}
	if len(similarUsers) == 0 {
		r.Logger.Debug("No similar users found, serving discover feed", "viewer_id", viewerID)
		return r.GetDiscoverFeed(ctx)
	}

	candidates, err := r.findCandidateVideos(ctx, similarUsers, ownLiked)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		r.Logger.Debug("No unseen candidates, serving discover feed", "viewer_id", viewerID)
		return r.GetDiscoverFeed(ctx)
	}

	videos, err := r.fetchVideos(ctx, candidates)
	if err != nil {
		return nil, err
	}

	items, err := r.Enricher.Enrich(ctx, videos)
	if err != nil {
		return nil, err
	}

	sortNewestFirst(items)
	return items, nil
}

// GetDiscoverFeed serves the no-signal path: all videos, enriched, in a
// fresh random order on every call.
func (r *RecommenderImpl) GetDiscoverFeed(ctx context.Context) ([]domain.FeedItem, error) {
	docs, err := r.Store.QueryAll(ctx, domain.CollectionVideos)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch videos")
	}

	items, err := r.Enricher.Enrich(ctx, domain.VideoRecordsFromDocuments(docs))
	if err != nil {
		return nil, err
	}

	shuffler := r.shuffle
	if shuffler == nil {
		shuffler = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	shuffler.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	return items, nil
}

func (r *RecommenderImpl) fetchOwnLikedIDs(ctx context.Context, viewerID string) ([]string, error) {
	docs, err := r.Store.QueryEquals(ctx, domain.CollectionLikes, domain.FieldUserID, viewerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch viewer likes")
	}

	var ids []string
	for _, doc := range docs {
		like := domain.LikeFromDocument(doc)
		if like.IsLike() && like.VideoID != "" {
			ids = append(ids, like.VideoID)
		}
	}
	return lo.Uniq(ids), nil
}

func (r *RecommenderImpl) findSimilarUsers(ctx context.Context, viewerID string, ownLiked []string) ([]string, error) {
	docs, err := r.queryLikesIn(ctx, domain.FieldVideoID, ownLiked)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch co-likers")
	}

	var users []string
	for _, doc := range docs {
		like := domain.LikeFromDocument(doc)
		if like.IsLike() && like.UserID != "" && like.UserID != viewerID {
			users = append(users, like.UserID)
		}
	}
	return lo.Uniq(users), nil
}

func (r *RecommenderImpl) findCandidateVideos(ctx context.Context, similarUsers, ownLiked []string) ([]string, error) {
	docs, err := r.queryLikesIn(ctx, domain.FieldUserID, similarUsers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch similar users' likes")
	}

	seen := make(map[string]struct{}, len(ownLiked))
	for _, id := range ownLiked {
		seen[id] = struct{}{}
	}

	var candidates []string
	for _, doc := range docs {
		like := domain.LikeFromDocument(doc)
		if !like.IsLike() || like.VideoID == "" {
			continue
		}
		if _, ok := seen[like.VideoID]; ok {
			continue
		}
		candidates = append(candidates, like.VideoID)
	}
	return lo.Uniq(candidates), nil
}

func (r *RecommenderImpl) fetchVideos(ctx context.Context, ids []string) ([]domain.VideoRecord, error) {
	docs, err := r.queryChunked(ctx, domain.CollectionVideos, docstore.FieldID, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch candidate videos")
	}
	return domain.VideoRecordsFromDocuments(docs), nil
}

func (r *RecommenderImpl) queryLikesIn(ctx context.Context, field string, values []string) ([]docstore.Document, error) {
	return r.queryChunked(ctx, domain.CollectionLikes, field, values)
}

// queryChunked fans a membership query out over ≤10-value chunks. Chunks run
// concurrently and are merged in chunk order once all have completed.
func (r *RecommenderImpl) queryChunked(ctx context.Context, collection, field string, values []string) ([]docstore.Document, error) {
	chunks := lo.Chunk(values, docstore.MaxInValues)
	results := make([][]docstore.Document, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			docs, err := r.Store.QueryIn(gctx, collection, field, chunk)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lo.Flatten(results), nil
}

func sortNewestFirst(items []domain.FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})
}
