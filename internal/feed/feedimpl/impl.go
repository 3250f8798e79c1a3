package feedimpl

import (
	"context"
	"time"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/reelbites/reelbites/internal/docstore"
	"github.com/reelbites/reelbites/internal/domain"
	"github.com/reelbites/reelbites/internal/feed"
	"github.com/reelbites/reelbites/internal/media"
	"github.com/reelbites/reelbites/pkg/config"
	"github.com/reelbites/reelbites/pkg/errors"
	"github.com/reelbites/reelbites/pkg/formatter"
	"github.com/reelbites/reelbites/pkg/logger"
)

// resolveConcurrency bounds parallel media URL resolutions per batch.
const resolveConcurrency = 10

type Opts struct {
	fx.In

	Store  docstore.Store
	Media  media.Resolver
	Config *config.Config
	Logger logger.Logger
}

type EnricherImpl struct {
	Store  docstore.Store
	Media  media.Resolver
	Bucket string
	Logger logger.Logger

	now func() time.Time
}

func New(opts Opts) *EnricherImpl {
	return &EnricherImpl{
		Store:  opts.Store,
		Media:  opts.Media,
		Bucket: opts.Config.S3.Bucket,
		Logger: opts.Logger,
		now:    time.Now,
	}
}

var _ feed.Enricher = (*EnricherImpl)(nil)

// Enrich resolves uploader profiles and media URLs for a batch of videos.
//
// The whole users collection is re-read on every call so that profile edits
// show up on the very next feed fetch. A per-uploader batched lookup would
// be cheaper, but always-fresh is the contract the rest of the app relies on.
func (e *EnricherImpl) Enrich(ctx context.Context, videos []domain.VideoRecord) ([]domain.FeedItem, error) {
	if len(videos) == 0 {
		return []domain.FeedItem{}, nil
	}

	profileDocs, err := e.Store.QueryAll(ctx, domain.CollectionUsers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user profiles")
	}

	profiles := make(map[string]domain.UserProfile, len(profileDocs))
	for _, doc := range profileDocs {
		p := domain.UserProfileFromDocument(doc)
		profiles[p.ID] = p
	}

	now := e.now()
	items := make([]domain.FeedItem, len(videos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	for i, rec := range videos {
		g.Go(func() error {
			src, err := e.Media.GetPublicURL(gctx, e.Bucket, rec.MediaRef)
			if err != nil {
				// A video without a playable source still renders; the UI
				// handles the empty URL.
				e.Logger.Warn("Failed to resolve media URL", "video_id", rec.ID, "media_ref", rec.MediaRef, "error", err)
				src = ""
			}

			items[i] = buildFeedItem(rec, profiles, src, now)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}

func buildFeedItem(rec domain.VideoRecord, profiles map[string]domain.UserProfile, videoSrc string, now time.Time) domain.FeedItem {
	profile, ok := profiles[rec.UploaderID]
	if !ok {
		profile = domain.UnknownProfile(rec.UploaderID)
	}

	return domain.FeedItem{
		ID:                   rec.ID,
		VideoSrc:             videoSrc,
		Caption:              rec.Caption,
		UploaderName:         profile.DisplayName,
		UploaderUsername:     profile.Username,
		UploaderProfilePic:   profile.PhotoURL,
		UploaderRestaurantID: profile.RestaurantID,
		TimeUploaded:         formatter.RelativeAge(now, rec.UploadedAt),
		Views:                rec.Views,
		UploadedAt:           rec.UploadedAt,
	}
}
