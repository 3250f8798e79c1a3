package janitorimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/docstore"
	"github.com/reelbites/reelbites/internal/domain"
	"github.com/reelbites/reelbites/internal/janitor"
	"github.com/reelbites/reelbites/pkg/logger"
)

type Opts struct {
	fx.In

	Store  docstore.Store
	Logger logger.Logger
}

type JanitorImpl struct {
	Store  docstore.Store
	Logger logger.Logger
}

func New(opts Opts) *JanitorImpl {
	return &JanitorImpl{
		Store:  opts.Store,
		Logger: opts.Logger,
	}
}

var _ janitor.Client = (*JanitorImpl)(nil)

// Schedule sets up a daily job that prunes orphaned like documents.
func (j *JanitorImpl) Schedule(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	// At 3:00 AM every day
	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)),
		),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				j.Logger.Info("Context cancelled, stopping like cleanup job")
				return
			}

			j.Logger.Info("Starting scheduled like cleanup job")

			cleanupCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()

			deleted, err := j.RunOnce(cleanupCtx)
			if err != nil {
				j.Logger.Error("Failed to clean up orphaned likes", "error", err)
				return
			}

			j.Logger.Info("Like cleanup completed successfully", "likes_deleted", deleted)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule like cleanup: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		j.Logger.Info("Stopping like cleanup scheduler")
		if err := scheduler.Shutdown(); err != nil {
			j.Logger.Error("Failed to shut down cleanup scheduler", "error", err)
		}
	}()

	return nil
}

func (j *JanitorImpl) RunOnce(ctx context.Context) (int, error) {
	videoDocs, err := j.Store.QueryAll(ctx, domain.CollectionVideos)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch videos: %w", err)
	}

	existing := make(map[string]struct{}, len(videoDocs))
	for _, doc := range videoDocs {
		existing[doc.ID] = struct{}{}
	}

	likeDocs, err := j.Store.QueryAll(ctx, domain.CollectionLikes)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch likes: %w", err)
	}

	deleted := 0
	for _, doc := range likeDocs {
		like := domain.LikeFromDocument(doc)
		if like.VideoID == "" {
			continue
		}
		if _, ok := existing[like.VideoID]; ok {
			continue
		}

		if err := j.Store.Delete(ctx, domain.CollectionLikes, doc.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete orphaned like %s: %w", doc.ID, err)
		}
		deleted++
	}

	return deleted, nil
}
