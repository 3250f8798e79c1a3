package mediaimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/media"
	"github.com/reelbites/reelbites/pkg/config"
	"github.com/reelbites/reelbites/pkg/logger"
	"github.com/reelbites/reelbites/pkg/retry"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config *config.Config
	Logger logger.Logger
}

// MinioResolver resolves media references against S3-compatible object
// storage using presigned GET URLs.
type MinioResolver struct {
	client *minio.Client
	ttl    time.Duration
	logger logger.Logger
}

func New(opts Opts) (*MinioResolver, error) {
	cfg := opts.Config.S3

	client, err := minio.New(strings.TrimPrefix(cfg.Endpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	r := &MinioResolver{
		client: client,
		ttl:    time.Duration(cfg.URLTTLMins) * time.Minute,
		logger: opts.Logger,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return retry.Do(ctx, opts.Logger, "check media bucket", func() error {
				exists, err := client.BucketExists(ctx, cfg.Bucket)
				if err != nil {
					return err
				}
				if !exists {
					opts.Logger.Warn("Media bucket does not exist yet", "bucket", cfg.Bucket)
				}
				return nil
			}, retry.DefaultConfig())
		},
	})

	return r, nil
}

func (r *MinioResolver) GetPublicURL(ctx context.Context, bucket, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if _, err := r.client.StatObject(ctx, bucket, path, minio.StatObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == 404 {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat object %s/%s: %w", bucket, path, err)
	}

	u, err := r.client.PresignedGetObject(ctx, bucket, path, r.ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s/%s: %w", bucket, path, err)
	}

	return u.String(), nil
}

var _ media.Resolver = (*MinioResolver)(nil)
