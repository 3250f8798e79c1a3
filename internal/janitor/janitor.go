package janitor

import "context"

// Client owns store maintenance: like documents can outlive the video they
// point at, and nothing in the write path cleans them up.
type Client interface {
	// Schedule registers the recurring cleanup job. Returns after
	// registering; the job itself runs until ctx is cancelled.
	Schedule(ctx context.Context) error

	// RunOnce deletes likes whose video no longer exists and returns the
	// number of documents removed.
	RunOnce(ctx context.Context) (int, error)
}
