package media

import "context"

// Resolver maps a stored media reference to a publicly fetchable URL.
// An unresolvable reference yields an empty string, not an error; only
// transport-level failures error out.
type Resolver interface {
	GetPublicURL(ctx context.Context, bucket, path string) (string, error)
}
