package feedimpl

import (
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/feed"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(feed.Enricher)),
	),
)
