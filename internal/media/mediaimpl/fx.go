package mediaimpl

import (
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/media"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(media.Resolver)),
	),
)
