package recommendimpl

import (
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/recommend"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(recommend.Client)),
	),
)
