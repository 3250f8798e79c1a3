package janitorimpl

import (
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/janitor"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(janitor.Client)),
	),
)
