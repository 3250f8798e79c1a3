package docstoreimpl

import (
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/docstore"
)

var Module = fx.Provide(
	fx.Annotate(
		NewPgxStore,
		fx.As(new(docstore.Store)),
	),
)
