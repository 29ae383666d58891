package flowstate

import (
	"github.com/starloomhq/starloom/internal/flowstate/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("flowstate.repository",
	fx.Provide(repository.New),
)
