package fulfillment

import (
	"github.com/starloomhq/starloom/internal/fulfillment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fulfillment.service",
	fx.Provide(service.New),
)
