package product

import (
	"github.com/starloomhq/starloom/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.catalog",
	fx.Provide(service.New),
)
