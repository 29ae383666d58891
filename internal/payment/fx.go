package payment

import (
	"go.uber.org/fx"

	"github.com/starloomhq/starloom/internal/payment/adapters/stripe"
	"github.com/starloomhq/starloom/internal/payment/service"
)

var Module = fx.Module("payment.service",
	fx.Provide(stripe.NewFactory),
	fx.Provide(service.New),
)
