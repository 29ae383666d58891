package chart

import (
	"github.com/starloomhq/starloom/internal/chart/service"
	"go.uber.org/fx"
)

var Module = fx.Module("chart.service",
	fx.Provide(service.NewStaticEphemeris),
	fx.Provide(service.New),
)
