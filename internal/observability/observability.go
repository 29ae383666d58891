package observability

import (
	"os"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
)

func NewLogger() (*zap.Logger, error) {
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
