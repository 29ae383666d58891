package analysis

import (
	"github.com/starloomhq/starloom/internal/analysis/service"
	"github.com/starloomhq/starloom/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("analysis.service",
	fx.Provide(func(cfg config.Config) service.CompletionClient {
		return service.NewOpenAIClient(cfg.Completion.APIKey, cfg.Completion.BaseURL)
	}),
	fx.Provide(service.New),
)
