package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	"github.com/starloomhq/starloom/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Client CompletionClient
}

type Service struct {
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	client CompletionClient
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("analysis.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		client: p.Client,
	}
}

func (s *Service) Generate(ctx context.Context, chart *chartdomain.ChartPayload, partner *chartdomain.ChartPayload, tier domain.Tier) (*domain.AnalysisResult, error) {
	now := s.clock.Now(ctx)
	prompt, err := BuildPrompt(chart, partner, tier, now)
	if err != nil {
		return nil, err
	}

	// Demo mode: no credentials means no network call at all.
	if !s.client.Configured() {
		s.log.Info("no completion credentials configured, returning mock analysis",
			zap.String("tier", string(tier)))
		return &domain.AnalysisResult{
			ID:          fmt.Sprintf("analysis_%s", s.genID.Generate()),
			ChartID:     chart.ID,
			Tier:        tier,
			Content:     mockContent(chart, tier),
			GeneratedAt: now,
			Model:       mockModel(tier),
			Mock:        true,
		}, nil
	}

	var completion *Completion
	for _, candidate := range fallbackChain {
		completion, err = s.client.Complete(ctx, candidate.Model, prompt, candidate.Budgets.For(tier))
		if err == nil {
			break
		}
		s.log.Warn("completion model failed, trying next in chain",
			zap.String("model", candidate.Model),
			zap.Error(err))
	}
	if completion == nil {
		return nil, domain.ErrCompletionUnavailable
	}

	return &domain.AnalysisResult{
		ID:          fmt.Sprintf("analysis_%s", s.genID.Generate()),
		ChartID:     chart.ID,
		Tier:        tier,
		Content:     completion.Content,
		GeneratedAt: now,
		Model:       completion.Model,
		TokensUsed:  completion.TotalTokens,
		CostUSD:     estimateCost(completion.PromptTokens, completion.CompletionTokens, completion.Model),
	}, nil
}
