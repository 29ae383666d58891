package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
)

var (
	ErrInvalidTier           = errors.New("invalid analysis tier")
	ErrMissingPartnerData    = errors.New("partner birth chart is required for comprehensive analysis")
	ErrCompletionUnavailable = errors.New("completion service unavailable")
	ErrEmptyCompletion       = errors.New("completion returned no content")
)

type Tier string

const (
	TierBasic         Tier = "basic"
	TierDetailed      Tier = "detailed"
	TierComprehensive Tier = "comprehensive"
)

func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierBasic:
		return TierBasic, nil
	case TierDetailed:
		return TierDetailed, nil
	case TierComprehensive:
		return TierComprehensive, nil
	default:
		return "", ErrInvalidTier
	}
}

// AnalysisResult is generated at most once per checkout and never mutated.
type AnalysisResult struct {
	ID          string    `json:"id"`
	ChartID     string    `json:"birthChartId"`
	Tier        Tier      `json:"analysisType"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generatedAt"`
	Model       string    `json:"model"`
	TokensUsed  int       `json:"tokensUsed,omitempty"`
	CostUSD     float64   `json:"cost,omitempty"`

	// Mock marks demo-mode results produced without credentials.
	Mock bool `json:"-"`
}

type Service interface {
	Generate(ctx context.Context, chart *chartdomain.ChartPayload, partner *chartdomain.ChartPayload, tier Tier) (*AnalysisResult, error)
}
