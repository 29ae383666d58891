package service

import (
	"math"

	"github.com/starloomhq/starloom/internal/analysis/domain"
)

// tierBudgets holds per-tier token allowances for one model in the chain.
// Budgets shrink together with model quality at each fallback step.
type tierBudgets struct {
	Basic         int
	Detailed      int
	Comprehensive int
}

func (b tierBudgets) For(tier domain.Tier) int {
	switch tier {
	case domain.TierComprehensive:
		return b.Comprehensive
	case domain.TierDetailed:
		return b.Detailed
	default:
		return b.Basic
	}
}

type modelCandidate struct {
	Model   string
	Budgets tierBudgets
}

// fallbackChain is tried in order; each model only after the previous one
// has fully failed.
var fallbackChain = []modelCandidate{
	{Model: "gpt-4o", Budgets: tierBudgets{Basic: 4000, Detailed: 6000, Comprehensive: 8000}},
	{Model: "gpt-4", Budgets: tierBudgets{Basic: 2500, Detailed: 4000, Comprehensive: 6000}},
	{Model: "gpt-3.5-turbo", Budgets: tierBudgets{Basic: 2000, Detailed: 3000, Comprehensive: 4000}},
}

type modelRate struct {
	Input  float64
	Output float64
}

// Per-1K-token USD rates. Unrecognized models bill at gpt-4o rates.
var modelRates = map[string]modelRate{
	"gpt-4o":             {Input: 0.005, Output: 0.015},
	"gpt-4":              {Input: 0.03, Output: 0.06},
	"gpt-4-1106-preview": {Input: 0.01, Output: 0.03},
	"gpt-3.5-turbo":      {Input: 0.001, Output: 0.002},
	"gpt-3.5-turbo-1106": {Input: 0.001, Output: 0.002},
}

func estimateCost(promptTokens, completionTokens int, model string) float64 {
	rate, ok := modelRates[model]
	if !ok {
		rate = modelRates["gpt-4o"]
	}
	cost := float64(promptTokens)/1000*rate.Input + float64(completionTokens)/1000*rate.Output
	return math.Round(cost*100) / 100
}
