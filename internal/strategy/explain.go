package strategy

import (
	"fmt"
	"strings"

	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/random"
)

// maxExplanations caps the sentences attached to one recommendation.
const maxExplanations = 3

// ExplanationInput is everything the explanation rules look at.
type ExplanationInput struct {
	Client  *model.ClientProfile
	Holding model.PortfolioHolding
	Factors model.FactorSet
	Action  model.Action
	Outlook float64
}

// explanationRule returns a sentence and whether it applies.
type explanationRule func(in *ExplanationInput) (string, bool)

// explanationRules are listed in precedence order.
var explanationRules = []explanationRule{
	marketTrendExplanation,
	riskProfileExplanation,
	performanceExplanation,
	sectorExplanation,
	goalExplanation,
}

func marketTrendExplanation(in *ExplanationInput) (string, bool) {
	switch {
	case in.Factors.MarketTrend > 1.05:
		return fmt.Sprintf("Positive market trends indicate favorable conditions for %s.", in.Holding.AssetClass), true
	case in.Factors.MarketTrend < 0.95:
		return fmt.Sprintf("Current market volatility suggests caution with %s positions.", in.Holding.AssetClass), true
	}
	return "", false
}

func riskProfileExplanation(in *ExplanationInput) (string, bool) {
	risk := strings.ToLower(string(in.Client.RiskTolerance))
	switch {
	case in.Factors.RiskTolerance > 1.05 && in.Action == model.ActionIncrease:
		return fmt.Sprintf("Your %s risk profile supports increased exposure to %s.", risk, in.Holding.AssetClass), true
	case in.Factors.RiskTolerance < 0.95 && in.Action == model.ActionReduce:
		return fmt.Sprintf("Your %s risk profile suggests reducing exposure to higher-risk assets.", risk), true
	}
	return "", false
}

func performanceExplanation(in *ExplanationInput) (string, bool) {
	perf := in.Holding.PerformanceYTD
	switch {
	case perf > 0.1 && in.Action == model.ActionHold:
		return fmt.Sprintf("Strong year-to-date performance of %.1f%% supports maintaining your position.", perf*100), true
	case perf < -0.05 && in.Action == model.ActionSell:
		return fmt.Sprintf("Poor performance of %.1f%% YTD suggests reconsidering this position.", perf*100), true
	}
	return "", false
}

func sectorExplanation(in *ExplanationInput) (string, bool) {
	switch {
	case in.Outlook > 0.08 && (in.Action == model.ActionHold || in.Action == model.ActionIncrease):
		return "Sector forecasts predict continued growth in the coming months.", true
	case in.Outlook < -0.03 && (in.Action == model.ActionReduce || in.Action == model.ActionSell):
		return "Sector analysis indicates potential headwinds in the near future.", true
	}
	return "", false
}

func goalExplanation(in *ExplanationInput) (string, bool) {
	goal := strings.ToLower(string(in.Client.FinancialGoal))
	switch {
	case in.Factors.GoalAlignment > 1.1:
		return fmt.Sprintf("This position aligns well with your %s goal.", goal), true
	case in.Factors.GoalAlignment < 0.9:
		return fmt.Sprintf("This position may not optimally support your %s goal.", goal), true
	}
	return "", false
}

// Explain collects every applicable sentence, keeps at most three chosen by
// src, and joins them with single spaces. No applicable rule yields "".
func Explain(in *ExplanationInput, src random.Source) string {
	var sentences []string
	for _, rule := range explanationRules {
		if s, ok := rule(in); ok {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) > maxExplanations {
		picked := make([]string, 0, maxExplanations)
		for _, i := range src.Sample(len(sentences), maxExplanations) {
			picked = append(picked, sentences[i])
		}
		sentences = picked
	}
	return strings.Join(sentences, " ")
}
