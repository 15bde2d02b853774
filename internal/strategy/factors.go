package strategy

import (
	"fmt"
	"math"

	"InvestAdvisor/internal/calculator"
	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/random"
)

// Jitter spreads applied to the randomised factors.
const (
	marketTrendJitter   = 0.05
	riskToleranceJitter = 0.02
	goalAlignmentJitter = 0.05
)

// Market trend factor bounds.
const (
	MarketTrendMin = 0.75
	MarketTrendMax = 1.25
)

var riskToleranceBase = map[model.RiskTolerance]float64{
	model.RiskConservative: 0.85,
	model.RiskModerate:     1.0,
	model.RiskGrowth:       1.1,
	model.RiskAggressive:   1.2,
}

// diversificationTiers maps holding counts to a base factor.
var diversificationTiers = []struct {
	MaxHoldings int
	Base        float64
}{
	{3, 0.85},
	{5, 0.9},
	{8, 0.95},
}

const wellDiversifiedBase = 1.0

// goalRules are evaluated in order; the first match wins.
var goalRules = []struct {
	Goal       model.FinancialGoal
	Applies    func(horizon int) bool
	Adjustment float64
}{
	{model.GoalRetirement, func(h int) bool { return h > 15 }, 0.15},
	{model.GoalEducation, func(h int) bool { return h < 5 }, -0.10},
	{model.GoalHomePurchase, func(h int) bool { return h < 3 }, -0.15},
	{model.GoalWealthGrowth, func(int) bool { return true }, 0.10},
}

// MarketTrendFactor scales with overall market growth.
// > 1 favours more aggressive positioning, < 1 more conservative.
func MarketTrendFactor(trends *model.MarketTrends, src random.Source) float64 {
	factor := 1.0 + trends.OverallMarket.Growth*2
	factor *= src.Jitter(marketTrendJitter)
	return calculator.Round2(calculator.Clamp(factor, MarketTrendMin, MarketTrendMax))
}

// RiskToleranceFactor combines declared risk appetite with an age adjustment
// that favours younger clients.
func RiskToleranceFactor(client *model.ClientProfile, src random.Source) (float64, error) {
	base, ok := riskToleranceBase[client.RiskTolerance]
	if !ok {
		return 0, fmt.Errorf("risk tolerance factor: %w: %q", model.ErrInvalidEnumeration, client.RiskTolerance)
	}
	ageAdjustment := math.Max(0, float64(60-client.Age)/100)
	factor := (base + ageAdjustment) * src.Jitter(riskToleranceJitter)
	return calculator.Round2(factor), nil
}

// DiversificationFactor rewards many, evenly weighted holdings.
func DiversificationFactor(portfolio *model.Portfolio) float64 {
	base := wellDiversifiedBase
	for _, tier := range diversificationTiers {
		if len(portfolio.Holdings) <= tier.MaxHoldings {
			base = tier.Base
			break
		}
	}
	// Undefined concentration (all allocations zero) earns no adjustment.
	adjustment := 0.0
	if concentration := calculator.Concentration(portfolio.Allocations()); !math.IsNaN(concentration) {
		adjustment = math.Max(0, 0.1-concentration*0.05)
	}
	return calculator.Round2(base + adjustment)
}

// AgeBasedAllocationFactor compares equity exposure against the
// "100 minus age" rule, floored at 20%.
// > 1 means the portfolio holds less equity than the target.
func AgeBasedAllocationFactor(client *model.ClientProfile, portfolio *model.Portfolio) float64 {
	target := math.Max(float64(100-client.Age), 20) / 100

	var stock float64
	for _, h := range portfolio.Holdings {
		if h.AssetClass.IsStock() {
			stock += h.CurrentAllocation
		}
	}
	return calculator.Round2(1.0 + (target - stock/100))
}

// GoalAlignmentFactor adjusts for how the financial goal fits the time horizon.
func GoalAlignmentFactor(client *model.ClientProfile, src random.Source) (float64, error) {
	if !client.FinancialGoal.Valid() {
		return 0, fmt.Errorf("goal alignment factor: %w: %q", model.ErrInvalidEnumeration, client.FinancialGoal)
	}
	factor := 1.0
	for _, rule := range goalRules {
		if rule.Goal == client.FinancialGoal && rule.Applies(client.TimeHorizon) {
			factor += rule.Adjustment
			break
		}
	}
	factor *= src.Jitter(goalAlignmentJitter)
	return calculator.Round2(factor), nil
}

// CalculateAll computes the five factors in a fixed order, so a seeded source
// produces the same set for the same inputs.
func CalculateAll(client *model.ClientProfile, portfolio *model.Portfolio, trends *model.MarketTrends, src random.Source) (model.FactorSet, error) {
	var fs model.FactorSet
	var err error

	fs.MarketTrend = MarketTrendFactor(trends, src)
	if fs.RiskTolerance, err = RiskToleranceFactor(client, src); err != nil {
		return model.FactorSet{}, err
	}
	fs.Diversification = DiversificationFactor(portfolio)
	fs.AgeBasedAllocation = AgeBasedAllocationFactor(client, portfolio)
	if fs.GoalAlignment, err = GoalAlignmentFactor(client, src); err != nil {
		return model.FactorSet{}, err
	}
	return fs, nil
}
