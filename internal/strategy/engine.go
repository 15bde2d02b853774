package strategy

import (
	"fmt"
	"math"

	"InvestAdvisor/internal/calculator"
	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/random"
)

// Factor weights of the score modifier. They sum to 1.0.
const (
	WeightMarketTrend        = 0.20
	WeightRiskTolerance      = 0.25
	WeightDiversification    = 0.15
	WeightAgeBasedAllocation = 0.15
	WeightGoalAlignment      = 0.25
)

// Base score multipliers.
const (
	outlookWeight     = 5.0
	performanceWeight = 3.0
	scoreJitter       = 0.10
)

// Decision table thresholds. Allocation values are percentages.
const (
	increaseThreshold = 0.5
	sellThreshold     = -0.5
	maxAllocation     = 25.0
	reduceAbove       = 15.0
	minAllocation     = 5.0
	maxStep           = 5.0
	maxConfidence     = 99.0
	confidenceScale   = 20.0
)

// sectorMap relates each asset class to the sectors that drive it.
var sectorMap = map[model.AssetClass][]model.Sector{
	model.AssetLargeCapStocks:         {model.SectorTechnology, model.SectorFinancials, model.SectorHealthcare},
	model.AssetMidCapStocks:           {model.SectorIndustrials, model.SectorConsumerDiscretionary},
	model.AssetSmallCapStocks:         {model.SectorConsumerDiscretionary, model.SectorMaterials},
	model.AssetInternationalDeveloped: {model.SectorFinancials, model.SectorIndustrials, model.SectorConsumerStaples},
	model.AssetEmergingMarkets:        {model.SectorTechnology, model.SectorMaterials, model.SectorEnergy},
	model.AssetRealEstate:             {model.SectorRealEstate},
	model.AssetCorporateBonds:         {model.SectorFinancials},
	model.AssetGovernmentBonds:        {model.SectorFinancials},
	model.AssetHighYieldBonds:         {model.SectorFinancials},
	model.AssetCommodities:            {model.SectorMaterials, model.SectorEnergy},
	model.AssetCash:                   nil,
}

// Sectors returns the sectors mapped to an asset class.
func Sectors(ac model.AssetClass) ([]model.Sector, error) {
	sectors, ok := sectorMap[ac]
	if !ok {
		return nil, fmt.Errorf("sector mapping: %w: %q", model.ErrInvalidEnumeration, ac)
	}
	return sectors, nil
}

// SectorOutlook is the mean forecast growth across the trend records of the
// sectors mapped to ac. It is 0 when no sector or no trend record matches.
func SectorOutlook(ac model.AssetClass, trends *model.MarketTrends) (float64, error) {
	sectors, err := Sectors(ac)
	if err != nil {
		return 0, err
	}
	if len(sectors) == 0 {
		return 0, nil
	}

	var forecasts []float64
	for _, t := range trends.Trends {
		for _, s := range sectors {
			if t.Sector == s {
				forecasts = append(forecasts, t.ForecastGrowth)
				break
			}
		}
	}
	return calculator.Mean(forecasts), nil
}

// factorModifier is the weighted blend of the factor set.
func factorModifier(f model.FactorSet) float64 {
	return f.MarketTrend*WeightMarketTrend +
		f.RiskTolerance*WeightRiskTolerance +
		f.Diversification*WeightDiversification +
		f.AgeBasedAllocation*WeightAgeBasedAllocation +
		f.GoalAlignment*WeightGoalAlignment
}

// Score computes the recommendation score of a holding.
// Positive scores favour adding to the position, negative scores trimming it.
func Score(h model.PortfolioHolding, factors model.FactorSet, trends *model.MarketTrends, src random.Source) (float64, error) {
	outlook, err := SectorOutlook(h.AssetClass, trends)
	if err != nil {
		return 0, err
	}
	base := outlook*outlookWeight + h.PerformanceYTD*performanceWeight
	return base * factorModifier(factors) * src.Jitter(scoreJitter), nil
}

// mapAction applies the decision table to a score and current allocation.
func mapAction(score, allocation float64) model.Action {
	switch {
	case score > increaseThreshold:
		if allocation < maxAllocation {
			return model.ActionIncrease
		}
		return model.ActionHold
	case score > 0:
		return model.ActionHold
	case score > sellThreshold:
		if allocation > reduceAbove {
			return model.ActionReduce
		}
		return model.ActionHold
	default:
		return model.ActionSell
	}
}

// allocationChange returns the percentage-point delta for an action. It never
// moves an increased position above 25% or a reduced one below 5%.
func allocationChange(action model.Action, allocation float64) float64 {
	switch action {
	case model.ActionIncrease:
		return math.Min(maxStep, maxAllocation-allocation)
	case model.ActionReduce:
		return math.Max(-maxStep, -(allocation - minAllocation))
	default:
		return 0
	}
}

// Decide maps a score to an action and the allocation delta it implies.
func Decide(score, allocation float64) (model.Action, float64) {
	action := mapAction(score, allocation)
	return action, allocationChange(action, allocation)
}

// Confidence converts a score into a [0, 99] confidence value.
func Confidence(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Min(math.Abs(score)*confidenceScale, maxConfidence)
}
