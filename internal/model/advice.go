package model

import (
	"slices"
	"time"
)

// Trigger records what caused an advice run.
type Trigger string

const (
	TriggerAPI     Trigger = "API"
	TriggerCLI     Trigger = "CLI"
	TriggerDigest  Trigger = "DIGEST"
	TriggerCommand Trigger = "COMMAND"
)

// Action is the discrete outcome of the decision table.
type Action string

const (
	ActionHold     Action = "Hold"
	ActionIncrease Action = "Increase Allocation"
	ActionReduce   Action = "Reduce Allocation"
	ActionSell     Action = "Sell"
)

var Actions = []Action{ActionHold, ActionIncrease, ActionReduce, ActionSell}

func (a Action) Valid() bool { return slices.Contains(Actions, a) }

func (a *Action) UnmarshalText(b []byte) error {
	v, err := parseEnum("action", string(b), Actions)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Factor names as they appear on the wire.
const (
	FactorMarketTrend        = "market_trend_factor"
	FactorRiskTolerance      = "risk_tolerance_factor"
	FactorDiversification    = "portfolio_diversification_factor"
	FactorAgeBasedAllocation = "age_based_allocation_factor"
	FactorGoalAlignment      = "goal_alignment_factor"
)

// FactorNames lists the five factors in calculation order.
var FactorNames = []string{
	FactorMarketTrend, FactorRiskTolerance, FactorDiversification,
	FactorAgeBasedAllocation, FactorGoalAlignment,
}

// FactorSet holds the five adjustment factors computed for one request.
type FactorSet struct {
	MarketTrend        float64 `json:"market_trend_factor"`
	RiskTolerance      float64 `json:"risk_tolerance_factor"`
	Diversification    float64 `json:"portfolio_diversification_factor"`
	AgeBasedAllocation float64 `json:"age_based_allocation_factor"`
	GoalAlignment      float64 `json:"goal_alignment_factor"`
}

// Named returns the factors keyed by wire name.
func (f FactorSet) Named() map[string]float64 {
	return map[string]float64{
		FactorMarketTrend:        f.MarketTrend,
		FactorRiskTolerance:      f.RiskTolerance,
		FactorDiversification:    f.Diversification,
		FactorAgeBasedAllocation: f.AgeBasedAllocation,
		FactorGoalAlignment:      f.GoalAlignment,
	}
}

// Recommendation is the engine's verdict on a single holding.
type Recommendation struct {
	AssetClass        AssetClass `json:"asset_class"`
	CurrentValue      float64    `json:"current_value"`
	CurrentAllocation float64    `json:"current_allocation"`
	Action            Action     `json:"action"`
	AllocationChange  float64    `json:"allocation_change"`
	TargetAllocation  float64    `json:"target_allocation"`
	Explanation       string     `json:"explanation"`
	ConfidenceScore   float64    `json:"confidence_score"`
}

// AdviceResponse is the full result returned for one client.
// Recommendations are ordered by ConfidenceScore, highest first; equal
// scores keep portfolio order.
type AdviceResponse struct {
	ClientID            string           `json:"client_id"`
	ClientName          string           `json:"client_name"`
	TotalPortfolioValue float64          `json:"total_portfolio_value"`
	RiskProfile         RiskTolerance    `json:"risk_profile"`
	InvestmentFactors   FactorSet        `json:"investment_factors"`
	Recommendations     []Recommendation `json:"recommendations"`
	OverallAdvice       []string         `json:"overall_advice"`
	GeneratedAt         time.Time        `json:"generated_at"`
	ModelUsed           string           `json:"model_used"`
}

// CountActions returns how many recommendations carry each action.
func (r *AdviceResponse) CountActions() map[Action]int {
	counts := make(map[Action]int, len(Actions))
	for _, rec := range r.Recommendations {
		counts[rec.Action]++
	}
	return counts
}
