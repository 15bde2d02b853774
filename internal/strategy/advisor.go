package strategy

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/random"
)

// ModelUsed tags every response with the engine that produced it.
const ModelUsed = "InvestAdvisor heuristic factor engine (simulated)"

// Overall-advice thresholds.
const (
	bullishMarket   = 1.1
	cautiousMarket  = 0.9
	longHorizon     = 15
	mediumHorizon   = 5
	riskAppetiteMin = 1.0
)

// Advisor assembles per-holding recommendations into an AdviceResponse.
type Advisor struct {
	log zerolog.Logger
	now func() time.Time
}

// NewAdvisor creates an Advisor that stamps responses with the wall clock.
func NewAdvisor(log zerolog.Logger) *Advisor {
	return &Advisor{
		log: log.With().Str("component", "advisor").Logger(),
		now: time.Now,
	}
}

// WithClock replaces the timestamp source.
func (a *Advisor) WithClock(now func() time.Time) *Advisor {
	a.now = now
	return a
}

// Advise runs the full pipeline for one client. Invalid enumerations anywhere
// in the inputs fail the whole request; no holding is silently dropped.
func (a *Advisor) Advise(client *model.ClientProfile, portfolio *model.Portfolio, trends *model.MarketTrends, src random.Source) (*model.AdviceResponse, error) {
	if client == nil || portfolio == nil || trends == nil {
		return nil, errors.New("advise: client, portfolio and market trends are required")
	}
	if err := client.Validate(); err != nil {
		return nil, fmt.Errorf("advise: %w", err)
	}
	if err := portfolio.Validate(); err != nil {
		return nil, fmt.Errorf("advise: %w", err)
	}

	factors, err := CalculateAll(client, portfolio, trends, src)
	if err != nil {
		return nil, fmt.Errorf("advise %s: %w", client.ClientID, err)
	}

	recs := make([]model.Recommendation, 0, len(portfolio.Holdings))
	for i, h := range portfolio.Holdings {
		rec, err := Recommend(client, h, factors, trends, src)
		if err != nil {
			return nil, fmt.Errorf("advise %s holding %d: %w", client.ClientID, i, err)
		}
		recs = append(recs, rec)
	}
	SortByConfidence(recs)

	resp := &model.AdviceResponse{
		ClientID:            client.ClientID,
		ClientName:          client.Name,
		TotalPortfolioValue: portfolio.TotalValue,
		RiskProfile:         client.RiskTolerance,
		InvestmentFactors:   factors,
		Recommendations:     recs,
		OverallAdvice:       OverallAdvice(recs, factors, client.TimeHorizon),
		GeneratedAt:         a.now(),
		ModelUsed:           ModelUsed,
	}

	ev := a.log.Debug().
		Str("client_id", client.ClientID).
		Int("holdings", len(recs))
	named := factors.Named()
	for _, name := range model.FactorNames {
		ev = ev.Float64(name, named[name])
	}
	ev.Msg("advice generated")

	return resp, nil
}

// Recommend scores one holding and turns the score into a Recommendation.
func Recommend(client *model.ClientProfile, h model.PortfolioHolding, factors model.FactorSet, trends *model.MarketTrends, src random.Source) (model.Recommendation, error) {
	score, err := Score(h, factors, trends, src)
	if err != nil {
		return model.Recommendation{}, err
	}
	outlook, err := SectorOutlook(h.AssetClass, trends)
	if err != nil {
		return model.Recommendation{}, err
	}

	action, delta := Decide(score, h.CurrentAllocation)
	explanation := Explain(&ExplanationInput{
		Client:  client,
		Holding: h,
		Factors: factors,
		Action:  action,
		Outlook: outlook,
	}, src)

	return model.Recommendation{
		AssetClass:        h.AssetClass,
		CurrentValue:      h.Value,
		CurrentAllocation: h.CurrentAllocation,
		Action:            action,
		AllocationChange:  delta,
		TargetAllocation:  h.CurrentAllocation + delta,
		Explanation:       explanation,
		ConfidenceScore:   Confidence(score),
	}, nil
}

// SortByConfidence orders recommendations by confidence, highest first.
// The sort is stable: equal confidences keep their portfolio order.
func SortByConfidence(recs []model.Recommendation) {
	slices.SortStableFunc(recs, func(a, b model.Recommendation) int {
		switch {
		case a.ConfidenceScore > b.ConfidenceScore:
			return -1
		case a.ConfidenceScore < b.ConfidenceScore:
			return 1
		}
		return 0
	})
}

// OverallAdvice returns the three-line portfolio narrative: market tone,
// portfolio direction, and time horizon.
func OverallAdvice(recs []model.Recommendation, factors model.FactorSet, timeHorizon int) []string {
	var increases, decreases int
	for _, r := range recs {
		switch r.Action {
		case model.ActionIncrease:
			increases++
		case model.ActionReduce, model.ActionSell:
			decreases++
		}
	}

	advice := make([]string, 0, 3)

	switch {
	case factors.MarketTrend > bullishMarket:
		advice = append(advice, "Overall market trends are positive, supporting a slightly more aggressive position in select areas.")
	case factors.MarketTrend < cautiousMarket:
		advice = append(advice, "Market indicators suggest caution, favoring defensive positions and increased diversification.")
	default:
		advice = append(advice, "Current market conditions suggest maintaining your strategic asset allocation with targeted adjustments.")
	}

	switch {
	case increases > decreases && factors.RiskTolerance > riskAppetiteMin:
		advice = append(advice, "Consider increasing exposure to growth-oriented assets while maintaining appropriate diversification.")
	case decreases > increases:
		advice = append(advice, "Reducing exposure in underperforming sectors may help protect against potential market volatility.")
	default:
		advice = append(advice, "Your portfolio appears generally well-aligned with your risk profile and financial goals.")
	}

	switch {
	case timeHorizon > longHorizon:
		advice = append(advice, fmt.Sprintf("With your %d-year time horizon, focusing on long-term growth remains appropriate despite short-term market fluctuations.", timeHorizon))
	case timeHorizon >= mediumHorizon:
		advice = append(advice, fmt.Sprintf("Your %d-year time horizon supports a balanced approach with both growth and capital preservation elements.", timeHorizon))
	default:
		advice = append(advice, fmt.Sprintf("Given your shorter %d-year time horizon, capital preservation should be emphasized alongside selective growth opportunities.", timeHorizon))
	}

	return advice
}
