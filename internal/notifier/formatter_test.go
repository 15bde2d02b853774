package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"InvestAdvisor/internal/model"
)

var fmtNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestFormatAdvice(t *testing.T) {
	resp := &model.AdviceResponse{
		ClientID:            "CLIENT0001",
		ClientName:          "Dana <Whitfield>",
		TotalPortfolioValue: 1234567.5,
		RiskProfile:         model.RiskGrowth,
		InvestmentFactors:   model.FactorSet{MarketTrend: 1.1, RiskTolerance: 1.3, Diversification: 0.98, AgeBasedAllocation: 1.2, GoalAlignment: 1.15},
		Recommendations: []model.Recommendation{
			{AssetClass: model.AssetLargeCapStocks, CurrentAllocation: 10, Action: model.ActionIncrease, AllocationChange: 5, TargetAllocation: 15, Explanation: "Growth & more.", ConfidenceScore: 16.4},
			{AssetClass: model.AssetCash, CurrentAllocation: 15, Action: model.ActionHold, ConfidenceScore: 0.6},
		},
		OverallAdvice: []string{"Stay the course."},
		GeneratedAt:   fmtNow,
	}
	out := FormatAdvice(resp)

	assert.Contains(t, out, "Advice for Dana &lt;Whitfield&gt;</b> (CLIENT0001) | 2025-03-14")
	assert.Contains(t, out, "Portfolio value: $1,234,567.50")
	assert.Contains(t, out, "market 1.10 | risk 1.30 | diversification 0.98")
	assert.Contains(t, out, "🟢 Large Cap Stocks: Increase Allocation 10.0% → 15.0% (confidence 16)")
	assert.Contains(t, out, "<i>Growth &amp; more.</i>")
	assert.Contains(t, out, "⚪ Cash: Hold at 15.0% (confidence 1)")
	assert.Contains(t, out, "• Stay the course.")
	assert.Less(t, strings.Index(out, "Large Cap"), strings.Index(out, "Cash:"))
}

func TestFormatAdvice_NoHoldings(t *testing.T) {
	out := FormatAdvice(&model.AdviceResponse{ClientID: "C", GeneratedAt: fmtNow})
	assert.Contains(t, out, "(no holdings)")
}

func TestFormatMarket(t *testing.T) {
	out := FormatMarket(&model.MarketTrends{
		Trends: []model.SectorTrend{
			{Sector: model.SectorEnergy, CurrentGrowth: -0.06, ForecastGrowth: -0.05, AnalystSentiment: model.SentimentBearish},
		},
		OverallMarket: model.OverallMarket{Growth: 0.0512, VolatilityIndex: 18.46, InterestRate: 4.25, InflationRate: 3.1},
	})
	assert.Contains(t, out, "Growth: +5.1% | VIX: 18.5")
	assert.Contains(t, out, "Interest: 4.25% | Inflation: 3.10%")
	assert.Contains(t, out, "Energy: now -6.0%, forecast -5.0% (Bearish)")
}

func TestFormatClients(t *testing.T) {
	out := FormatClients([]model.ClientProfile{
		{ClientID: "CLIENT0001", Name: "Dana", RiskTolerance: model.RiskGrowth, FinancialGoal: model.GoalRetirement, LastConsultation: model.NewDate(2025, 3, 7)},
		{ClientID: "CLIENT0002", Name: "Ira", RiskTolerance: model.RiskModerate, FinancialGoal: model.GoalEducation},
	}, fmtNow)
	assert.Contains(t, out, "Clients</b> (2)")
	assert.Contains(t, out, "CLIENT0001 Dana | Growth | Retirement | last seen 1 week ago")
	assert.Contains(t, out, "CLIENT0002 Ira | Moderate | Education | last seen never")
}

func TestFormatDigestHeader(t *testing.T) {
	assert.Equal(t, "🗓 <b>Advice digest</b> | 2025-03-14 | 1 client\n", FormatDigestHeader(1, fmtNow))
	assert.Contains(t, FormatDigestHeader(3, fmtNow), "3 clients")
}
