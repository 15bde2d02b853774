package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientJSON = `{
	"client_id": "CLIENT0007",
	"name": "Ira Calloway",
	"email": "ira@example.com",
	"age": 58,
	"income": 210000,
	"risk_tolerance": "Moderate",
	"financial_goal": "Short-term Savings",
	"time_horizon": 4,
	"investment_experience": "Extensive",
	"last_consultation": "2024-11-02"
}`

func TestClientProfile_DecodeJSON(t *testing.T) {
	var c ClientProfile
	require.NoError(t, json.Unmarshal([]byte(clientJSON), &c))

	assert.Equal(t, "CLIENT0007", c.ClientID)
	assert.Equal(t, RiskModerate, c.RiskTolerance)
	assert.Equal(t, GoalShortTermSavings, c.FinancialGoal)
	assert.Equal(t, ExperienceExtensive, c.InvestmentExperience)
	assert.Equal(t, NewDate(2024, time.November, 2), c.LastConsultation)
	assert.NoError(t, c.Validate())
}

func TestEnums_RejectUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		data string
		into any
	}{
		{"risk tolerance", `"Reckless"`, new(RiskTolerance)},
		{"financial goal", `"Yacht"`, new(FinancialGoal)},
		{"experience", `"Guru"`, new(Experience)},
		{"asset class", `"Crypto"`, new(AssetClass)},
		{"sector", `"Space"`, new(Sector)},
		{"sentiment", `"Euphoric"`, new(Sentiment)},
		{"action", `"Buy"`, new(Action)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.data), tt.into)
			assert.ErrorIs(t, err, ErrInvalidEnumeration)
		})
	}
}

func TestValidate(t *testing.T) {
	c := ClientProfile{ClientID: "C1", RiskTolerance: RiskGrowth, FinancialGoal: GoalRetirement}
	assert.NoError(t, c.Validate(), "experience is optional")

	c.RiskTolerance = "growth"
	assert.ErrorIs(t, c.Validate(), ErrInvalidEnumeration)

	p := Portfolio{ClientID: "C1", Holdings: []PortfolioHolding{{AssetClass: AssetCash}, {AssetClass: "Gold"}}}
	err := p.Validate()
	assert.ErrorIs(t, err, ErrInvalidEnumeration)
	assert.Contains(t, err.Error(), "holding 1")

	m := MarketTrends{Trends: []SectorTrend{{Sector: SectorEnergy}, {Sector: "Space"}}}
	assert.ErrorIs(t, m.Validate(), ErrInvalidEnumeration)
}

func TestAssetClass_IsStock(t *testing.T) {
	var stocks []AssetClass
	for _, ac := range AssetClasses {
		if ac.IsStock() {
			stocks = append(stocks, ac)
		}
	}
	assert.Equal(t, []AssetClass{
		AssetLargeCapStocks, AssetMidCapStocks, AssetSmallCapStocks,
		AssetInternationalDeveloped, AssetEmergingMarkets,
	}, stocks)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2023-06-30")
	require.NoError(t, err)
	assert.Equal(t, "2023-06-30", d.String())

	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2023-06-30"}`, string(b))

	zero, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())

	_, err = ParseDate("30/06/2023")
	assert.Error(t, err)
}

func TestAdviceResponse_JSONShape(t *testing.T) {
	resp := AdviceResponse{
		ClientID:    "CLIENT0001",
		ClientName:  "Dana Whitfield",
		RiskProfile: RiskGrowth,
		InvestmentFactors: FactorSet{
			MarketTrend: 1.1, RiskTolerance: 1.3, Diversification: 0.98,
			AgeBasedAllocation: 1.2, GoalAlignment: 1.15,
		},
		Recommendations: []Recommendation{{AssetClass: AssetCash, Action: ActionHold}},
		OverallAdvice:   []string{"a", "b", "c"},
		GeneratedAt:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		ModelUsed:       "test",
	}
	b, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	factors := raw["investment_factors"].(map[string]any)
	for _, name := range FactorNames {
		assert.Contains(t, factors, name)
	}
	assert.Equal(t, "2025-03-14T09:30:00Z", raw["generated_at"])
	assert.Equal(t, "Hold", raw["recommendations"].([]any)[0].(map[string]any)["action"])

	var back AdviceResponse
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, resp, back)
	assert.Equal(t, resp.InvestmentFactors.Named()[FactorGoalAlignment], 1.15)
}

func TestCountActions(t *testing.T) {
	r := AdviceResponse{Recommendations: []Recommendation{
		{Action: ActionSell}, {Action: ActionHold}, {Action: ActionSell},
	}}
	counts := r.CountActions()
	assert.Equal(t, 2, counts[ActionSell])
	assert.Equal(t, 1, counts[ActionHold])
	assert.Zero(t, counts[ActionIncrease])
}
