package strategy

import (
	"time"

	"InvestAdvisor/internal/model"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testClient() *model.ClientProfile {
	return &model.ClientProfile{
		ClientID:             "CLIENT0001",
		Name:                 "Dana Whitfield",
		Email:                "dana@example.com",
		Age:                  40,
		Income:               120000,
		RiskTolerance:        model.RiskGrowth,
		FinancialGoal:        model.GoalRetirement,
		TimeHorizon:          20,
		InvestmentExperience: model.ExperienceModerate,
		LastConsultation:     model.NewDate(2025, 1, 10),
	}
}

func testPortfolio() *model.Portfolio {
	return &model.Portfolio{
		ClientID:   "CLIENT0001",
		TotalValue: 500000,
		Holdings: []model.PortfolioHolding{
			{AssetClass: model.AssetLargeCapStocks, Value: 150000, CurrentAllocation: 30, PerformanceYTD: 0.12},
			{AssetClass: model.AssetEmergingMarkets, Value: 50000, CurrentAllocation: 10, PerformanceYTD: 0.08},
			{AssetClass: model.AssetGovernmentBonds, Value: 150000, CurrentAllocation: 30, PerformanceYTD: -0.02},
			{AssetClass: model.AssetCommodities, Value: 75000, CurrentAllocation: 15, PerformanceYTD: -0.12},
			{AssetClass: model.AssetCash, Value: 75000, CurrentAllocation: 15, PerformanceYTD: 0.01},
		},
	}
}

func testTrends() *model.MarketTrends {
	return &model.MarketTrends{
		Trends: []model.SectorTrend{
			{Sector: model.SectorTechnology, CurrentGrowth: 0.15, ForecastGrowth: 0.12, Volatility: 0.3, AnalystSentiment: model.SentimentBullish},
			{Sector: model.SectorHealthcare, CurrentGrowth: 0.06, ForecastGrowth: 0.05, Volatility: 0.15, AnalystSentiment: model.SentimentNeutral},
			{Sector: model.SectorFinancials, CurrentGrowth: 0.05, ForecastGrowth: 0.04, Volatility: 0.2, AnalystSentiment: model.SentimentNeutral},
			{Sector: model.SectorConsumerDiscretionary, CurrentGrowth: 0.02, ForecastGrowth: 0.01, Volatility: 0.25, AnalystSentiment: model.SentimentNeutral},
			{Sector: model.SectorConsumerStaples, CurrentGrowth: 0.03, ForecastGrowth: 0.02, Volatility: 0.1, AnalystSentiment: model.SentimentNeutral},
			{Sector: model.SectorEnergy, CurrentGrowth: -0.06, ForecastGrowth: -0.05, Volatility: 0.4, AnalystSentiment: model.SentimentBearish},
			{Sector: model.SectorMaterials, CurrentGrowth: -0.04, ForecastGrowth: -0.03, Volatility: 0.3, AnalystSentiment: model.SentimentBearish},
			{Sector: model.SectorIndustrials, CurrentGrowth: 0.04, ForecastGrowth: 0.03, Volatility: 0.2, AnalystSentiment: model.SentimentNeutral},
			{Sector: model.SectorUtilities, CurrentGrowth: 0.01, ForecastGrowth: 0.02, Volatility: 0.08, AnalystSentiment: model.SentimentNeutral},
			{Sector: model.SectorRealEstate, CurrentGrowth: 0.00, ForecastGrowth: 0.01, Volatility: 0.18, AnalystSentiment: model.SentimentNeutral},
			{Sector: model.SectorCommunicationServices, CurrentGrowth: 0.08, ForecastGrowth: 0.06, Volatility: 0.22, AnalystSentiment: model.SentimentBullish},
		},
		OverallMarket: model.OverallMarket{Growth: 0.05, VolatilityIndex: 18.5, InterestRate: 4.25, InflationRate: 3.1},
	}
}

func neutralFactors() model.FactorSet {
	return model.FactorSet{MarketTrend: 1, RiskTolerance: 1, Diversification: 1, AgeBasedAllocation: 1, GoalAlignment: 1}
}
