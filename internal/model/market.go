package model

import (
	"fmt"
	"slices"
)

// Sector is a market sector tracked by the trends report.
type Sector string

const (
	SectorTechnology            Sector = "Technology"
	SectorHealthcare            Sector = "Healthcare"
	SectorFinancials            Sector = "Financials"
	SectorConsumerDiscretionary Sector = "Consumer Discretionary"
	SectorConsumerStaples       Sector = "Consumer Staples"
	SectorEnergy                Sector = "Energy"
	SectorMaterials             Sector = "Materials"
	SectorIndustrials           Sector = "Industrials"
	SectorUtilities             Sector = "Utilities"
	SectorRealEstate            Sector = "Real Estate"
	SectorCommunicationServices Sector = "Communication Services"
)

var Sectors = []Sector{
	SectorTechnology, SectorHealthcare, SectorFinancials,
	SectorConsumerDiscretionary, SectorConsumerStaples, SectorEnergy,
	SectorMaterials, SectorIndustrials, SectorUtilities, SectorRealEstate,
	SectorCommunicationServices,
}

func (s Sector) Valid() bool { return slices.Contains(Sectors, s) }

func (s *Sector) UnmarshalText(b []byte) error {
	v, err := parseEnum("sector", string(b), Sectors)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Sentiment is the analyst consensus for a sector.
type Sentiment string

const (
	SentimentBearish         Sentiment = "Bearish"
	SentimentNeutral         Sentiment = "Neutral"
	SentimentBullish         Sentiment = "Bullish"
	SentimentStronglyBullish Sentiment = "Strongly Bullish"
)

var Sentiments = []Sentiment{SentimentBearish, SentimentNeutral, SentimentBullish, SentimentStronglyBullish}

func (s Sentiment) Valid() bool { return slices.Contains(Sentiments, s) }

func (s *Sentiment) UnmarshalText(b []byte) error {
	v, err := parseEnum("analyst sentiment", string(b), Sentiments)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// SectorTrend holds current and forecast growth for one sector.
type SectorTrend struct {
	Sector           Sector    `json:"sector"`
	CurrentGrowth    float64   `json:"current_growth"`
	ForecastGrowth   float64   `json:"forecast_growth"`
	Volatility       float64   `json:"volatility"`
	AnalystSentiment Sentiment `json:"analyst_sentiment"`
}

// OverallMarket summarises the whole market.
type OverallMarket struct {
	Growth          float64 `json:"growth"`
	VolatilityIndex float64 `json:"volatility_index"`
	InterestRate    float64 `json:"interest_rate"`
	InflationRate   float64 `json:"inflation_rate"`
}

// MarketTrends is the current market snapshot.
type MarketTrends struct {
	Trends        []SectorTrend `json:"trends"`
	OverallMarket OverallMarket `json:"overall_market"`
}

func (m *MarketTrends) Validate() error {
	for i, t := range m.Trends {
		if !t.Sector.Valid() {
			return fmt.Errorf("market trend %d: %w", i, invalidEnum("sector", string(t.Sector)))
		}
		if t.AnalystSentiment != "" && !t.AnalystSentiment.Valid() {
			return fmt.Errorf("market trend %d: %w", i, invalidEnum("analyst sentiment", string(t.AnalystSentiment)))
		}
	}
	return nil
}
