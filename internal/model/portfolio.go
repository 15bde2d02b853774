package model

import (
	"fmt"
	"slices"
)

// AssetClass is the broad category of a portfolio holding.
type AssetClass string

const (
	AssetLargeCapStocks         AssetClass = "Large Cap Stocks"
	AssetMidCapStocks           AssetClass = "Mid Cap Stocks"
	AssetSmallCapStocks         AssetClass = "Small Cap Stocks"
	AssetInternationalDeveloped AssetClass = "International Developed"
	AssetEmergingMarkets        AssetClass = "Emerging Markets"
	AssetRealEstate             AssetClass = "Real Estate"
	AssetCorporateBonds         AssetClass = "Corporate Bonds"
	AssetGovernmentBonds        AssetClass = "Government Bonds"
	AssetHighYieldBonds         AssetClass = "High Yield Bonds"
	AssetCommodities            AssetClass = "Commodities"
	AssetCash                   AssetClass = "Cash"
)

var AssetClasses = []AssetClass{
	AssetLargeCapStocks, AssetMidCapStocks, AssetSmallCapStocks,
	AssetInternationalDeveloped, AssetEmergingMarkets, AssetRealEstate,
	AssetCorporateBonds, AssetGovernmentBonds, AssetHighYieldBonds,
	AssetCommodities, AssetCash,
}

func (a AssetClass) Valid() bool { return slices.Contains(AssetClasses, a) }

// IsStock reports whether the class counts towards equity exposure.
func (a AssetClass) IsStock() bool {
	switch a {
	case AssetLargeCapStocks, AssetMidCapStocks, AssetSmallCapStocks,
		AssetInternationalDeveloped, AssetEmergingMarkets:
		return true
	}
	return false
}

func (a *AssetClass) UnmarshalText(b []byte) error {
	v, err := parseEnum("asset class", string(b), AssetClasses)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// PortfolioHolding is one asset-class position.
type PortfolioHolding struct {
	AssetClass        AssetClass `json:"asset_class"`
	Value             float64    `json:"value"`
	PurchaseDate      Date       `json:"purchase_date"`
	CurrentAllocation float64    `json:"current_allocation"` // percent, 0~100
	PerformanceYTD    float64    `json:"performance_ytd"`    // fraction, 0.05 = 5%
}

// Portfolio is a client's set of holdings. TotalValue is taken as given and
// is not reconciled against the holding values.
type Portfolio struct {
	ClientID   string             `json:"client_id"`
	TotalValue float64            `json:"total_value"`
	Holdings   []PortfolioHolding `json:"holdings"`
}

// Allocations returns the allocation percent of every holding in order.
func (p *Portfolio) Allocations() []float64 {
	out := make([]float64, len(p.Holdings))
	for i, h := range p.Holdings {
		out[i] = h.CurrentAllocation
	}
	return out
}

// Validate fails on the first holding with an unrecognised asset class.
func (p *Portfolio) Validate() error {
	for i, h := range p.Holdings {
		if !h.AssetClass.Valid() {
			return fmt.Errorf("portfolio %s holding %d: %w", p.ClientID, i, invalidEnum("asset class", string(h.AssetClass)))
		}
	}
	return nil
}
