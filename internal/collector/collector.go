package collector

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"InvestAdvisor/internal/model"
)

// allocationTolerance is how far, in percentage points, holding allocations
// may drift from 100 before a warning is logged.
const allocationTolerance = 1.0

// Inputs is everything the advisor needs for one client.
type Inputs struct {
	Client    *model.ClientProfile
	Portfolio *model.Portfolio
	Trends    *model.MarketTrends
}

// Collector gathers advisor inputs from a DataSource.
type Collector struct {
	Source DataSource
	log    zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(source DataSource, log zerolog.Logger) *Collector {
	return &Collector{
		Source: source,
		log:    log.With().Str("component", "collector").Logger(),
	}
}

// Collect fetches the client, their portfolio and the market snapshot.
// Lookup failures are returned wrapped; data-quality issues are only logged.
func (c *Collector) Collect(clientID string) (*Inputs, error) {
	client, err := c.Source.Client(clientID)
	if err != nil {
		return nil, fmt.Errorf("fetch client: %w", err)
	}
	portfolio, err := c.Source.Portfolio(client.ClientID)
	if err != nil {
		return nil, fmt.Errorf("fetch portfolio: %w", err)
	}
	trends, err := c.Source.MarketTrends()
	if err != nil {
		return nil, fmt.Errorf("fetch market trends: %w", err)
	}

	if len(portfolio.Holdings) > 0 {
		var sum float64
		for _, h := range portfolio.Allocations() {
			sum += h
		}
		if math.Abs(sum-100) > allocationTolerance {
			c.log.Warn().
				Str("client_id", client.ClientID).
				Float64("allocation_sum", sum).
				Msg("holding allocations do not sum to 100")
		}
	}
	if len(trends.Trends) == 0 {
		c.log.Warn().Msg("market snapshot has no sector trends, sector outlooks will be 0")
	}

	return &Inputs{Client: client, Portfolio: portfolio, Trends: trends}, nil
}
