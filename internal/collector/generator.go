package collector

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"InvestAdvisor/internal/calculator"
	"InvestAdvisor/internal/model"
)

var (
	firstNames = []string{
		"Avery", "Blake", "Casey", "Dana", "Elliot", "Frankie", "Gray", "Harper",
		"Ira", "Jordan", "Kendall", "Logan", "Morgan", "Noel", "Parker", "Quinn",
		"Reese", "Sage", "Taylor", "Emerson",
	}
	lastNames = []string{
		"Abbott", "Calloway", "Delgado", "Ferreira", "Holloway", "Ishikawa",
		"Kowalski", "Lindqvist", "Mbeki", "Novak", "Okafor", "Petrov", "Quintero",
		"Rasmussen", "Sandoval", "Whitfield",
	}
	emailDomains = []string{"example.com", "example.org", "example.net"}
)

// portfolioShape sets how many asset classes a risk profile holds.
var portfolioShape = map[model.RiskTolerance]struct{ MinAssets, MaxAssets int }{
	model.RiskAggressive:   {5, 11},
	model.RiskGrowth:       {4, 9},
	model.RiskModerate:     {4, 8},
	model.RiskConservative: {3, 7},
}

// Older clients lean conservative.
var (
	seniorRiskWeights = []float64{0.4, 0.3, 0.2, 0.1}
	juniorRiskWeights = []float64{0.1, 0.3, 0.4, 0.2}
)

const seniorAge = 55

// Generator produces a synthetic but internally consistent data set.
// The same seed and clock always produce the same data.
type Generator struct {
	r   *rand.Rand
	now time.Time
}

// NewGenerator creates a Generator. now anchors consultation and purchase dates.
func NewGenerator(seed uint64, now time.Time) *Generator {
	return &Generator{
		r:   rand.New(rand.NewPCG(seed, seed+1)),
		now: now.UTC(),
	}
}

// Generate builds a complete store with n clients, one portfolio each and a
// market snapshot.
func (g *Generator) Generate(n int) *FileStore {
	clients := g.Clients(n)
	portfolios := make([]model.Portfolio, 0, len(clients))
	for i := range clients {
		portfolios = append(portfolios, g.Portfolio(&clients[i]))
	}
	s := NewFileStore(clients, portfolios, g.MarketTrends())
	s.name = "generated"
	return s
}

// Clients generates n client profiles with ids CLIENT0001 onwards.
func (g *Generator) Clients(n int) []model.ClientProfile {
	clients := make([]model.ClientProfile, 0, n)
	for i := 0; i < n; i++ {
		age := g.intRange(25, 75)
		weights := juniorRiskWeights
		if age > seniorAge {
			weights = seniorRiskWeights
		}
		first := pick(g.r, firstNames)
		last := pick(g.r, lastNames)

		clients = append(clients, model.ClientProfile{
			ClientID:             fmt.Sprintf("CLIENT%04d", i+1),
			Name:                 first + " " + last,
			Email:                fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), pick(g.r, emailDomains)),
			Age:                  age,
			Income:               decimal.NewFromFloat(g.uniform(50000, 500000)).Round(-3).InexactFloat64(),
			RiskTolerance:        model.RiskTolerances[g.weighted(weights)],
			FinancialGoal:        pick(g.r, model.FinancialGoals),
			TimeHorizon:          g.intRange(1, 30),
			InvestmentExperience: pick(g.r, model.Experiences),
			LastConsultation:     g.dateBetween(g.now.AddDate(-1, 0, 0), g.now),
		})
	}
	return clients
}

// Portfolio generates a portfolio sized by the client's risk profile.
// Allocations are normalised random weights; TotalValue is the sum of the
// rounded holding values.
func (g *Generator) Portfolio(client *model.ClientProfile) model.Portfolio {
	shape, ok := portfolioShape[client.RiskTolerance]
	if !ok {
		shape = portfolioShape[model.RiskConservative]
	}
	base := g.uniform(50000, 2000000)
	count := g.intRange(shape.MinAssets, shape.MaxAssets)

	assets := make([]model.AssetClass, 0, count)
	for _, i := range g.r.Perm(len(model.AssetClasses))[:count] {
		assets = append(assets, model.AssetClasses[i])
	}

	weights := make([]float64, count)
	var sum float64
	for i := range weights {
		weights[i] = g.r.Float64()
		sum += weights[i]
	}

	total := decimal.Zero
	holdings := make([]model.PortfolioHolding, 0, count)
	for i, ac := range assets {
		w := weights[i] / sum
		value := calculator.RoundMoney(base * w)
		total = total.Add(decimal.NewFromFloat(value))
		holdings = append(holdings, model.PortfolioHolding{
			AssetClass:        ac,
			Value:             value,
			PurchaseDate:      g.dateBetween(g.now.AddDate(-5, 0, 0), g.now.AddDate(0, -1, 0)),
			CurrentAllocation: calculator.Round2(w * 100),
			PerformanceYTD:    round4(g.uniform(-0.15, 0.25)),
		})
	}

	return model.Portfolio{
		ClientID:   client.ClientID,
		TotalValue: total.Round(2).InexactFloat64(),
		Holdings:   holdings,
	}
}

// MarketTrends generates one trend per sector plus the overall market.
// Forecasts follow current growth loosely and stay within [-0.15, 0.30].
func (g *Generator) MarketTrends() model.MarketTrends {
	trends := make([]model.SectorTrend, 0, len(model.Sectors))
	var growthSum float64
	for _, sector := range model.Sectors {
		growth := round4(g.uniform(-0.08, 0.25))
		forecast := growth*0.7 + g.uniform(-0.05, 0.05)
		growthSum += growth
		trends = append(trends, model.SectorTrend{
			Sector:           sector,
			CurrentGrowth:    growth,
			ForecastGrowth:   round4(calculator.Clamp(forecast, -0.15, 0.3)),
			Volatility:       round4(g.uniform(0.05, 0.45)),
			AnalystSentiment: pick(g.r, model.Sentiments),
		})
	}

	return model.MarketTrends{
		Trends: trends,
		OverallMarket: model.OverallMarket{
			Growth:          round4(growthSum / float64(len(trends))),
			VolatilityIndex: calculator.Round2(g.uniform(10, 35)),
			InterestRate:    calculator.Round2(g.uniform(0.5, 6)),
			InflationRate:   calculator.Round2(g.uniform(1, 8)),
		},
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

// intRange returns an int in [lo, hi].
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.r.IntN(hi-lo+1)
}

// weighted returns an index drawn with the given relative weights.
func (g *Generator) weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := g.r.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}

func (g *Generator) dateBetween(from, to time.Time) model.Date {
	days := int(to.Sub(from).Hours() / 24)
	d := from.AddDate(0, 0, g.r.IntN(days+1))
	return model.NewDate(d.Year(), d.Month(), d.Day())
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
