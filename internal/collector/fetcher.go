package collector

import "InvestAdvisor/internal/model"

// ClientRepository looks up client profiles.
type ClientRepository interface {
	// Client returns the profile for id, or an error wrapping
	// model.ErrClientNotFound.
	Client(id string) (*model.ClientProfile, error)
}

// PortfolioRepository looks up portfolios by owning client.
type PortfolioRepository interface {
	// Portfolio returns the portfolio for clientID, or an error wrapping
	// model.ErrPortfolioNotFound.
	Portfolio(clientID string) (*model.Portfolio, error)
}

// MarketTrendsProvider returns the current market snapshot.
type MarketTrendsProvider interface {
	MarketTrends() (*model.MarketTrends, error)
}

// DataSource is a complete set of advisor inputs that can also enumerate
// its clients.
type DataSource interface {
	ClientRepository
	PortfolioRepository
	MarketTrendsProvider
	Clients() []model.ClientProfile
	Name() string
}
