package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"InvestAdvisor/internal/model"
)

// Data set file names inside a data directory.
const (
	ClientsFile    = "clients.json"
	PortfoliosFile = "portfolios.json"
	MarketFile     = "market.json"
)

// FileStore is an in-memory data set, usually loaded once from a data
// directory. It is read-only after construction and every accessor returns a
// copy, so it is safe for concurrent use.
type FileStore struct {
	name       string
	clients    map[string]model.ClientProfile
	order      []string
	portfolios map[string]model.Portfolio
	trends     model.MarketTrends
}

// NewFileStore builds a store from already decoded records. Later duplicates
// of a client id replace earlier ones.
func NewFileStore(clients []model.ClientProfile, portfolios []model.Portfolio, trends model.MarketTrends) *FileStore {
	s := &FileStore{
		name:       "memory",
		clients:    make(map[string]model.ClientProfile, len(clients)),
		portfolios: make(map[string]model.Portfolio, len(portfolios)),
		trends:     trends,
	}
	for _, c := range clients {
		if _, dup := s.clients[c.ClientID]; !dup {
			s.order = append(s.order, c.ClientID)
		}
		s.clients[c.ClientID] = c
	}
	for _, p := range portfolios {
		s.portfolios[p.ClientID] = p
	}
	return s
}

// LoadDir reads clients.json, portfolios.json and market.json from dir.
func LoadDir(dir string) (*FileStore, error) {
	var clients []model.ClientProfile
	if err := readJSON(filepath.Join(dir, ClientsFile), &clients); err != nil {
		return nil, err
	}
	var portfolios []model.Portfolio
	if err := readJSON(filepath.Join(dir, PortfoliosFile), &portfolios); err != nil {
		return nil, err
	}
	var trends model.MarketTrends
	if err := readJSON(filepath.Join(dir, MarketFile), &trends); err != nil {
		return nil, err
	}

	s := NewFileStore(clients, portfolios, trends)
	s.name = "file:" + dir
	return s, nil
}

// Exists reports whether dir holds a complete data set.
func Exists(dir string) bool {
	for _, f := range []string{ClientsFile, PortfoliosFile, MarketFile} {
		if _, err := os.Stat(filepath.Join(dir, f)); errors.Is(err, fs.ErrNotExist) {
			return false
		}
	}
	return true
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Export writes the store as the three data set files in dir, creating it
// when needed.
func (s *FileStore) Export(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	clients := s.Clients()
	portfolios := make([]model.Portfolio, 0, len(s.portfolios))
	for _, c := range clients {
		if p, ok := s.portfolios[c.ClientID]; ok {
			portfolios = append(portfolios, p)
		}
	}

	files := []struct {
		name string
		v    any
	}{
		{ClientsFile, clients},
		{PortfoliosFile, portfolios},
		{MarketFile, s.trends},
	}
	for _, f := range files {
		data, err := json.MarshalIndent(f.v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

func (s *FileStore) Name() string { return s.name }

func (s *FileStore) Client(id string) (*model.ClientProfile, error) {
	c, ok := s.clients[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("client %q: %w", id, model.ErrClientNotFound)
	}
	return &c, nil
}

func (s *FileStore) Portfolio(clientID string) (*model.Portfolio, error) {
	p, ok := s.portfolios[strings.TrimSpace(clientID)]
	if !ok {
		return nil, fmt.Errorf("portfolio for %q: %w", clientID, model.ErrPortfolioNotFound)
	}
	p.Holdings = slices.Clone(p.Holdings)
	return &p, nil
}

func (s *FileStore) MarketTrends() (*model.MarketTrends, error) {
	t := s.trends
	t.Trends = slices.Clone(t.Trends)
	return &t, nil
}

// Clients lists every client in load order.
func (s *FileStore) Clients() []model.ClientProfile {
	out := make([]model.ClientProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.clients[id])
	}
	return out
}
