package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"InvestAdvisor/internal/collector"
	"InvestAdvisor/internal/config"
	"InvestAdvisor/internal/metrics"
	"InvestAdvisor/internal/recorder"
	"InvestAdvisor/internal/service"
	"InvestAdvisor/internal/strategy"
)

// app is the wired set of components shared by the commands.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    collector.DataSource
	recorder recorder.Recorder
	metrics  *metrics.Metrics
	service  *service.AdviceService
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", store.Name()).Int("clients", len(store.Clients())).Msg("data set loaded")

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	m := metrics.New()
	sources := service.NewSourceFactory(cfg.Engine.Seed, cfg.Engine.Deterministic, cfg.Engine.ExplanationMode)
	svc := service.New(collector.NewCollector(store, log), strategy.NewAdvisor(log), sources, rec, m, log)

	return &app{cfg: cfg, log: log, store: store, recorder: rec, metrics: m, service: svc}, nil
}

// openStore loads the data directory, generating it first when allowed.
func openStore(cfg *config.Config, log zerolog.Logger) (*collector.FileStore, error) {
	dir := cfg.Data.Dir
	if !collector.Exists(dir) {
		if !cfg.Data.GenerateIfMissing {
			return nil, fmt.Errorf("no data set in %s: run `advisor generate` or set data.generate_if_missing", dir)
		}
		log.Info().Str("dir", dir).Int("clients", cfg.Data.Clients).Msg("data set missing, generating")
		gen := collector.NewGenerator(seedOrClock(cfg.Data.Seed), time.Now())
		if err := gen.Generate(cfg.Data.Clients).Export(dir); err != nil {
			return nil, fmt.Errorf("generate data set: %w", err)
		}
	}
	store, err := collector.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load data set: %w", err)
	}
	return store, nil
}

func seedOrClock(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

func (a *app) Close() error {
	return a.recorder.Close()
}
