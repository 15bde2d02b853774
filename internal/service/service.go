// Package service runs advice requests end to end: it gathers inputs,
// invokes the advisor, records the run and updates metrics. The HTTP server,
// the CLI and the scheduler all go through it.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"InvestAdvisor/internal/collector"
	"InvestAdvisor/internal/config"
	"InvestAdvisor/internal/metrics"
	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/random"
	"InvestAdvisor/internal/recorder"
	"InvestAdvisor/internal/strategy"
)

// SourceFactory returns the random source for one advice request.
type SourceFactory func() random.Source

// NewSourceFactory builds a SourceFactory from engine settings.
//
// Deterministic mode uses random.Fixed. A non-zero seed gives every request a
// fresh generator with that seed, so identical inputs yield identical advice.
// Otherwise one clock-seeded generator is shared by all requests. Priority
// explanation mode keeps the jitter but picks explanations by rule order.
func NewSourceFactory(seed uint64, deterministic bool, explanationMode string) SourceFactory {
	var f SourceFactory
	switch {
	case deterministic:
		f = random.Fixed
	case seed != 0:
		f = func() random.Source { return random.New(seed) }
	default:
		shared := random.NewFromTime()
		f = func() random.Source { return shared }
	}
	if explanationMode == config.ExplanationPriority && !deterministic {
		inner := f
		f = func() random.Source { return random.WithPriority(inner()) }
	}
	return f
}

// Result is a recorded advice response.
type Result struct {
	RunID    uuid.UUID
	Response *model.AdviceResponse
}

// AdviceService produces and records advice.
type AdviceService struct {
	collector *collector.Collector
	advisor   *strategy.Advisor
	sources   SourceFactory
	recorder  recorder.Recorder
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// New creates an AdviceService. rec and m may be nil.
func New(col *collector.Collector, adv *strategy.Advisor, sources SourceFactory, rec recorder.Recorder, m *metrics.Metrics, log zerolog.Logger) *AdviceService {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if m != nil {
		m.Clients.Set(float64(len(col.Source.Clients())))
	}
	return &AdviceService{
		collector: col,
		advisor:   adv,
		sources:   sources,
		recorder:  rec,
		metrics:   m,
		log:       log.With().Str("component", "advice").Logger(),
	}
}

// Advise produces advice for one client and records the run. A recording
// failure is logged but does not fail the request.
func (s *AdviceService) Advise(ctx context.Context, clientID string, trigger model.Trigger) (*Result, error) {
	start := time.Now()
	res, err := s.advise(ctx, clientID, trigger)

	outcome := Outcome(err)
	if s.metrics != nil {
		var resp *model.AdviceResponse
		if res != nil {
			resp = res.Response
		}
		s.metrics.ObserveAdvice(trigger, outcome, time.Since(start), resp)
	}

	if err != nil {
		ev := s.log.Warn()
		if outcome == metrics.OutcomeError {
			ev = s.log.Error()
		}
		ev.Err(err).Str("client_id", clientID).Str("trigger", string(trigger)).Msg("advice failed")
		return nil, err
	}

	s.log.Info().
		Str("client_id", clientID).
		Str("trigger", string(trigger)).
		Str("run_id", res.RunID.String()).
		Int("recommendations", len(res.Response.Recommendations)).
		Dur("elapsed", time.Since(start)).
		Msg("advice produced")
	return res, nil
}

func (s *AdviceService) advise(ctx context.Context, clientID string, trigger model.Trigger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in, err := s.collector.Collect(clientID)
	if err != nil {
		return nil, err
	}
	resp, err := s.advisor.Advise(in.Client, in.Portfolio, in.Trends, s.sources())
	if err != nil {
		return nil, err
	}

	run := recorder.NewAdviceRun(trigger, resp)
	if err := s.recorder.RecordAdvice(run); err != nil {
		s.log.Error().Err(err).Str("run_id", run.RunID.String()).Msg("record advice")
	}
	return &Result{RunID: run.RunID, Response: resp}, nil
}

// Clients lists every known client.
func (s *AdviceService) Clients() []model.ClientProfile {
	return s.collector.Source.Clients()
}

// MarketTrends returns the current market snapshot.
func (s *AdviceService) MarketTrends() (*model.MarketTrends, error) {
	m, err := s.collector.Source.MarketTrends()
	if err != nil {
		return nil, fmt.Errorf("fetch market trends: %w", err)
	}
	return m, nil
}

// Run returns a previously recorded advice run.
func (s *AdviceService) Run(runID uuid.UUID) (*recorder.AdviceRun, error) {
	return s.recorder.LoadAdvice(runID)
}

// History lists the newest recorded runs for a client.
func (s *AdviceService) History(clientID string, limit int) ([]recorder.RunSummary, error) {
	if _, err := s.collector.Source.Client(clientID); err != nil {
		return nil, err
	}
	return s.recorder.RecentRuns(clientID, limit)
}

// Outcome classifies an advice error for metrics and transport mapping.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, model.ErrClientNotFound), errors.Is(err, model.ErrPortfolioNotFound), errors.Is(err, recorder.ErrRunNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, model.ErrInvalidEnumeration):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
