package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"InvestAdvisor/internal/metrics"
	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/notifier"
	"InvestAdvisor/internal/service"
)

const sendRetries = 3

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the advice digest on a cron schedule and answers chat
// commands.
type Scheduler struct {
	Cron      *cron.Cron
	Service   *service.AdviceService
	Notifier  Sender
	Metrics   *metrics.Metrics
	ClientIDs []string
	Ctx       context.Context

	log zerolog.Logger
	now func() time.Time
}

// NewScheduler creates a new Scheduler. m may be nil.
func NewScheduler(ctx context.Context, svc *service.AdviceService, sender Sender, m *metrics.Metrics, clientIDs []string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Service:   svc,
		Notifier:  sender,
		Metrics:   m,
		ClientIDs: clientIDs,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
		now:       time.Now,
	}
}

// Register adds the digest job.
func (s *Scheduler) Register(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("digest_clients", len(s.ClientIDs)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunDigestNow executes the digest immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	if len(s.ClientIDs) == 0 {
		s.log.Info().Msg("digest skipped, no clients configured")
		return
	}
	s.log.Info().Int("clients", len(s.ClientIDs)).Msg("running advice digest")
	if s.Metrics != nil {
		s.Metrics.DigestRuns.Inc()
	}

	s.trySend(notifier.FormatDigestHeader(len(s.ClientIDs), s.now()))
	for _, id := range s.ClientIDs {
		if s.Ctx.Err() != nil {
			return
		}
		res, err := s.Service.Advise(s.Ctx, id, model.TriggerDigest)
		if err != nil {
			s.trySend(fmt.Sprintf("❌ Advice for %s failed: %v", id, err))
			continue
		}
		s.trySend(notifier.FormatAdvice(res.Response))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch strings.ToLower(fields[0]) {
	case "/advice":
		if len(fields) < 2 {
			return "Usage: /advice &lt;client id&gt;"
		}
		res, err := s.Service.Advise(s.Ctx, strings.ToUpper(fields[1]), model.TriggerCommand)
		switch {
		case errors.Is(err, model.ErrClientNotFound):
			return fmt.Sprintf("Client %s not found.", fields[1])
		case errors.Is(err, model.ErrPortfolioNotFound):
			return fmt.Sprintf("Client %s has no portfolio on record.", fields[1])
		case err != nil:
			return fmt.Sprintf("❌ Advice failed: %v", err)
		}
		return notifier.FormatAdvice(res.Response)
	case "/market":
		m, err := s.Service.MarketTrends()
		if err != nil {
			return fmt.Sprintf("❌ Market data unavailable: %v", err)
		}
		return notifier.FormatMarket(m)
	case "/clients":
		return notifier.FormatClients(s.Service.Clients(), s.now())
	case "/digest":
		s.digestTask()
		return ""
	default:
		return helpText
	}
}

const helpText = "Available commands:\n" +
	"• /advice &lt;client id&gt;\n" +
	"• /market\n" +
	"• /clients\n" +
	"• /digest"

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
