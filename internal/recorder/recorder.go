package recorder

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"InvestAdvisor/internal/model"
)

// ErrRunNotFound is returned when a run id has no recorded advice.
var ErrRunNotFound = errors.New("advice run not found")

// AdviceRun is one advice response together with what triggered it.
type AdviceRun struct {
	RunID    uuid.UUID
	Trigger  model.Trigger
	Response *model.AdviceResponse
}

// NewAdviceRun wraps resp with a fresh run id.
func NewAdviceRun(trigger model.Trigger, resp *model.AdviceResponse) *AdviceRun {
	return &AdviceRun{RunID: uuid.New(), Trigger: trigger, Response: resp}
}

// RunSummary is the index row of a recorded run.
type RunSummary struct {
	RunID       uuid.UUID     `json:"run_id"`
	ClientID    string        `json:"client_id"`
	Trigger     model.Trigger `json:"trigger"`
	GeneratedAt time.Time     `json:"generated_at"`
	Increases   int           `json:"increases"`
	Reductions  int           `json:"reductions"`
	Sells       int           `json:"sells"`
	Holds       int           `json:"holds"`
}

// Recorder keeps an audit trail of advice runs.
type Recorder interface {
	RecordAdvice(run *AdviceRun) error
	// LoadAdvice returns a recorded run, or an error wrapping ErrRunNotFound.
	LoadAdvice(runID uuid.UUID) (*AdviceRun, error)
	// RecentRuns lists the newest runs for a client, newest first.
	RecentRuns(clientID string, limit int) ([]RunSummary, error)
	Close() error
}
