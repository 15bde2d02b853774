package recorder

import (
	"fmt"

	"github.com/google/uuid"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAdvice(_ *AdviceRun) error { return nil }

func (n *NoopRecorder) LoadAdvice(runID uuid.UUID) (*AdviceRun, error) {
	return nil, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
}

func (n *NoopRecorder) RecentRuns(_ string, _ int) ([]RunSummary, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                    { return nil }
