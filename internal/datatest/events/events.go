// Package events publishes one RunEvent per reconciliation run so other
// systems can react to data-quality regressions without polling the tables.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"datatests/internal/datatest/models"
)

// RunEvent is the wire form of a run summary.
type RunEvent struct {
	RunID        string    `json:"run_id"`
	TestMethodID string    `json:"test_method_id"`
	TypeName     string    `json:"type_name"`
	MethodName   string    `json:"method_name"`
	Kind         string    `json:"kind"`
	Passed       int       `json:"passed"`
	Failed       int       `json:"failed"`
	FailedXFail  int       `json:"failed_xfail"`
	Purged       int       `json:"purged"`
	Inserted     int       `json:"inserted"`
	BatchError   string    `json:"batch_error,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	DurationMS   int64     `json:"duration_ms"`
}

// FromSummary converts a run summary into its event.
func FromSummary(s *models.RunSummary) RunEvent {
	return RunEvent{
		RunID:        s.RunID,
		TestMethodID: s.TestMethodID.String(),
		TypeName:     s.TypeName.String(),
		MethodName:   s.MethodName,
		Kind:         string(s.Kind),
		Passed:       s.Counts.Passed,
		Failed:       s.Counts.Failed,
		FailedXFail:  s.Counts.FailedXFail,
		Purged:       s.Purged,
		Inserted:     s.Inserted,
		BatchError:   s.BatchError,
		StartedAt:    s.StartedAt,
		DurationMS:   s.Duration.Milliseconds(),
	}
}

// Key partitions events by descriptor so one descriptor's runs stay ordered.
func (e RunEvent) Key() string {
	return e.TestMethodID
}

func (e RunEvent) encode() ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal run event: %w", err)
	}
	return payload, nil
}

// Publisher delivers run events. Publish failures are reported to the
// caller, which logs them; a failed publish never fails a run.
type Publisher interface {
	Publish(ctx context.Context, event RunEvent) error
	Close() error
}

// LogPublisher writes events to the structured log. It is the default sink.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e RunEvent) error {
	p.logger.InfoContext(ctx, "data test run completed",
		"run_id", e.RunID,
		"type", e.TypeName,
		"method", e.MethodName,
		"passed", e.Passed,
		"failed", e.Failed,
		"failed_xfail", e.FailedXFail,
		"duration_ms", e.DurationMS,
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, RunEvent) error { return nil }
func (Nop) Close() error                            { return nil }
