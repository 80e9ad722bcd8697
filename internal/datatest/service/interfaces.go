package service

import (
	"context"
	"time"

	"datatests/internal/datatest/events"
	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
)

// MethodStore persists discovered test descriptors.
type MethodStore interface {
	// Upsert inserts or refreshes title/kind keyed by (type, method name)
	// and returns the stored descriptor.
	Upsert(ctx context.Context, method *models.TestMethod) (*models.TestMethod, error)
	FindByID(ctx context.Context, methodID id.TestMethodID) (*models.TestMethod, error)
	List(ctx context.Context) ([]*models.TestMethod, error)
	ListByType(ctx context.Context, typeName id.TypeName) ([]*models.TestMethod, error)
}

// ResultStore persists one result row per (descriptor, object).
type ResultStore interface {
	// MarkOrphansStale clears the object id of rows whose object is not live.
	MarkOrphansStale(ctx context.Context, methodID id.TestMethodID, live []id.ObjectID, now time.Time) (int, error)
	MarkObjectStale(ctx context.Context, ref id.ObjectRef, now time.Time) (int, error)
	DeleteStale(ctx context.Context, methodID id.TestMethodID) (int, error)
	ObjectIDs(ctx context.Context, methodID id.TestMethodID) ([]id.ObjectID, error)
	// InsertPending skips ids that already have a row.
	InsertPending(ctx context.Context, method *models.TestMethod, objectIDs []id.ObjectID, now time.Time) (int, error)
	ListByMethod(ctx context.Context, methodID id.TestMethodID) ([]*models.TestResult, error)
	ListByObject(ctx context.Context, ref id.ObjectRef) ([]*models.TestResult, error)
	FindByID(ctx context.Context, resultID id.TestResultID) (*models.TestResult, error)
	SetOutcome(ctx context.Context, resultID id.TestResultID, out models.Outcome, now time.Time) error
	ApplyBatchOutcome(ctx context.Context, methodID id.TestMethodID, failing []id.ObjectID, message string, now time.Time) error
	FailAll(ctx context.Context, methodID id.TestMethodID, message string, now time.Time) error
	Counts(ctx context.Context, methodID id.TestMethodID) (models.ResultCounts, error)
	Annotate(ctx context.Context, resultID id.TestResultID, xfail bool, justification string, now time.Time) (*models.TestResult, error)
	List(ctx context.Context, filter models.ResultFilter) ([]*models.TestResult, int, error)
}

// EventPublisher receives one event per completed run.
type EventPublisher interface {
	Publish(ctx context.Context, event events.RunEvent) error
}
