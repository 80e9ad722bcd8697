package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"datatests/internal/datatest/events"
	"datatests/internal/datatest/models"
	"datatests/internal/datatest/registry"
	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
	"datatests/pkg/platform/sentinel"
	pstrings "datatests/pkg/platform/strings"
	"datatests/pkg/requestcontext"
)

// Run outcomes reported to metrics.
const (
	outcomeOK         = "ok"
	outcomeBatchError = "batch_error"
	outcomeError      = "error"
)

// RunTestMethod reconciles the rows of one descriptor with the live objects
// of its type and evaluates the test:
//
//  1. rows whose object is gone are marked stale, then every stale row is
//     deleted
//  2. a pending row is inserted for every live object without one
//  3. the test is evaluated and every row overwritten
//  4. counts are logged, exported and published
//
// Predicate failures never surface as errors; they become failing rows.
// The returned error is reserved for infrastructure failures.
func (s *Service) RunTestMethod(ctx context.Context, method *models.TestMethod) (*models.RunSummary, error) {
	if method == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "test method is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "run cancelled")
	}
	// The shared run is detached from any one caller's cancellation; a
	// cancelled caller stops waiting while the others still get the result.
	ch := s.inflight.DoChan(method.ID.String(), func() (any, error) {
		return s.run(context.WithoutCancel(ctx), method)
	})
	select {
	case <-ctx.Done():
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeInternal, "run cancelled")
	case res := <-ch:
		if res.Shared {
			s.logger.DebugContext(ctx, "joined in-flight run", "type", method.TypeName, "method", method.MethodName)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.RunSummary), nil
	}
}

// RunByID loads a persisted descriptor and runs it.
func (s *Service) RunByID(ctx context.Context, methodID id.TestMethodID) (*models.RunSummary, error) {
	method, err := s.methods.FindByID(ctx, methodID)
	if err != nil {
		return nil, storeError(err, "test method")
	}
	return s.RunTestMethod(ctx, method)
}

func (s *Service) run(ctx context.Context, method *models.TestMethod) (summary *models.RunSummary, err error) {
	model, test, err := s.lookup(method)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "datatests.run", trace.WithAttributes(
		attribute.String("datatests.type", method.TypeName.String()),
		attribute.String("datatests.method", method.MethodName),
		attribute.String("datatests.kind", string(method.Kind)),
	))
	defer span.End()

	started := time.Now()
	summary = &models.RunSummary{
		RunID:        ulid.Make().String(),
		TestMethodID: method.ID,
		TypeName:     method.TypeName,
		MethodName:   method.MethodName,
		Kind:         method.Kind,
		StartedAt:    requestcontext.Now(ctx),
	}
	span.SetAttributes(attribute.String("datatests.run_id", summary.RunID))

	defer func() {
		outcome := outcomeOK
		switch {
		case err != nil:
			outcome = outcomeError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case summary.BatchError != "":
			outcome = outcomeBatchError
		}
		s.observeRun(method, outcome, started)
	}()

	live, err := model.ListIDs(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal,
			fmt.Sprintf("failed to list %s objects", method.TypeName))
	}
	// One row per object: repeated or empty ids would fight over the same slot.
	live = pstrings.Dedupe(live)

	if summary.Purged, err = s.purgeStale(ctx, method, live); err != nil {
		return nil, err
	}

	if method.IsBatch() {
		err = s.runBatch(ctx, method, test, live, summary)
	} else {
		err = s.runInstances(ctx, method, model, test, live, summary)
	}
	if err != nil {
		return nil, err
	}

	counts, err := s.results.Counts(ctx, method.ID)
	if err != nil {
		return nil, storeError(err, "result counts")
	}
	summary.Counts = counts
	summary.Duration = time.Since(started)
	s.report(ctx, summary)
	return summary, nil
}

func (s *Service) lookup(method *models.TestMethod) (registry.Model, registry.Test, error) {
	model, ok := s.catalog.Model(method.TypeName)
	if !ok {
		return nil, registry.Test{}, dErrors.Newf(dErrors.CodeNotFound, "domain type %s is not registered", method.TypeName)
	}
	test, ok := s.catalog.Test(method.TypeName, method.MethodName)
	if !ok {
		return nil, registry.Test{}, dErrors.Newf(dErrors.CodeNotFound, "test %s.%s is not registered",
			method.TypeName, method.MethodName)
	}
	if test.Kind() != method.Kind {
		return nil, registry.Test{}, dErrors.Newf(dErrors.CodeConflict,
			"test %s.%s is registered as %s but stored as %s; sync the catalog",
			method.TypeName, method.MethodName, test.Kind(), method.Kind)
	}
	return model, test, nil
}

// purgeStale runs step 1. Purging completes before any row is added so a
// stale row never competes with its replacement.
func (s *Service) purgeStale(ctx context.Context, method *models.TestMethod, live []id.ObjectID) (int, error) {
	if _, err := s.results.MarkOrphansStale(ctx, method.ID, live, requestcontext.Now(ctx)); err != nil {
		return 0, storeError(err, "stale results")
	}
	purged, err := s.results.DeleteStale(ctx, method.ID)
	if err != nil {
		return 0, storeError(err, "stale results")
	}
	s.addPurged(purged)
	return purged, nil
}

// fillGaps runs step 2 and returns how many rows were created.
func (s *Service) fillGaps(ctx context.Context, method *models.TestMethod, live []id.ObjectID) (int, error) {
	existing, err := s.results.ObjectIDs(ctx, method.ID)
	if err != nil {
		return 0, fmt.Errorf("list existing results: %w", err)
	}
	have := make(map[id.ObjectID]struct{}, len(existing))
	for _, oid := range existing {
		have[oid] = struct{}{}
	}
	missing := make([]id.ObjectID, 0, len(live))
	for _, oid := range live {
		if _, ok := have[oid]; !ok {
			missing = append(missing, oid)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}
	inserted, err := s.results.InsertPending(ctx, method, missing, requestcontext.Now(ctx))
	if err != nil {
		return 0, fmt.Errorf("insert pending results: %w", err)
	}
	s.addInserted(inserted)
	return inserted, nil
}

// runBatch evaluates a batch test once for the whole type. Any failure in
// gap fill, evaluation or the bulk update marks every row of the
// descriptor failing with the diagnostic.
func (s *Service) runBatch(ctx context.Context, method *models.TestMethod, test registry.Test, live []id.ObjectID, summary *models.RunSummary) error {
	inserted, err := s.fillGaps(ctx, method, live)
	summary.Inserted = inserted
	if err == nil {
		var out registry.BatchOutcome
		out, err = test.EvaluateBatch(ctx)
		if err == nil {
			err = s.results.ApplyBatchOutcome(ctx, method.ID, out.Failing, out.Message, requestcontext.Now(ctx))
		}
	}
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return dErrors.Wrap(ctxErr, dErrors.CodeInternal, "run cancelled")
	}

	summary.BatchError = models.FailedToRun(err)
	s.incrementPredicateError(method)
	s.logger.ErrorContext(ctx, "batch data test failed to run",
		"run_id", summary.RunID,
		"type", method.TypeName,
		"method", method.MethodName,
		"error", err,
	)
	if failErr := s.results.FailAll(ctx, method.ID, summary.BatchError, requestcontext.Now(ctx)); failErr != nil {
		return storeError(errors.Join(err, failErr), "batch results")
	}
	return nil
}

// runInstances evaluates an instance test against every live row. Each
// row is written as soon as it is evaluated; one object's failure never
// affects its siblings.
func (s *Service) runInstances(ctx context.Context, method *models.TestMethod, model registry.Model, test registry.Test, live []id.ObjectID, summary *models.RunSummary) error {
	inserted, err := s.fillGaps(ctx, method, live)
	if err != nil {
		return storeError(err, "pending results")
	}
	summary.Inserted = inserted

	rows, err := s.results.ListByMethod(ctx, method.ID)
	if err != nil {
		return storeError(err, "results")
	}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "run cancelled")
		}
		if row.IsStale() {
			continue
		}
		out := s.evaluateObject(ctx, method, model, test, *row.ObjectID)
		if err := s.results.SetOutcome(ctx, row.ID, out, requestcontext.Now(ctx)); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				// purged by a concurrent run
				continue
			}
			return storeError(err, "result")
		}
	}
	return nil
}

// evaluateObject fetches one live object and applies an instance test to it.
// Fetch errors, type mismatches, predicate errors and panics all produce a
// failing outcome carrying the diagnostic.
func (s *Service) evaluateObject(ctx context.Context, method *models.TestMethod, model registry.Model, test registry.Test, objectID id.ObjectID) models.Outcome {
	obj, err := model.Get(ctx, objectID)
	if err == nil {
		var out models.Outcome
		out, err = test.EvaluateObject(ctx, obj)
		if err == nil {
			out.Message = models.TruncateMessage(out.Message)
			return out
		}
	}
	s.incrementPredicateError(method)
	s.logger.WarnContext(ctx, "data test failed to run for object",
		"type", method.TypeName,
		"method", method.MethodName,
		"object_id", objectID,
		"error", err,
	)
	return models.Outcome{Passed: false, Message: models.FailedToRun(err)}
}

// report runs step 4.
func (s *Service) report(ctx context.Context, summary *models.RunSummary) {
	s.logger.InfoContext(ctx, "data test run finished",
		"run_id", summary.RunID,
		"type", summary.TypeName,
		"method", summary.MethodName,
		"passed", summary.Counts.Passed,
		"failed", summary.Counts.Failed,
		"failed_xfail", summary.Counts.FailedXFail,
		"purged", summary.Purged,
		"inserted", summary.Inserted,
		"duration", summary.Duration,
	)
	if s.metrics != nil {
		s.metrics.SetCounts(summary.TypeName.String(), summary.MethodName,
			summary.Counts.Passed, summary.Counts.Failed, summary.Counts.FailedXFail)
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.FromSummary(summary)); err != nil {
			s.logger.WarnContext(ctx, "failed to publish run event", "run_id", summary.RunID, "error", err)
		}
	}
}

func (s *Service) observeRun(method *models.TestMethod, outcome string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRun(method.TypeName.String(), method.MethodName, outcome, started)
	}
}

func (s *Service) addPurged(n int) {
	if s.metrics != nil {
		s.metrics.AddPurged(n)
	}
}

func (s *Service) addInserted(n int) {
	if s.metrics != nil {
		s.metrics.AddInserted(n)
	}
}

func (s *Service) incrementPredicateError(method *models.TestMethod) {
	if s.metrics != nil {
		s.metrics.IncrementPredicateError(method.TypeName.String(), method.MethodName)
	}
}
