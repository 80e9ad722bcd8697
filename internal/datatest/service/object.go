package service

import (
	"context"
	"errors"
	"fmt"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
	"datatests/pkg/platform/sentinel"
	"datatests/pkg/requestcontext"
)

// ResultsForObject makes sure the object has a row for every test of its
// type and returns those rows. Rows created here are pending until the next
// run.
func (s *Service) ResultsForObject(ctx context.Context, ref id.ObjectRef) ([]*models.TestResult, error) {
	if ref.ID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "object id is required")
	}
	if err := s.requireLive(ctx, ref); err != nil {
		return nil, err
	}
	methods, err := s.SyncType(ctx, ref.Type)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	for _, m := range methods {
		if _, err := s.results.InsertPending(ctx, m, []id.ObjectID{ref.ID}, now); err != nil {
			return nil, storeError(err, "pending result")
		}
	}
	rows, err := s.results.ListByObject(ctx, ref)
	if err != nil {
		return nil, storeError(err, "results")
	}
	return rows, nil
}

// requireLive rejects refs whose type is not registered or whose object the
// model cannot fetch, so no row is ever created for a missing object.
func (s *Service) requireLive(ctx context.Context, ref id.ObjectRef) error {
	model, ok := s.catalog.Model(ref.Type)
	if !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "domain type %s is not registered", ref.Type)
	}
	if _, err := model.Get(ctx, ref.ID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("%s %s not found", ref.Type, ref.ID))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to fetch %s %s", ref.Type, ref.ID))
	}
	return nil
}

// RerunForObject re-evaluates every test that covers one object: instance
// tests against that object only, batch tests for the whole type (once
// each, since their verdict depends on the other objects).
func (s *Service) RerunForObject(ctx context.Context, ref id.ObjectRef) ([]*models.TestResult, error) {
	rows, err := s.ResultsForObject(ctx, ref)
	if err != nil {
		return nil, err
	}
	model, ok := s.catalog.Model(ref.Type)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "domain type %s is not registered", ref.Type)
	}

	ranBatch := make(map[id.TestMethodID]bool)
	for _, row := range rows {
		method, err := s.methods.FindByID(ctx, row.TestMethodID)
		if err != nil {
			return nil, storeError(err, "test method")
		}
		if method.IsBatch() {
			if ranBatch[method.ID] {
				continue
			}
			ranBatch[method.ID] = true
			if _, err := s.RunTestMethod(ctx, method); err != nil {
				return nil, err
			}
			continue
		}
		_, test, err := s.lookup(method)
		if err != nil {
			return nil, err
		}
		out := s.evaluateObject(ctx, method, model, test, ref.ID)
		if err := s.results.SetOutcome(ctx, row.ID, out, requestcontext.Now(ctx)); err != nil {
			return nil, storeError(err, "result")
		}
	}

	rows, err = s.results.ListByObject(ctx, ref)
	if err != nil {
		return nil, storeError(err, "results")
	}
	return rows, nil
}

// ObjectDeleted marks the object's rows stale; the next run of each
// descriptor purges them.
func (s *Service) ObjectDeleted(ctx context.Context, ref id.ObjectRef) (int, error) {
	if ref.ID == "" {
		return 0, dErrors.New(dErrors.CodeBadRequest, "object id is required")
	}
	marked, err := s.results.MarkObjectStale(ctx, ref, requestcontext.Now(ctx))
	if err != nil {
		return 0, storeError(err, "results")
	}
	s.logger.InfoContext(ctx, "object results marked stale",
		"type", ref.Type,
		"object_id", ref.ID,
		"rows", marked,
		"actor", requestcontext.Actor(ctx),
	)
	return marked, nil
}

// FailureReport keeps the failures nobody has accepted as expected.
func FailureReport(rows []*models.TestResult) []*models.TestResult {
	var out []*models.TestResult
	for _, r := range rows {
		if r.IsUnexpectedFailure() {
			out = append(out, r)
		}
	}
	return out
}

// GetResult loads one row.
func (s *Service) GetResult(ctx context.Context, resultID id.TestResultID) (*models.TestResult, error) {
	r, err := s.results.FindByID(ctx, resultID)
	if err != nil {
		return nil, storeError(err, "test result")
	}
	return r, nil
}

// Annotate sets the only human-editable fields of a row. Re-runs never
// touch them.
func (s *Service) Annotate(ctx context.Context, resultID id.TestResultID, xfail bool, justification string) (*models.TestResult, error) {
	r, err := s.results.Annotate(ctx, resultID, xfail, models.TruncateJustification(justification), requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "test result not found")
		}
		return nil, storeError(err, "test result")
	}
	if s.metrics != nil {
		s.metrics.IncrementAnnotation()
	}
	s.logger.InfoContext(ctx, "test result annotated",
		"result_id", resultID,
		"xfail", xfail,
		"actor", requestcontext.Actor(ctx),
		"request_id", requestcontext.RequestID(ctx),
	)
	return r, nil
}

// ListResults returns one filtered page of rows.
func (s *Service) ListResults(ctx context.Context, filter models.ResultFilter) (*models.ResultPage, error) {
	filter.Normalize()
	rows, total, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "results")
	}
	return &models.ResultPage{Results: rows, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}
