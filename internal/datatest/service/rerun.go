package service

import (
	"context"
	"errors"

	"github.com/bmatcuk/doublestar/v4"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
)

// RerunForDomainType runs every descriptor of one type, one after another.
func (s *Service) RerunForDomainType(ctx context.Context, typeName id.TypeName) ([]*models.RunSummary, error) {
	methods, err := s.SyncType(ctx, typeName)
	if err != nil {
		return nil, err
	}
	return s.runSequential(ctx, methods)
}

// RerunAll runs every registered descriptor, one after another.
func (s *Service) RerunAll(ctx context.Context) ([]*models.RunSummary, error) {
	methods, err := s.SyncCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return s.runSequential(ctx, methods)
}

// RerunByMethodName runs every descriptor whose method name matches
// pattern. A plain name matches exactly; doublestar wildcards are allowed.
func (s *Service) RerunByMethodName(ctx context.Context, pattern string) ([]*models.RunSummary, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid test name pattern %q", pattern)
	}
	methods, err := s.SyncCatalog(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*models.TestMethod
	for _, m := range methods {
		ok, err := doublestar.Match(pattern, m.MethodName)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid test name pattern")
		}
		if ok {
			matched = append(matched, m)
		}
	}
	if len(matched) == 0 {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no test method matches %q", pattern)
	}
	return s.runSequential(ctx, matched)
}

// runSequential keeps going after an infrastructure failure so one broken
// descriptor does not hide the results of the rest; all errors are joined.
func (s *Service) runSequential(ctx context.Context, methods []*models.TestMethod) ([]*models.RunSummary, error) {
	summaries := make([]*models.RunSummary, 0, len(methods))
	var errs []error
	for _, m := range methods {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		summary, err := s.RunTestMethod(ctx, m)
		if err != nil {
			s.logger.ErrorContext(ctx, "data test run failed",
				"type", m.TypeName,
				"method", m.MethodName,
				"error", err,
			)
			errs = append(errs, err)
			continue
		}
		summaries = append(summaries, summary)
	}
	if len(errs) > 0 {
		return summaries, dErrors.Wrap(errors.Join(errs...), dErrors.CodeInternal, "some data test runs failed")
	}
	return summaries, nil
}
