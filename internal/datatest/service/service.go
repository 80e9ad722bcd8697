// Package service reconciles persisted data-test results with the live
// objects of every registered domain type and evaluates the tests.
package service

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"datatests/internal/datatest/metrics"
	"datatests/internal/datatest/registry"
	dErrors "datatests/pkg/domain-errors"
	"datatests/pkg/platform/sentinel"
)

// Service owns the catalog snapshot and both stores. It has no background
// work; every operation runs synchronously on the caller's goroutine.
type Service struct {
	catalog   *registry.Catalog
	methods   MethodStore
	results   ResultStore
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer

	// inflight collapses concurrent runs of the same descriptor.
	inflight singleflight.Group
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service over an immutable catalog.
func New(catalog *registry.Catalog, methods MethodStore, results ResultStore, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		methods: methods,
		results: results,
		logger:  slog.Default(),
		tracer:  otel.Tracer("datatests/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the registered types, e.g. for CLI type resolution.
func (s *Service) Catalog() *registry.Catalog {
	return s.catalog
}

// storeError converts a store failure into a coded domain error.
func storeError(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, what+" not found")
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.Wrap(err, dErrors.CodeConflict, what+" conflict")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access "+what)
}
