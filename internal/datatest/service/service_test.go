package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datatests/internal/datatest/events"
	"datatests/internal/datatest/metrics"
	"datatests/internal/datatest/models"
	"datatests/internal/datatest/registry"
	"datatests/internal/datatest/service/mocks"
	"datatests/internal/datatest/store/testmethod"
	"datatests/internal/datatest/store/testresult"
	"datatests/internal/platform/logger"
	"datatests/internal/sampledomain"
	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
	"datatests/pkg/platform/sentinel"
	"datatests/pkg/requestcontext"
)

// gauge is a test model whose instance test errors for negative values and
// panics for zero.
type gauge struct {
	objects map[id.ObjectID]int
}

func (g *gauge) TypeName() id.TypeName { return "ops.gauge" }

func (g *gauge) ListIDs(context.Context) ([]id.ObjectID, error) {
	out := make([]id.ObjectID, 0, len(g.objects))
	for oid := range g.objects {
		out = append(out, oid)
	}
	return out, nil
}

func (g *gauge) Get(_ context.Context, oid id.ObjectID) (any, error) {
	v, ok := g.objects[oid]
	if !ok {
		return nil, errors.New("gauge vanished")
	}
	return v, nil
}

func (g *gauge) Tests() []registry.Test {
	return []registry.Test{
		registry.Instance("reads_in_range", func(_ context.Context, v int) (bool, string, error) {
			switch {
			case v < 0:
				return false, "", errors.New("sensor offline")
			case v == 0:
				var m map[string]int
				m["boom"] = 1
			}
			return v < 100, "", nil
		}),
	}
}

// brokenBatch is a model whose batch test always errors.
type brokenBatch struct{ ids []id.ObjectID }

func (b *brokenBatch) TypeName() id.TypeName                          { return "ops.broken" }
func (b *brokenBatch) ListIDs(context.Context) ([]id.ObjectID, error) { return b.ids, nil }
func (b *brokenBatch) Get(context.Context, id.ObjectID) (any, error)  { return nil, nil }
func (b *brokenBatch) Tests() []registry.Test {
	return []registry.Test{
		registry.Batch("never_runs", func(context.Context) (registry.BatchOutcome, error) {
			return registry.BatchOutcome{}, errors.New("warehouse unreachable")
		}),
	}
}

// paddedBatch lists ids that differ only by whitespace and repeats one.
type paddedBatch struct{}

func (paddedBatch) TypeName() id.TypeName { return "ops.padded" }
func (paddedBatch) ListIDs(context.Context) ([]id.ObjectID, error) {
	return []id.ObjectID{" p1", "p1", "p2", " p1"}, nil
}
func (paddedBatch) Get(context.Context, id.ObjectID) (any, error) { return nil, nil }
func (paddedBatch) Tests() []registry.Test {
	return []registry.Test{
		registry.Batch("padded_ids_flagged", func(context.Context) (registry.BatchOutcome, error) {
			return registry.BatchOutcome{Failing: []id.ObjectID{" p1"}, Message: "leading space"}, nil
		}),
	}
}

// gatedModel blocks ListIDs until release is closed or its context ends.
type gatedModel struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedModel) TypeName() id.TypeName { return "ops.gated" }
func (g *gatedModel) ListIDs(ctx context.Context) ([]id.ObjectID, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return []id.ObjectID{"k1"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
func (g *gatedModel) Get(context.Context, id.ObjectID) (any, error) { return 1, nil }
func (g *gatedModel) Tests() []registry.Test {
	return []registry.Test{
		registry.Instance("is_one", registry.Check(func(v int) bool { return v == 1 })),
	}
}

// failingBatchUpdate makes the bulk batch update fail after the predicate
// succeeded.
type failingBatchUpdate struct {
	*testresult.InMemory
}

func (f failingBatchUpdate) ApplyBatchOutcome(context.Context, id.TestMethodID, []id.ObjectID, string, time.Time) error {
	return errors.New("deadlock detected")
}

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	invoices  *sampledomain.Invoices
	customers *sampledomain.Customers
	gauges    *gauge
	broken    *brokenBatch
	methods   *testmethod.InMemory
	results   *testresult.InMemory
	publisher *mocks.MockEventPublisher
	metrics   *metrics.Metrics
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.invoices = sampledomain.NewInvoices(
		sampledomain.Invoice{ID: "1", Total: 10},
		sampledomain.Invoice{ID: "2", Total: -5},
		sampledomain.Invoice{ID: "3", Total: 0},
	)
	s.customers = sampledomain.NewCustomers(
		sampledomain.Customer{ID: "a", Email: "x@example.com"},
		sampledomain.Customer{ID: "b", Email: "x@example.com"},
		sampledomain.Customer{ID: "c", Email: "y@example.com"},
	)
	s.gauges = &gauge{objects: map[id.ObjectID]int{"g1": 5, "g2": -1, "g3": 0, "g4": 500}}
	s.broken = &brokenBatch{ids: []id.ObjectID{"x1", "x2"}}

	catalog, err := registry.New(s.invoices, s.customers, s.gauges, s.broken)
	s.Require().NoError(err)

	ctrl := gomock.NewController(s.T())
	s.publisher = mocks.NewMockEventPublisher(ctrl)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.methods = testmethod.NewInMemory()
	s.results = testresult.NewInMemory()
	s.metrics = metrics.NewWithRegistry(prometheus.NewRegistry())
	s.service = s.newService(s.results, catalog)
}

func (s *ServiceSuite) newService(results ResultStore, catalog *registry.Catalog) *Service {
	return New(catalog, s.methods, results,
		WithLogger(logger.Discard()),
		WithMetrics(s.metrics),
		WithPublisher(s.publisher),
	)
}

func (s *ServiceSuite) method(typeName id.TypeName, name string) *models.TestMethod {
	methods, err := s.service.SyncType(s.ctx, typeName)
	s.Require().NoError(err)
	for _, m := range methods {
		if m.MethodName == name {
			return m
		}
	}
	s.FailNow("descriptor not synced", "%s.%s", typeName, name)
	return nil
}

func (s *ServiceSuite) run(typeName id.TypeName, name string) *models.RunSummary {
	summary, err := s.service.RunTestMethod(s.ctx, s.method(typeName, name))
	s.Require().NoError(err)
	return summary
}

// rowsByObject indexes the live rows of one descriptor.
func (s *ServiceSuite) rowsByObject(m *models.TestMethod) map[id.ObjectID]*models.TestResult {
	rows, err := s.results.ListByMethod(s.ctx, m.ID)
	s.Require().NoError(err)
	out := make(map[id.ObjectID]*models.TestResult, len(rows))
	for _, r := range rows {
		s.Require().False(r.IsStale(), "no stale row survives a run")
		_, dup := out[*r.ObjectID]
		s.Require().False(dup, "one row per object")
		out[*r.ObjectID] = r
	}
	return out
}

func (s *ServiceSuite) TestSyncCatalogIsIdempotent() {
	first, err := s.service.SyncCatalog(s.ctx)
	s.Require().NoError(err)
	second, err := s.service.SyncCatalog(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(second, len(first))
	for i := range first {
		s.Equal(first[i].ID, second[i].ID)
	}
	listed, err := s.service.ListMethods(s.ctx)
	s.Require().NoError(err)
	s.Len(listed, 4)
}

func (s *ServiceSuite) TestInstanceScenario() {
	summary := s.run(sampledomain.InvoiceType, "has_positive_total")

	rows := s.rowsByObject(s.method(sampledomain.InvoiceType, "has_positive_total"))
	s.Require().Len(rows, 3)
	s.True(rows["1"].Passed)
	s.False(rows["2"].Passed)
	s.False(rows["3"].Passed)
	for _, r := range rows {
		s.Empty(r.Message)
	}
	s.Equal(models.ResultCounts{Passed: 1, Failed: 2}, summary.Counts)
	s.Equal(3, summary.Inserted)
	s.NotEmpty(summary.RunID)
}

func (s *ServiceSuite) TestBatchScenario() {
	summary := s.run(sampledomain.CustomerType, "no_duplicate_emails")

	rows := s.rowsByObject(s.method(sampledomain.CustomerType, "no_duplicate_emails"))
	s.Require().Len(rows, 3)
	s.False(rows["a"].Passed)
	s.Equal("duplicate email", rows["a"].Message)
	s.False(rows["b"].Passed)
	s.Equal("duplicate email", rows["b"].Message)
	s.True(rows["c"].Passed)
	s.Empty(rows["c"].Message)
	s.Empty(summary.BatchError)
}

func (s *ServiceSuite) TestRerunIsIdempotent() {
	s.run(sampledomain.InvoiceType, "has_positive_total")
	m := s.method(sampledomain.InvoiceType, "has_positive_total")
	before := s.rowsByObject(m)

	summary := s.run(sampledomain.InvoiceType, "has_positive_total")
	after := s.rowsByObject(m)

	s.Zero(summary.Inserted)
	s.Zero(summary.Purged)
	s.Require().Len(after, len(before))
	for oid, r := range before {
		s.Equal(r.ID, after[oid].ID)
		s.Equal(r.Passed, after[oid].Passed)
	}
}

func (s *ServiceSuite) TestFixedObjectFlipsToPassing() {
	s.customers.Put(sampledomain.Customer{ID: "b", Email: "z@example.com"})
	s.run(sampledomain.CustomerType, "no_duplicate_emails")

	rows := s.rowsByObject(s.method(sampledomain.CustomerType, "no_duplicate_emails"))
	for oid, r := range rows {
		s.True(r.Passed, "object %s", oid)
		s.Empty(r.Message)
	}
}

func (s *ServiceSuite) TestNewAndDeletedObjects() {
	s.run(sampledomain.InvoiceType, "has_positive_total")

	s.invoices.Delete("2")
	s.invoices.Put(sampledomain.Invoice{ID: "4", Total: 99})
	summary := s.run(sampledomain.InvoiceType, "has_positive_total")

	rows := s.rowsByObject(s.method(sampledomain.InvoiceType, "has_positive_total"))
	s.Len(rows, 3)
	s.NotContains(rows, id.ObjectID("2"))
	s.True(rows["4"].Passed)
	s.Equal(1, summary.Purged)
	s.Equal(1, summary.Inserted)
}

func (s *ServiceSuite) TestObjectDeletedHookThenRunPurges() {
	s.run(sampledomain.InvoiceType, "has_positive_total")
	ref := id.ObjectRef{Type: sampledomain.InvoiceType, ID: "3"}

	s.invoices.Delete("3")
	marked, err := s.service.ObjectDeleted(s.ctx, ref)
	s.Require().NoError(err)
	s.Equal(1, marked)

	m := s.method(sampledomain.InvoiceType, "has_positive_total")
	all, err := s.results.ListByMethod(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.True(all[2].IsStale())

	summary := s.run(sampledomain.InvoiceType, "has_positive_total")
	s.Equal(1, summary.Purged)
	s.Len(s.rowsByObject(m), 2)
}

func (s *ServiceSuite) TestPerObjectErrorsAreIsolated() {
	summary := s.run("ops.gauge", "reads_in_range")

	rows := s.rowsByObject(s.method("ops.gauge", "reads_in_range"))
	s.Require().Len(rows, 4)
	s.True(rows["g1"].Passed)
	s.Empty(rows["g1"].Message)

	s.False(rows["g2"].Passed)
	s.Equal(models.FailedToRunPrefix+"sensor offline", rows["g2"].Message)

	s.False(rows["g3"].Passed)
	s.True(strings.HasPrefix(rows["g3"].Message, models.FailedToRunPrefix+"panic:"))

	s.False(rows["g4"].Passed)
	s.Empty(rows["g4"].Message)

	s.Equal(models.ResultCounts{Passed: 1, Failed: 3}, summary.Counts)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.PredicateErrors.WithLabelValues("ops.gauge", "reads_in_range")))
}

func (s *ServiceSuite) TestBatchPredicateErrorFailsEveryRow() {
	summary := s.run("ops.broken", "never_runs")

	want := models.FailedToRunPrefix + "warehouse unreachable"
	s.Equal(want, summary.BatchError)
	rows := s.rowsByObject(s.method("ops.broken", "never_runs"))
	s.Require().Len(rows, 2)
	for _, r := range rows {
		s.False(r.Passed)
		s.Equal(want, r.Message)
	}
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RunsTotal.WithLabelValues("ops.broken", "never_runs", outcomeBatchError)))
}

func (s *ServiceSuite) TestBatchUpdateErrorFailsEveryRow() {
	svc := s.newService(failingBatchUpdate{s.results}, s.service.Catalog())
	m := s.method(sampledomain.CustomerType, "no_duplicate_emails")

	summary, err := svc.RunTestMethod(s.ctx, m)
	s.Require().NoError(err)
	s.Equal(models.FailedToRunPrefix+"deadlock detected", summary.BatchError)
	for oid, r := range s.rowsByObject(m) {
		s.False(r.Passed, "object %s", oid)
		s.Equal(summary.BatchError, r.Message)
	}
}

func (s *ServiceSuite) TestAnnotationSurvivesReruns() {
	s.run(sampledomain.InvoiceType, "has_positive_total")
	m := s.method(sampledomain.InvoiceType, "has_positive_total")
	row := s.rowsByObject(m)["2"]

	annotated, err := s.service.Annotate(s.ctx, row.ID, true, "credit note, negative on purpose")
	s.Require().NoError(err)
	s.True(annotated.XFail)

	summary := s.run(sampledomain.InvoiceType, "has_positive_total")
	got := s.rowsByObject(m)["2"]
	s.True(got.XFail)
	s.Equal("credit note, negative on purpose", got.Justification)
	s.False(got.Passed)
	s.Equal(1, summary.Counts.FailedXFail)
}

func (s *ServiceSuite) TestAnnotateUnknownResult() {
	_, err := s.service.Annotate(s.ctx, id.NewTestResultID(), true, "")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestAnnotateTruncatesJustification() {
	s.run(sampledomain.InvoiceType, "has_positive_total")
	row := s.rowsByObject(s.method(sampledomain.InvoiceType, "has_positive_total"))["1"]

	got, err := s.service.Annotate(s.ctx, row.ID, false, strings.Repeat("j", models.MaxJustificationLength+20))
	s.Require().NoError(err)
	s.Len(got.Justification, models.MaxJustificationLength)
}

func (s *ServiceSuite) TestRerunScopes() {
	s.Run("all", func() {
		summaries, err := s.service.RerunAll(s.ctx)
		s.Require().NoError(err)
		s.Len(summaries, 4)
	})

	s.Run("domain type", func() {
		summaries, err := s.service.RerunForDomainType(s.ctx, sampledomain.CustomerType)
		s.Require().NoError(err)
		s.Require().Len(summaries, 1)
		s.Equal("no_duplicate_emails", summaries[0].MethodName)
	})

	s.Run("unknown domain type", func() {
		_, err := s.service.RerunForDomainType(s.ctx, "crm.lead")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("exact method name", func() {
		summaries, err := s.service.RerunByMethodName(s.ctx, "has_positive_total")
		s.Require().NoError(err)
		s.Require().Len(summaries, 1)
		s.Equal(sampledomain.InvoiceType, summaries[0].TypeName)
	})

	s.Run("glob", func() {
		summaries, err := s.service.RerunByMethodName(s.ctx, "*_emails")
		s.Require().NoError(err)
		s.Len(summaries, 1)
	})

	s.Run("no match", func() {
		_, err := s.service.RerunByMethodName(s.ctx, "nothing_here")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("bad pattern", func() {
		_, err := s.service.RerunByMethodName(s.ctx, "[unclosed")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestResultsForObjectCreatesPendingRows() {
	ref := id.ObjectRef{Type: sampledomain.InvoiceType, ID: "1"}

	rows, err := s.service.ResultsForObject(s.ctx, ref)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.False(rows[0].Passed)
	s.Empty(rows[0].Message)

	again, err := s.service.ResultsForObject(s.ctx, ref)
	s.Require().NoError(err)
	s.Require().Len(again, 1)
	s.Equal(rows[0].ID, again[0].ID)
}

func (s *ServiceSuite) TestRerunForObject() {
	s.Run("instance test evaluates the one object", func() {
		rows, err := s.service.RerunForObject(s.ctx, id.ObjectRef{Type: sampledomain.InvoiceType, ID: "1"})
		s.Require().NoError(err)
		s.Require().Len(rows, 1)
		s.True(rows[0].Passed)

		other := s.rowsByObject(s.method(sampledomain.InvoiceType, "has_positive_total"))
		s.Len(other, 1, "siblings are not touched")
	})

	s.Run("batch test evaluates the whole type", func() {
		rows, err := s.service.RerunForObject(s.ctx, id.ObjectRef{Type: sampledomain.CustomerType, ID: "a"})
		s.Require().NoError(err)
		s.Require().Len(rows, 1)
		s.False(rows[0].Passed)
		s.Equal("duplicate email", rows[0].Message)

		s.Len(FailureReport(rows), 1)
	})
}

func (s *ServiceSuite) TestObjectEntryPointsRejectMissingObjects() {
	missing := id.ObjectRef{Type: sampledomain.InvoiceType, ID: "does-not-exist"}

	_, err := s.service.ResultsForObject(s.ctx, missing)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.RerunForObject(s.ctx, missing)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.ResultsForObject(s.ctx, id.ObjectRef{Type: "nope.nothing", ID: "1"})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	rows, err := s.results.ListByObject(s.ctx, missing)
	s.Require().NoError(err)
	s.Empty(rows, "no row is created for a missing object")

	page, err := s.service.ListResults(s.ctx, models.ResultFilter{})
	s.Require().NoError(err)
	s.Zero(page.Total)
}

func (s *ServiceSuite) TestObjectIDsAreOpaque() {
	catalog, err := registry.New(paddedBatch{})
	s.Require().NoError(err)
	svc := s.newService(testresult.NewInMemory(), catalog)
	methods, err := svc.SyncType(s.ctx, "ops.padded")
	s.Require().NoError(err)

	summary, err := svc.RunTestMethod(s.ctx, methods[0])
	s.Require().NoError(err)
	s.Equal(models.ResultCounts{Passed: 2, Failed: 1}, summary.Counts)
	s.Empty(summary.BatchError)
}

func (s *ServiceSuite) TestCancelledCallerDoesNotFailJoinedCallers() {
	gated := &gatedModel{started: make(chan struct{}), release: make(chan struct{})}
	catalog, err := registry.New(gated)
	s.Require().NoError(err)
	svc := s.newService(testresult.NewInMemory(), catalog)
	methods, err := svc.SyncType(s.ctx, "ops.gated")
	s.Require().NoError(err)
	m := methods[0]

	type result struct {
		summary *models.RunSummary
		err     error
	}
	first, cancel := context.WithCancel(s.ctx)
	defer cancel()
	firstDone := make(chan result, 1)
	go func() {
		summary, err := svc.RunTestMethod(first, m)
		firstDone <- result{summary, err}
	}()
	<-gated.started

	secondDone := make(chan result, 1)
	go func() {
		summary, err := svc.RunTestMethod(s.ctx, m)
		secondDone <- result{summary, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case r := <-firstDone:
		s.Error(r.err)
	case <-time.After(time.Second):
		s.FailNow("cancelled caller kept waiting")
	}

	close(gated.release)
	select {
	case r := <-secondDone:
		s.Require().NoError(r.err)
		s.Equal(models.ResultCounts{Passed: 1}, r.summary.Counts)
	case <-time.After(time.Second):
		s.FailNow("second caller never finished")
	}
}

func (s *ServiceSuite) TestFailureReportSkipsExpectedFailures() {
	rows := []*models.TestResult{
		{Passed: true},
		{Passed: false, XFail: true},
		{Passed: false, Message: "duplicate email"},
	}
	report := FailureReport(rows)
	s.Require().Len(report, 1)
	s.Equal("duplicate email", report[0].Message)
}

func (s *ServiceSuite) TestListResultsPages() {
	_, err := s.service.RerunAll(s.ctx)
	s.Require().NoError(err)

	failing := false
	page, err := s.service.ListResults(s.ctx, models.ResultFilter{Passed: &failing, Limit: 3})
	s.Require().NoError(err)
	s.Equal(3, page.Limit)
	s.Len(page.Results, 3)
	s.Equal(2+2+3+2, page.Total)

	page, err = s.service.ListResults(s.ctx, models.ResultFilter{})
	s.Require().NoError(err)
	s.Equal(models.DefaultPageSize, page.Limit)
	s.Equal(12, page.Total)
}

func (s *ServiceSuite) TestRunPublishesEvent() {
	ctrl := gomock.NewController(s.T())
	publisher := mocks.NewMockEventPublisher(ctrl)
	svc := New(s.service.Catalog(), s.methods, s.results,
		WithLogger(logger.Discard()),
		WithPublisher(publisher),
	)
	m := s.method(sampledomain.InvoiceType, "has_positive_total")

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e events.RunEvent) error {
		s.Equal(m.ID.String(), e.TestMethodID)
		s.Equal(1, e.Passed)
		s.Equal(2, e.Failed)
		return errors.New("broker down")
	})

	_, err := svc.RunTestMethod(s.ctx, m)
	s.NoError(err, "publish failures do not fail the run")
}

func (s *ServiceSuite) TestStoreFailuresAreInternalErrors() {
	ctrl := gomock.NewController(s.T())
	results := mocks.NewMockResultStore(ctrl)
	svc := s.newService(results, s.service.Catalog())
	m := s.method(sampledomain.InvoiceType, "has_positive_total")

	results.EXPECT().MarkOrphansStale(gomock.Any(), m.ID, gomock.Any(), gomock.Any()).
		Return(0, errors.New("connection reset"))

	_, err := svc.RunTestMethod(s.ctx, m)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RunsTotal.WithLabelValues(
		string(sampledomain.InvoiceType), "has_positive_total", outcomeError)))
}

func (s *ServiceSuite) TestMethodStoreConflictIsConflict() {
	ctrl := gomock.NewController(s.T())
	methods := mocks.NewMockMethodStore(ctrl)
	svc := New(s.service.Catalog(), methods, testresult.NewInMemory(), WithLogger(logger.Discard()))

	methods.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("test method: %w", sentinel.ErrConflict))

	_, err := svc.SyncType(s.ctx, sampledomain.InvoiceType)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestUnregisteredDescriptor() {
	orphan := &models.TestMethod{
		ID: id.NewTestMethodID(), TypeName: sampledomain.InvoiceType, MethodName: "removed_test", Kind: models.KindInstance,
	}
	_, err := s.service.RunTestMethod(s.ctx, orphan)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestRunCancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	m := s.method("ops.gauge", "reads_in_range")
	cancel()

	_, err := s.service.RunTestMethod(ctx, m)
	s.Error(err)
}
