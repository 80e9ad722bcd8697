//go:build integration

package testresult_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"datatests/internal/datatest/models"
	"datatests/internal/datatest/store/testmethod"
	"datatests/internal/datatest/store/testresult"
	id "datatests/pkg/domain"
	"datatests/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	methods  *testmethod.PostgresStore
	store    *testresult.PostgresStore
	method   *models.TestMethod
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.methods = testmethod.NewPostgres(s.postgres.DB)
	s.store = testresult.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "data_test_results", "data_test_methods"))
	s.now = time.Now().UTC().Truncate(time.Microsecond)

	m, err := s.methods.Upsert(ctx, &models.TestMethod{
		ID: id.NewTestMethodID(), TypeName: "billing.invoice", MethodName: "has_positive_total",
		Title: "Has positive total", Kind: models.KindInstance,
	})
	s.Require().NoError(err)
	s.method = m
}

// TestConcurrentInsertPending verifies racing gap fills never create
// duplicate rows.
func (s *PostgresStoreSuite) TestConcurrentInsertPending() {
	ctx := context.Background()
	ids := []id.ObjectID{"1", "2", "3", "4"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.InsertPending(ctx, s.method, ids, s.now)
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.store.ObjectIDs(ctx, s.method.ID)
	s.Require().NoError(err)
	s.Equal(ids, got)
}

func (s *PostgresStoreSuite) TestStaleThenBatchOutcome() {
	ctx := context.Background()
	_, err := s.store.InsertPending(ctx, s.method, []id.ObjectID{"1", "2", "3"}, s.now)
	s.Require().NoError(err)

	marked, err := s.store.MarkOrphansStale(ctx, s.method.ID, []id.ObjectID{"1", "2"}, s.now)
	s.Require().NoError(err)
	s.Equal(1, marked)
	deleted, err := s.store.DeleteStale(ctx, s.method.ID)
	s.Require().NoError(err)
	s.Equal(1, deleted)

	s.Require().NoError(s.store.ApplyBatchOutcome(ctx, s.method.ID, []id.ObjectID{"2"}, "duplicate email", s.now))

	c, err := s.store.Counts(ctx, s.method.ID)
	s.Require().NoError(err)
	s.Equal(models.ResultCounts{Passed: 1, Failed: 1}, c)

	rows, err := s.store.ListByObject(ctx, id.ObjectRef{Type: "billing.invoice", ID: "2"})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("duplicate email", rows[0].Message)
}

func (s *PostgresStoreSuite) TestAnnotateSurvivesReevaluation() {
	ctx := context.Background()
	_, err := s.store.InsertPending(ctx, s.method, []id.ObjectID{"1"}, s.now)
	s.Require().NoError(err)
	rows, err := s.store.ListByMethod(ctx, s.method.ID)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)

	_, err = s.store.Annotate(ctx, rows[0].ID, true, "legacy import", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.SetOutcome(ctx, rows[0].ID, models.Outcome{Message: "total is 0"}, s.now))

	got, err := s.store.FindByID(ctx, rows[0].ID)
	s.Require().NoError(err)
	s.True(got.XFail)
	s.Equal("legacy import", got.Justification)
	s.Equal("total is 0", got.Message)

	xfail := true
	page, total, err := s.store.List(ctx, models.ResultFilter{XFail: &xfail})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Len(page, 1)
}
