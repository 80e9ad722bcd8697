//go:build integration

package testmethod_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"datatests/internal/datatest/models"
	"datatests/internal/datatest/store/testmethod"
	id "datatests/pkg/domain"
	"datatests/pkg/platform/sentinel"
	"datatests/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *testmethod.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = testmethod.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "data_test_results", "data_test_methods"))
}

// TestUpsertKeepsOriginalID verifies rediscovery refreshes title and kind
// in place instead of minting a second descriptor.
func (s *PostgresStoreSuite) TestUpsertKeepsOriginalID() {
	ctx := context.Background()
	first, err := s.store.Upsert(ctx, &models.TestMethod{
		ID: id.NewTestMethodID(), TypeName: "crm.customer", MethodName: "no_duplicate_emails",
		Title: "No duplicate emails", Kind: models.KindBatch,
	})
	s.Require().NoError(err)

	second, err := s.store.Upsert(ctx, &models.TestMethod{
		ID: id.NewTestMethodID(), TypeName: "crm.customer", MethodName: "no_duplicate_emails",
		Title: "Emails are unique", Kind: models.KindBatch,
	})
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal("Emails are unique", second.Title)

	found, err := s.store.FindByID(ctx, first.ID)
	s.Require().NoError(err)
	s.Equal("Emails are unique", found.Title)

	byName, err := s.store.ListByMethodName(ctx, "no_duplicate_emails")
	s.Require().NoError(err)
	s.Len(byName, 1)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), id.NewTestMethodID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
