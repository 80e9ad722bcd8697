package testmethod

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
	"datatests/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func newMethod(typeName id.TypeName, name string, kind models.Kind) *models.TestMethod {
	return &models.TestMethod{
		ID:         id.NewTestMethodID(),
		TypeName:   typeName,
		MethodName: name,
		Title:      name,
		Kind:       kind,
	}
}

// TestUpsertIsIdempotent verifies re-discovery keeps the original id and
// only refreshes title and kind.
func (s *InMemorySuite) TestUpsertIsIdempotent() {
	first, err := s.store.Upsert(s.ctx, newMethod("billing.invoice", "has_positive_total", models.KindInstance))
	s.Require().NoError(err)

	again := newMethod("billing.invoice", "has_positive_total", models.KindBatch)
	again.Title = "Totals are positive"
	second, err := s.store.Upsert(s.ctx, again)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("Totals are positive", second.Title)
	s.Equal(models.KindBatch, second.Kind)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *InMemorySuite) TestLookups() {
	inv, err := s.store.Upsert(s.ctx, newMethod("billing.invoice", "has_positive_total", models.KindInstance))
	s.Require().NoError(err)
	_, err = s.store.Upsert(s.ctx, newMethod("crm.user", "no_duplicate_emails", models.KindBatch))
	s.Require().NoError(err)
	_, err = s.store.Upsert(s.ctx, newMethod("crm.lead", "no_duplicate_emails", models.KindBatch))
	s.Require().NoError(err)

	s.Run("find by id", func() {
		found, err := s.store.FindByID(s.ctx, inv.ID)
		s.Require().NoError(err)
		s.Equal("has_positive_total", found.MethodName)
	})

	s.Run("unknown id", func() {
		_, err := s.store.FindByID(s.ctx, id.NewTestMethodID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("by type", func() {
		got, err := s.store.ListByType(s.ctx, "crm.user")
		s.Require().NoError(err)
		s.Len(got, 1)
	})

	s.Run("by method name spans types in type order", func() {
		got, err := s.store.ListByMethodName(s.ctx, "no_duplicate_emails")
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(id.TypeName("crm.lead"), got[0].TypeName)
		s.Equal(id.TypeName("crm.user"), got[1].TypeName)
	})

	s.Run("returned values are copies", func() {
		found, err := s.store.FindByID(s.ctx, inv.ID)
		s.Require().NoError(err)
		found.Title = "mutated"
		again, err := s.store.FindByID(s.ctx, inv.ID)
		s.Require().NoError(err)
		s.Equal("has_positive_total", again.Title)
	})
}
