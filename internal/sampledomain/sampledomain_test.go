package sampledomain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datatests/internal/datatest/registry"
	id "datatests/pkg/domain"
	"datatests/pkg/platform/sentinel"
)

func TestDemoRegisters(t *testing.T) {
	catalog, err := registry.New(Demo()...)
	require.NoError(t, err)

	descs := catalog.Discover()
	require.Len(t, descs, 2)
	assert.Equal(t, InvoiceType, descs[0].TypeName)
	assert.Equal(t, "Has positive total", descs[0].Title)
	assert.Equal(t, CustomerType, descs[1].TypeName)
	assert.Equal(t, "No duplicate emails", descs[1].Title)
}

func TestInvoicesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoices(Invoice{ID: "2", Total: 5}, Invoice{ID: "1", Total: 1})

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []id.ObjectID{"1", "2"}, ids)

	repo.Delete("1")
	_, err = repo.Get(ctx, "1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	obj, err := repo.Get(ctx, "2")
	require.NoError(t, err)
	out, err := repo.Tests()[0].EvaluateObject(ctx, obj)
	require.NoError(t, err)
	assert.True(t, out.Passed)
}

func TestNoDuplicateEmailsIgnoresCase(t *testing.T) {
	repo := NewCustomers(
		Customer{ID: "a", Email: "x@example.com"},
		Customer{ID: "b", Email: " X@Example.com"},
		Customer{ID: "c", Email: "y@example.com"},
	)

	out, err := repo.Tests()[0].EvaluateBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []id.ObjectID{"a", "b"}, out.Failing)
	assert.Equal(t, DuplicateEmailMessage, out.Message)
}

func TestListIDsHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewInvoices().ListIDs(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
