package sampledomain

import (
	"context"

	"datatests/internal/datatest/registry"
	id "datatests/pkg/domain"
)

// InvoiceType is the registry name of Invoice.
const InvoiceType id.TypeName = "billing.invoice"

// Invoice is a billed amount in minor currency units.
type Invoice struct {
	ID    id.ObjectID
	Total int64
}

// Invoices is the Invoice repository and its registry.Model.
type Invoices struct {
	store *objects[Invoice]
}

func NewInvoices(items ...Invoice) *Invoices {
	return &Invoices{store: newObjects(func(i Invoice) id.ObjectID { return i.ID }, items)}
}

func (r *Invoices) Put(inv Invoice)             { r.store.put(inv) }
func (r *Invoices) Delete(objectID id.ObjectID) { r.store.delete(objectID) }
func (r *Invoices) TypeName() id.TypeName       { return InvoiceType }

func (r *Invoices) ListIDs(ctx context.Context) ([]id.ObjectID, error) {
	if err := contextErr(ctx); err != nil {
		return nil, err
	}
	return r.store.ids(), nil
}

func (r *Invoices) Get(_ context.Context, objectID id.ObjectID) (any, error) {
	return r.store.get(objectID)
}

func (r *Invoices) Tests() []registry.Test {
	return []registry.Test{
		registry.Instance("has_positive_total", registry.Check(func(inv Invoice) bool {
			return inv.Total > 0
		})),
	}
}
