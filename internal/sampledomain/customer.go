package sampledomain

import (
	"context"
	"sort"
	"strings"

	"datatests/internal/datatest/registry"
	id "datatests/pkg/domain"
)

// CustomerType is the registry name of Customer.
const CustomerType id.TypeName = "crm.customer"

// DuplicateEmailMessage is stored on every customer sharing an email.
const DuplicateEmailMessage = "duplicate email"

type Customer struct {
	ID    id.ObjectID
	Email string
}

// Customers is the Customer repository and its registry.Model.
type Customers struct {
	store *objects[Customer]
}

func NewCustomers(items ...Customer) *Customers {
	return &Customers{store: newObjects(func(c Customer) id.ObjectID { return c.ID }, items)}
}

func (r *Customers) Put(c Customer)              { r.store.put(c) }
func (r *Customers) Delete(objectID id.ObjectID) { r.store.delete(objectID) }
func (r *Customers) TypeName() id.TypeName       { return CustomerType }

func (r *Customers) ListIDs(ctx context.Context) ([]id.ObjectID, error) {
	if err := contextErr(ctx); err != nil {
		return nil, err
	}
	return r.store.ids(), nil
}

func (r *Customers) Get(_ context.Context, objectID id.ObjectID) (any, error) {
	return r.store.get(objectID)
}

func (r *Customers) Tests() []registry.Test {
	return []registry.Test{
		registry.Batch("no_duplicate_emails", r.duplicateEmails),
	}
}

// duplicateEmails fails every customer whose email, compared
// case-insensitively, is shared with another customer.
func (r *Customers) duplicateEmails(ctx context.Context) (registry.BatchOutcome, error) {
	if err := contextErr(ctx); err != nil {
		return registry.BatchOutcome{}, err
	}
	byEmail := make(map[string][]id.ObjectID)
	for _, c := range r.store.all() {
		email := strings.ToLower(strings.TrimSpace(c.Email))
		byEmail[email] = append(byEmail[email], c.ID)
	}
	var failing []id.ObjectID
	for _, ids := range byEmail {
		if len(ids) > 1 {
			failing = append(failing, ids...)
		}
	}
	sort.Slice(failing, func(i, j int) bool { return failing[i] < failing[j] })
	return registry.BatchOutcome{Failing: failing, Message: DuplicateEmailMessage}, nil
}
