package sampledomain

import "datatests/internal/datatest/registry"

// Demo returns the sample models seeded with a mix of passing and failing
// objects.
func Demo() []registry.Model {
	return []registry.Model{
		NewInvoices(
			Invoice{ID: "inv-1", Total: 10},
			Invoice{ID: "inv-2", Total: -5},
			Invoice{ID: "inv-3", Total: 0},
		),
		NewCustomers(
			Customer{ID: "cus-a", Email: "x@example.com"},
			Customer{ID: "cus-b", Email: "X@example.com"},
			Customer{ID: "cus-c", Email: "y@example.com"},
		),
	}
}
