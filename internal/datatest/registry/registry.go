// Package registry enumerates the data tests declared by registered domain
// types and freezes them into an immutable Catalog.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
	pstrings "datatests/pkg/platform/strings"
)

// Model is the capability a domain type exposes to be tested.
type Model interface {
	// TypeName is the unique registry identifier, e.g. "billing.invoice".
	TypeName() id.TypeName
	// ListIDs returns the identifiers of every live object.
	ListIDs(ctx context.Context) ([]id.ObjectID, error)
	// Get fetches one live object. A missing object returns an error
	// wrapping sentinel.ErrNotFound.
	Get(ctx context.Context, objectID id.ObjectID) (any, error)
	// Tests lists the data tests declared for this type.
	Tests() []Test
}

var (
	// ErrAmbiguousType is returned when a name matches several types.
	ErrAmbiguousType = errors.New("ambiguous domain type")
	// ErrUnknownType is returned when a name matches no type.
	ErrUnknownType = errors.New("unknown domain type")
)

// Descriptor is one discovered test ready to be persisted.
type Descriptor struct {
	TypeName   id.TypeName
	MethodName string
	Title      string
	Kind       models.Kind
}

// Catalog is a read-only snapshot of registered models and their tests.
type Catalog struct {
	types  []id.TypeName
	models map[id.TypeName]Model
	tests  map[id.TypeName]map[string]Test
}

// New validates and freezes the given models.
func New(ms ...Model) (*Catalog, error) {
	c := &Catalog{
		models: make(map[id.TypeName]Model, len(ms)),
		tests:  make(map[id.TypeName]map[string]Test, len(ms)),
	}
	for _, m := range ms {
		if m == nil {
			return nil, fmt.Errorf("nil model registered")
		}
		typeName := m.TypeName()
		if strings.TrimSpace(string(typeName)) == "" {
			return nil, fmt.Errorf("model %T has empty type name", m)
		}
		if _, dup := c.models[typeName]; dup {
			return nil, fmt.Errorf("type %s registered twice", typeName)
		}
		tests := make(map[string]Test)
		for _, t := range m.Tests() {
			if err := t.validate(); err != nil {
				return nil, fmt.Errorf("type %s: %w", typeName, err)
			}
			if _, dup := tests[t.Name()]; dup {
				return nil, fmt.Errorf("type %s declares test %s twice", typeName, t.Name())
			}
			tests[t.Name()] = t
		}
		c.models[typeName] = m
		c.tests[typeName] = tests
		c.types = append(c.types, typeName)
	}
	sort.Slice(c.types, func(i, j int) bool { return c.types[i] < c.types[j] })
	return c, nil
}

// Types lists registered type names in sorted order.
func (c *Catalog) Types() []id.TypeName {
	return append([]id.TypeName(nil), c.types...)
}

// Model returns the registered model for typeName.
func (c *Catalog) Model(typeName id.TypeName) (Model, bool) {
	m, ok := c.models[typeName]
	return m, ok
}

// Test returns one declared test.
func (c *Catalog) Test(typeName id.TypeName, methodName string) (Test, bool) {
	t, ok := c.tests[typeName][methodName]
	return t, ok
}

// Discover lists one descriptor per (type, test), sorted by type then name.
func (c *Catalog) Discover() []Descriptor {
	var out []Descriptor
	for _, typeName := range c.types {
		out = append(out, c.DiscoverType(typeName)...)
	}
	return out
}

// DiscoverType lists the descriptors of one type.
func (c *Catalog) DiscoverType(typeName id.TypeName) []Descriptor {
	tests := c.tests[typeName]
	names := make([]string, 0, len(tests))
	for name := range tests {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		t := tests[name]
		out = append(out, Descriptor{
			TypeName:   typeName,
			MethodName: name,
			Title:      t.Title(),
			Kind:       t.Kind(),
		})
	}
	return out
}

// ResolveType finds a type by its full name or its short name,
// case-insensitively.
func (c *Catalog) ResolveType(name string) (id.TypeName, error) {
	name = strings.TrimSpace(name)
	var matches []id.TypeName
	for _, typeName := range c.types {
		if strings.EqualFold(string(typeName), name) || strings.EqualFold(typeName.ShortName(), name) {
			matches = append(matches, typeName)
		}
	}
	switch len(matches) {
	case 0:
		return "", dErrors.Wrap(ErrUnknownType, dErrors.CodeNotFound, fmt.Sprintf("no domain type named %q", name))
	case 1:
		return matches[0], nil
	default:
		return "", dErrors.Wrap(ErrAmbiguousType, dErrors.CodeAmbiguous,
			fmt.Sprintf("more than one %s type exists: %v", name, matches))
	}
}

func humanize(name string) string {
	return pstrings.Humanize(name)
}
