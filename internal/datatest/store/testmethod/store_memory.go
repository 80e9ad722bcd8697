package testmethod

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
	"datatests/pkg/platform/sentinel"
)

type key struct {
	typeName   id.TypeName
	methodName string
}

// InMemory keeps descriptors in process memory. It backs the CLI when no
// database is configured and the service tests.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[id.TestMethodID]*models.TestMethod
	byName map[key]id.TestMethodID
}

// NewInMemory constructs an empty descriptor store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[id.TestMethodID]*models.TestMethod),
		byName: make(map[key]id.TestMethodID),
	}
}

// Upsert inserts m or refreshes the title and kind of the existing
// descriptor with the same (type, method name). The stored descriptor is
// returned; its ID is the original one on update.
func (s *InMemory) Upsert(_ context.Context, m *models.TestMethod) (*models.TestMethod, error) {
	if m == nil {
		return nil, fmt.Errorf("test method is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{m.TypeName, m.MethodName}
	if existingID, ok := s.byName[k]; ok {
		existing := s.byID[existingID]
		existing.Title = m.Title
		existing.Kind = m.Kind
		return clone(existing), nil
	}
	stored := clone(m)
	s.byID[stored.ID] = stored
	s.byName[k] = stored.ID
	return clone(stored), nil
}

func (s *InMemory) FindByID(_ context.Context, methodID id.TestMethodID) (*models.TestMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[methodID]
	if !ok {
		return nil, fmt.Errorf("test method %s: %w", methodID, sentinel.ErrNotFound)
	}
	return clone(m), nil
}

func (s *InMemory) List(_ context.Context) ([]*models.TestMethod, error) {
	return s.filter(func(*models.TestMethod) bool { return true }), nil
}

func (s *InMemory) ListByType(_ context.Context, typeName id.TypeName) ([]*models.TestMethod, error) {
	return s.filter(func(m *models.TestMethod) bool { return m.TypeName == typeName }), nil
}

func (s *InMemory) ListByMethodName(_ context.Context, methodName string) ([]*models.TestMethod, error) {
	return s.filter(func(m *models.TestMethod) bool { return m.MethodName == methodName }), nil
}

func (s *InMemory) filter(keep func(*models.TestMethod) bool) []*models.TestMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TestMethod, 0, len(s.byID))
	for _, m := range s.byID {
		if keep(m) {
			out = append(out, clone(m))
		}
	}
	sortMethods(out)
	return out
}

func sortMethods(ms []*models.TestMethod) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].TypeName != ms[j].TypeName {
			return ms[i].TypeName < ms[j].TypeName
		}
		return ms[i].MethodName < ms[j].MethodName
	})
}

func clone(m *models.TestMethod) *models.TestMethod {
	c := *m
	return &c
}
