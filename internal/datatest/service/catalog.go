package service

import (
	"context"

	"datatests/internal/datatest/models"
	"datatests/internal/datatest/registry"
	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
)

// SyncCatalog upserts a descriptor for every registered test. Running it
// repeatedly never duplicates descriptors or changes their ids.
func (s *Service) SyncCatalog(ctx context.Context) ([]*models.TestMethod, error) {
	return s.upsertAll(ctx, s.catalog.Discover())
}

// SyncType upserts the descriptors of one registered type.
func (s *Service) SyncType(ctx context.Context, typeName id.TypeName) ([]*models.TestMethod, error) {
	if _, ok := s.catalog.Model(typeName); !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "domain type %s is not registered", typeName)
	}
	return s.upsertAll(ctx, s.catalog.DiscoverType(typeName))
}

// ListMethods returns every persisted descriptor.
func (s *Service) ListMethods(ctx context.Context) ([]*models.TestMethod, error) {
	methods, err := s.methods.List(ctx)
	if err != nil {
		return nil, storeError(err, "test methods")
	}
	return methods, nil
}

func (s *Service) upsertAll(ctx context.Context, descs []registry.Descriptor) ([]*models.TestMethod, error) {
	out := make([]*models.TestMethod, 0, len(descs))
	for _, d := range descs {
		m, err := models.NewTestMethod(id.NewTestMethodID(), d.TypeName, d.MethodName, d.Title, d.Kind)
		if err != nil {
			return nil, err
		}
		stored, err := s.methods.Upsert(ctx, m)
		if err != nil {
			return nil, storeError(err, "test method")
		}
		out = append(out, stored)
	}
	if len(out) > 0 {
		s.logger.DebugContext(ctx, "test methods synced", "count", len(out))
	}
	return out, nil
}
