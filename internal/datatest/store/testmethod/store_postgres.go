package testmethod

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"datatests/internal/datatest/models"
	"datatests/internal/platform/database"
	id "datatests/pkg/domain"
	"datatests/pkg/platform/sentinel"
)

// PostgresStore persists descriptors in the data_test_methods table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed descriptor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `SELECT id, type_name, method_name, title, kind FROM data_test_methods`

// Upsert inserts or refreshes title and kind keyed by (type_name, method_name).
// RETURNING yields the surviving row so callers always see the original id.
func (s *PostgresStore) Upsert(ctx context.Context, m *models.TestMethod) (*models.TestMethod, error) {
	if m == nil {
		return nil, fmt.Errorf("test method is required")
	}
	query := `
		INSERT INTO data_test_methods (id, type_name, method_name, title, kind)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (type_name, method_name) DO UPDATE SET
			title = EXCLUDED.title,
			kind = EXCLUDED.kind
		RETURNING id, type_name, method_name, title, kind
	`
	stored, err := scanMethod(s.db.QueryRowContext(ctx, query,
		uuid.UUID(m.ID), string(m.TypeName), m.MethodName, m.Title, string(m.Kind)))
	if err != nil {
		// The id collided with a descriptor of another (type, method).
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("test method %s: %w", m.ID, sentinel.ErrConflict)
		}
		return nil, fmt.Errorf("upsert test method: %w", err)
	}
	return stored, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, methodID id.TestMethodID) (*models.TestMethod, error) {
	m, err := scanMethod(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, uuid.UUID(methodID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("test method %s: %w", methodID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find test method: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.TestMethod, error) {
	return s.query(ctx, selectColumns+` ORDER BY type_name, method_name`)
}

func (s *PostgresStore) ListByType(ctx context.Context, typeName id.TypeName) ([]*models.TestMethod, error) {
	return s.query(ctx, selectColumns+` WHERE type_name = $1 ORDER BY method_name`, string(typeName))
}

func (s *PostgresStore) ListByMethodName(ctx context.Context, methodName string) ([]*models.TestMethod, error) {
	return s.query(ctx, selectColumns+` WHERE method_name = $1 ORDER BY type_name`, methodName)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.TestMethod, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query test methods: %w", err)
	}
	defer rows.Close()

	var out []*models.TestMethod
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan test method: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test methods: %w", err)
	}
	return out, nil
}

type methodRow interface {
	Scan(dest ...any) error
}

func scanMethod(row methodRow) (*models.TestMethod, error) {
	var (
		m        models.TestMethod
		methodID uuid.UUID
		typeName string
		kind     string
	)
	if err := row.Scan(&methodID, &typeName, &m.MethodName, &m.Title, &kind); err != nil {
		return nil, err
	}
	m.ID = id.TestMethodID(methodID)
	m.TypeName = id.TypeName(typeName)
	m.Kind = models.Kind(kind)
	return &m, nil
}
