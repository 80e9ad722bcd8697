package testresult

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
	"datatests/pkg/platform/sentinel"
	txcontext "datatests/pkg/platform/tx"
)

// PostgresStore persists results in the data_test_results table.
// Pure I/O: pass/fail decisions are made by the service.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed result store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const resultColumns = `id, test_method_id, type_name, object_id, passed, xfail, message, justification, created_at, updated_at`

const resultOrder = ` ORDER BY type_name, object_id NULLS LAST, created_at, id`

func (s *PostgresStore) MarkOrphansStale(ctx context.Context, methodID id.TestMethodID, live []id.ObjectID, now time.Time) (int, error) {
	query := `
		UPDATE data_test_results
		SET object_id = NULL, updated_at = $3
		WHERE test_method_id = $1
		  AND object_id IS NOT NULL
		  AND NOT (object_id = ANY($2))
	`
	return s.affected(ctx, "mark orphan results stale", query, uuid.UUID(methodID), objectIDArray(live), now)
}

func (s *PostgresStore) MarkObjectStale(ctx context.Context, ref id.ObjectRef, now time.Time) (int, error) {
	query := `
		UPDATE data_test_results
		SET object_id = NULL, updated_at = $3
		WHERE type_name = $1 AND object_id = $2
	`
	return s.affected(ctx, "mark object results stale", query, string(ref.Type), string(ref.ID), now)
}

func (s *PostgresStore) DeleteStale(ctx context.Context, methodID id.TestMethodID) (int, error) {
	query := `DELETE FROM data_test_results WHERE test_method_id = $1 AND object_id IS NULL`
	return s.affected(ctx, "delete stale results", query, uuid.UUID(methodID))
}

func (s *PostgresStore) ObjectIDs(ctx context.Context, methodID id.TestMethodID) ([]id.ObjectID, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT object_id FROM data_test_results
		WHERE test_method_id = $1 AND object_id IS NOT NULL
		ORDER BY object_id
	`, uuid.UUID(methodID))
	if err != nil {
		return nil, fmt.Errorf("list result object ids: %w", err)
	}
	defer rows.Close()

	var out []id.ObjectID
	for rows.Next() {
		var oid string
		if err := rows.Scan(&oid); err != nil {
			return nil, fmt.Errorf("scan result object id: %w", err)
		}
		out = append(out, id.ObjectID(oid))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result object ids: %w", err)
	}
	return out, nil
}

// InsertPending bulk-inserts pending rows in one statement. Rows that race
// with another writer hit the unique constraint and are skipped.
func (s *PostgresStore) InsertPending(ctx context.Context, method *models.TestMethod, objectIDs []id.ObjectID, now time.Time) (int, error) {
	if method == nil {
		return 0, fmt.Errorf("test method is required")
	}
	if len(objectIDs) == 0 {
		return 0, nil
	}
	ids := make([]string, len(objectIDs))
	for i := range objectIDs {
		ids[i] = id.NewTestResultID().String()
	}
	query := `
		INSERT INTO data_test_results (` + resultColumns + `)
		SELECT u.id, $1::uuid, $2::text, u.object_id, FALSE, FALSE, '', '', $5::timestamptz, $5::timestamptz
		FROM unnest($3::uuid[], $4::text[]) AS u(id, object_id)
		ON CONFLICT (test_method_id, object_id, type_name) DO NOTHING
	`
	return s.affected(ctx, "insert pending results", query,
		uuid.UUID(method.ID), string(method.TypeName), pq.Array(ids), objectIDArray(objectIDs), now)
}

func (s *PostgresStore) ListByMethod(ctx context.Context, methodID id.TestMethodID) ([]*models.TestResult, error) {
	return s.query(ctx, `SELECT `+resultColumns+` FROM data_test_results WHERE test_method_id = $1`+resultOrder,
		uuid.UUID(methodID))
}

func (s *PostgresStore) ListByObject(ctx context.Context, ref id.ObjectRef) ([]*models.TestResult, error) {
	return s.query(ctx, `SELECT `+resultColumns+` FROM data_test_results WHERE type_name = $1 AND object_id = $2`+resultOrder,
		string(ref.Type), string(ref.ID))
}

func (s *PostgresStore) FindByID(ctx context.Context, resultID id.TestResultID) (*models.TestResult, error) {
	r, err := scanResult(s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM data_test_results WHERE id = $1`, uuid.UUID(resultID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("test result %s: %w", resultID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find test result: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) SetOutcome(ctx context.Context, resultID id.TestResultID, out models.Outcome, now time.Time) error {
	n, err := s.affected(ctx, "set result outcome", `
		UPDATE data_test_results SET passed = $2, message = $3, updated_at = $4 WHERE id = $1
	`, uuid.UUID(resultID), out.Passed, models.TruncateMessage(out.Message), now)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("test result %s: %w", resultID, sentinel.ErrNotFound)
	}
	return nil
}

// ApplyBatchOutcome runs the failing and passing updates in one transaction
// so readers never observe a half-applied batch.
func (s *PostgresStore) ApplyBatchOutcome(ctx context.Context, methodID id.TestMethodID, failing []id.ObjectID, message string, now time.Time) error {
	failingIDs := objectIDArray(failing)
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.affected(ctx, "fail batch results", `
			UPDATE data_test_results SET passed = FALSE, message = $3, updated_at = $4
			WHERE test_method_id = $1 AND object_id = ANY($2)
		`, uuid.UUID(methodID), failingIDs, models.TruncateMessage(message), now); err != nil {
			return err
		}
		_, err := s.affected(ctx, "pass batch results", `
			UPDATE data_test_results SET passed = TRUE, message = '', updated_at = $3
			WHERE test_method_id = $1 AND object_id IS NOT NULL AND NOT (object_id = ANY($2))
		`, uuid.UUID(methodID), failingIDs, now)
		return err
	})
}

func (s *PostgresStore) FailAll(ctx context.Context, methodID id.TestMethodID, message string, now time.Time) error {
	_, err := s.affected(ctx, "fail all results", `
		UPDATE data_test_results SET passed = FALSE, message = $2, updated_at = $3 WHERE test_method_id = $1
	`, uuid.UUID(methodID), models.TruncateMessage(message), now)
	return err
}

func (s *PostgresStore) Counts(ctx context.Context, methodID id.TestMethodID) (models.ResultCounts, error) {
	var c models.ResultCounts
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE passed),
			COUNT(*) FILTER (WHERE NOT passed),
			COUNT(*) FILTER (WHERE NOT passed AND xfail)
		FROM data_test_results
		WHERE test_method_id = $1 AND object_id IS NOT NULL
	`, uuid.UUID(methodID)).Scan(&c.Passed, &c.Failed, &c.FailedXFail)
	if err != nil {
		return models.ResultCounts{}, fmt.Errorf("count results: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Annotate(ctx context.Context, resultID id.TestResultID, xfail bool, justification string, now time.Time) (*models.TestResult, error) {
	r, err := scanResult(s.execer(ctx).QueryRowContext(ctx, `
		UPDATE data_test_results SET xfail = $2, justification = $3, updated_at = $4
		WHERE id = $1
		RETURNING `+resultColumns,
		uuid.UUID(resultID), xfail, models.TruncateJustification(justification), now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("test result %s: %w", resultID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("annotate test result: %w", err)
	}
	return r, nil
}

// List returns one page of filtered rows and the total number of matches.
func (s *PostgresStore) List(ctx context.Context, filter models.ResultFilter) ([]*models.TestResult, int, error) {
	filter.Normalize()

	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.Passed != nil {
		add("passed = $%d", *filter.Passed)
	}
	if filter.XFail != nil {
		add("xfail = $%d", *filter.XFail)
	}
	if filter.TestMethodID != nil {
		add("test_method_id = $%d", uuid.UUID(*filter.TestMethodID))
	}
	if filter.TypeName != nil {
		add("type_name = $%d", string(*filter.TypeName))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM data_test_results`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count filtered results: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	page := fmt.Sprintf(`SELECT %s FROM data_test_results%s%s LIMIT $%d OFFSET $%d`,
		resultColumns, clause, resultOrder, len(args)-1, len(args))
	rows, err := s.query(ctx, page, args...)
	if err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []*models.TestResult{}
	}
	return rows, total, nil
}

func (s *PostgresStore) affected(ctx context.Context, op, query string, args ...any) (int, error) {
	res, err := s.execer(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return int(n), nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.TestResult, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query test results: %w", err)
	}
	defer rows.Close()

	var out []*models.TestResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan test result: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test results: %w", err)
	}
	return out, nil
}

func objectIDArray(ids []id.ObjectID) any {
	out := make([]string, len(ids))
	for i, oid := range ids {
		out[i] = string(oid)
	}
	return pq.Array(out)
}

type resultRow interface {
	Scan(dest ...any) error
}

func scanResult(row resultRow) (*models.TestResult, error) {
	var (
		r        models.TestResult
		resultID uuid.UUID
		methodID uuid.UUID
		typeName string
		objectID sql.NullString
	)
	if err := row.Scan(&resultID, &methodID, &typeName, &objectID, &r.Passed, &r.XFail,
		&r.Message, &r.Justification, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.ID = id.TestResultID(resultID)
	r.TestMethodID = id.TestMethodID(methodID)
	r.TypeName = id.TypeName(typeName)
	if objectID.Valid {
		oid := id.ObjectID(objectID.String)
		r.ObjectID = &oid
	}
	return &r, nil
}
