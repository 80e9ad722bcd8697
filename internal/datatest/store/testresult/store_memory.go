package testresult

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
	"datatests/pkg/platform/sentinel"
)

type rowKey struct {
	methodID id.TestMethodID
	typeName id.TypeName
	objectID id.ObjectID
}

// InMemory is a mutex-guarded result store with the same uniqueness rules
// as the data_test_results table. Stale rows are excluded from the unique
// index the same way NULL object ids are in Postgres.
type InMemory struct {
	mu     sync.RWMutex
	rows   map[id.TestResultID]*models.TestResult
	unique map[rowKey]id.TestResultID
}

// NewInMemory constructs an empty result store.
func NewInMemory() *InMemory {
	return &InMemory{
		rows:   make(map[id.TestResultID]*models.TestResult),
		unique: make(map[rowKey]id.TestResultID),
	}
}

func keyOf(r *models.TestResult) (rowKey, bool) {
	if r.ObjectID == nil {
		return rowKey{}, false
	}
	return rowKey{r.TestMethodID, r.TypeName, *r.ObjectID}, true
}

// MarkOrphansStale clears the object id of every row of methodID whose
// object is not in live.
func (s *InMemory) MarkOrphansStale(_ context.Context, methodID id.TestMethodID, live []id.ObjectID, now time.Time) (int, error) {
	alive := make(map[id.ObjectID]struct{}, len(live))
	for _, oid := range live {
		alive[oid] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := 0
	for _, r := range s.rows {
		if r.TestMethodID != methodID || r.ObjectID == nil {
			continue
		}
		if _, ok := alive[*r.ObjectID]; ok {
			continue
		}
		s.markStaleLocked(r, now)
		marked++
	}
	return marked, nil
}

// MarkObjectStale clears the object id of every row pointing at ref.
func (s *InMemory) MarkObjectStale(_ context.Context, ref id.ObjectRef, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := 0
	for _, r := range s.rows {
		if r.ObjectID == nil || r.TypeName != ref.Type || *r.ObjectID != ref.ID {
			continue
		}
		s.markStaleLocked(r, now)
		marked++
	}
	return marked, nil
}

func (s *InMemory) markStaleLocked(r *models.TestResult, now time.Time) {
	if k, ok := keyOf(r); ok {
		delete(s.unique, k)
	}
	r.ObjectID = nil
	r.UpdatedAt = now
}

// DeleteStale removes every stale row of methodID.
func (s *InMemory) DeleteStale(_ context.Context, methodID id.TestMethodID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for rid, r := range s.rows {
		if r.TestMethodID == methodID && r.ObjectID == nil {
			delete(s.rows, rid)
			deleted++
		}
	}
	return deleted, nil
}

// ObjectIDs lists the live object ids that already have a row for methodID.
func (s *InMemory) ObjectIDs(_ context.Context, methodID id.TestMethodID) ([]id.ObjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []id.ObjectID
	for _, r := range s.rows {
		if r.TestMethodID == methodID && r.ObjectID != nil {
			out = append(out, *r.ObjectID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// InsertPending adds one pending row per object id. Ids that already have
// a row are skipped; the number of rows actually inserted is returned.
func (s *InMemory) InsertPending(_ context.Context, method *models.TestMethod, objectIDs []id.ObjectID, now time.Time) (int, error) {
	if method == nil {
		return 0, fmt.Errorf("test method is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted := 0
	for _, oid := range objectIDs {
		r := models.NewPendingResult(method, oid, now)
		k, _ := keyOf(r)
		if _, exists := s.unique[k]; exists {
			continue
		}
		s.rows[r.ID] = r
		s.unique[k] = r.ID
		inserted++
	}
	return inserted, nil
}

func (s *InMemory) ListByMethod(_ context.Context, methodID id.TestMethodID) ([]*models.TestResult, error) {
	return s.collect(func(r *models.TestResult) bool { return r.TestMethodID == methodID }), nil
}

func (s *InMemory) ListByObject(_ context.Context, ref id.ObjectRef) ([]*models.TestResult, error) {
	return s.collect(func(r *models.TestResult) bool {
		return r.ObjectID != nil && r.TypeName == ref.Type && *r.ObjectID == ref.ID
	}), nil
}

func (s *InMemory) FindByID(_ context.Context, resultID id.TestResultID) (*models.TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rows[resultID]
	if !ok {
		return nil, fmt.Errorf("test result %s: %w", resultID, sentinel.ErrNotFound)
	}
	return clone(r), nil
}

// SetOutcome overwrites passed and message of one row.
func (s *InMemory) SetOutcome(_ context.Context, resultID id.TestResultID, out models.Outcome, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[resultID]
	if !ok {
		return fmt.Errorf("test result %s: %w", resultID, sentinel.ErrNotFound)
	}
	r.Passed = out.Passed
	r.Message = models.TruncateMessage(out.Message)
	r.UpdatedAt = now
	return nil
}

// ApplyBatchOutcome fails the rows of failing with message and passes every
// other live row of methodID with an empty message.
func (s *InMemory) ApplyBatchOutcome(_ context.Context, methodID id.TestMethodID, failing []id.ObjectID, message string, now time.Time) error {
	failSet := make(map[id.ObjectID]struct{}, len(failing))
	for _, oid := range failing {
		failSet[oid] = struct{}{}
	}
	message = models.TruncateMessage(message)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.TestMethodID != methodID || r.ObjectID == nil {
			continue
		}
		if _, bad := failSet[*r.ObjectID]; bad {
			r.Passed, r.Message = false, message
		} else {
			r.Passed, r.Message = true, ""
		}
		r.UpdatedAt = now
	}
	return nil
}

// FailAll sets every row of methodID failing with message.
func (s *InMemory) FailAll(_ context.Context, methodID id.TestMethodID, message string, now time.Time) error {
	message = models.TruncateMessage(message)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.TestMethodID == methodID {
			r.Passed, r.Message, r.UpdatedAt = false, message, now
		}
	}
	return nil
}

// Counts aggregates the live rows of methodID.
func (s *InMemory) Counts(_ context.Context, methodID id.TestMethodID) (models.ResultCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c models.ResultCounts
	for _, r := range s.rows {
		if r.TestMethodID != methodID || r.ObjectID == nil {
			continue
		}
		switch {
		case r.Passed:
			c.Passed++
		case r.XFail:
			c.Failed++
			c.FailedXFail++
		default:
			c.Failed++
		}
	}
	return c, nil
}

// Annotate updates the human-maintained xfail flag and justification.
func (s *InMemory) Annotate(_ context.Context, resultID id.TestResultID, xfail bool, justification string, now time.Time) (*models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[resultID]
	if !ok {
		return nil, fmt.Errorf("test result %s: %w", resultID, sentinel.ErrNotFound)
	}
	r.XFail = xfail
	r.Justification = models.TruncateJustification(justification)
	r.UpdatedAt = now
	return clone(r), nil
}

// List returns one page of rows matching filter plus the total match count.
func (s *InMemory) List(_ context.Context, filter models.ResultFilter) ([]*models.TestResult, int, error) {
	filter.Normalize()
	matched := s.collect(func(r *models.TestResult) bool {
		if filter.Passed != nil && r.Passed != *filter.Passed {
			return false
		}
		if filter.XFail != nil && r.XFail != *filter.XFail {
			return false
		}
		if filter.TestMethodID != nil && r.TestMethodID != *filter.TestMethodID {
			return false
		}
		if filter.TypeName != nil && r.TypeName != *filter.TypeName {
			return false
		}
		return true
	})
	total := len(matched)
	if filter.Offset >= total {
		return []*models.TestResult{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (s *InMemory) collect(keep func(*models.TestResult) bool) []*models.TestResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TestResult, 0)
	for _, r := range s.rows {
		if keep(r) {
			out = append(out, clone(r))
		}
	}
	sortResults(out)
	return out
}

// sortResults matches the Postgres ORDER BY: type, object id (stale last),
// creation time, id.
func sortResults(rs []*models.TestResult) {
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.TypeName != b.TypeName {
			return a.TypeName < b.TypeName
		}
		if (a.ObjectID == nil) != (b.ObjectID == nil) {
			return b.ObjectID == nil
		}
		if a.ObjectID != nil && *a.ObjectID != *b.ObjectID {
			return *a.ObjectID < *b.ObjectID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

func clone(r *models.TestResult) *models.TestResult {
	c := *r
	if r.ObjectID != nil {
		oid := *r.ObjectID
		c.ObjectID = &oid
	}
	return &c
}
