package models

import (
	"time"

	id "datatests/pkg/domain"
	"datatests/pkg/platform/strings"
)

const (
	// MaxMessageLength bounds TestResult.Message; longer messages are
	// truncated, never rejected.
	MaxMessageLength = 1024
	// MaxJustificationLength bounds TestResult.Justification.
	MaxJustificationLength = 500
)

// FailedToRunPrefix starts every diagnostic message written when a predicate
// or its surrounding reconciliation step errors.
const FailedToRunPrefix = "Test failed to run correctly! "

// TestResult is the outcome of one TestMethod against one object.
//
// Invariants:
//   - (TestMethodID, ObjectID, TypeName) is unique
//   - ObjectID == nil marks a stale row whose object was deleted
//   - Passed and Message are replaced wholesale by every evaluation
//   - XFail and Justification are only changed by Annotate
type TestResult struct {
	ID            id.TestResultID `json:"id"`
	TestMethodID  id.TestMethodID `json:"test_method_id"`
	TypeName      id.TypeName     `json:"type_name"`
	ObjectID      *id.ObjectID    `json:"object_id"`
	Passed        bool            `json:"passed"`
	XFail         bool            `json:"xfail"`
	Message       string          `json:"message"`
	Justification string          `json:"justification"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewPendingResult builds a not-yet-evaluated row for one object.
func NewPendingResult(method *TestMethod, objectID id.ObjectID, now time.Time) *TestResult {
	oid := objectID
	return &TestResult{
		ID:           id.NewTestResultID(),
		TestMethodID: method.ID,
		TypeName:     method.TypeName,
		ObjectID:     &oid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsStale reports whether the row's object has been deleted.
func (r *TestResult) IsStale() bool {
	return r.ObjectID == nil
}

// Ref returns the polymorphic object reference. ok is false for stale rows.
func (r *TestResult) Ref() (ref id.ObjectRef, ok bool) {
	if r.ObjectID == nil {
		return id.ObjectRef{}, false
	}
	return id.ObjectRef{Type: r.TypeName, ID: *r.ObjectID}, true
}

// IsUnexpectedFailure is a failure nobody has accepted with xfail.
func (r *TestResult) IsUnexpectedFailure() bool {
	return !r.Passed && !r.XFail
}

// TruncateMessage applies the persisted length bound.
func TruncateMessage(msg string) string {
	return strings.Truncate(msg, MaxMessageLength)
}

// TruncateJustification applies the persisted length bound.
func TruncateJustification(s string) string {
	return strings.Truncate(s, MaxJustificationLength)
}

// FailedToRun renders the diagnostic stored for an errored evaluation.
func FailedToRun(err error) string {
	return TruncateMessage(FailedToRunPrefix + err.Error())
}

// Outcome is the evaluated pass/fail state of one row.
type Outcome struct {
	Passed  bool
	Message string
}

// ResultFilter narrows ListResults. Nil pointers mean "any".
type ResultFilter struct {
	Passed       *bool
	XFail        *bool
	TestMethodID *id.TestMethodID
	TypeName     *id.TypeName
	Limit        int
	Offset       int
}

// DefaultPageSize matches the admin list page size.
const DefaultPageSize = 20

// Normalize applies paging defaults.
func (f *ResultFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > 500 {
		f.Limit = 500
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// ResultPage is one page of ListResults.
type ResultPage struct {
	Results []*TestResult `json:"results"`
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}
