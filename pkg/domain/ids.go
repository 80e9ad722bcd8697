// Package domain holds the typed identifiers shared across datatests packages.
package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "datatests/pkg/domain-errors"
)

// TestMethodID identifies one persisted test descriptor.
type TestMethodID uuid.UUID

// TestResultID identifies one persisted result row.
type TestResultID uuid.UUID

func (id TestMethodID) String() string { return uuid.UUID(id).String() }
func (id TestMethodID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id TestResultID) String() string { return uuid.UUID(id).String() }
func (id TestResultID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewTestMethodID returns a fresh random descriptor id.
func NewTestMethodID() TestMethodID { return TestMethodID(uuid.New()) }

// NewTestResultID returns a fresh random result id.
func NewTestResultID() TestResultID { return TestResultID(uuid.New()) }

// ParseTestMethodID parses a non-nil UUID.
func ParseTestMethodID(s string) (TestMethodID, error) {
	u, err := parseUUID(s, "test method id")
	return TestMethodID(u), err
}

// ParseTestResultID parses a non-nil UUID.
func ParseTestResultID(s string) (TestResultID, error) {
	u, err := parseUUID(s, "test result id")
	return TestResultID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if !utf8.ValidString(s) || strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be nil")
	}
	return u, nil
}

// TypeName is the registry identifier of a domain type, e.g. "billing.invoice".
type TypeName string

// ShortName is the segment after the last dot, the name operators usually type.
func (t TypeName) ShortName() string {
	s := string(t)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func (t TypeName) String() string { return string(t) }

// ObjectID identifies one live object within its domain type.
type ObjectID string

func (o ObjectID) String() string { return string(o) }

// ObjectRef is the polymorphic reference a result row holds: a domain type
// paired with the object's identifier inside that type.
type ObjectRef struct {
	Type TypeName
	ID   ObjectID
}
