package models

import (
	"strings"

	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
)

// Kind says how a test is evaluated.
type Kind string

const (
	// KindInstance tests are evaluated once per object.
	KindInstance Kind = "instance"
	// KindBatch tests are evaluated once per domain type and report the
	// failing subset.
	KindBatch Kind = "batch"
)

func (k Kind) IsValid() bool {
	return k == KindInstance || k == KindBatch
}

// MaxTitleLength bounds TestMethod.Title.
const MaxTitleLength = 256

// TestMethod is the persisted descriptor of one discoverable test for one
// domain type.
//
// Invariants:
//   - (TypeName, MethodName) is unique
//   - Kind is instance or batch
//   - only Title and Kind are refreshed by re-discovery
type TestMethod struct {
	ID         id.TestMethodID `json:"id"`
	TypeName   id.TypeName     `json:"type_name"`
	MethodName string          `json:"method_name"`
	Title      string          `json:"title"`
	Kind       Kind            `json:"kind"`
}

// NewTestMethod validates and builds a descriptor.
func NewTestMethod(methodID id.TestMethodID, typeName id.TypeName, methodName, title string, kind Kind) (*TestMethod, error) {
	methodName = strings.TrimSpace(methodName)
	switch {
	case methodID.IsNil():
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "test method id is required")
	case strings.TrimSpace(string(typeName)) == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "type name is required")
	case methodName == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "method name is required")
	case !kind.IsValid():
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "invalid test kind %q", kind)
	case len(title) > MaxTitleLength:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "title too long")
	}
	return &TestMethod{
		ID:         methodID,
		TypeName:   typeName,
		MethodName: methodName,
		Title:      title,
		Kind:       kind,
	}, nil
}

func (m *TestMethod) IsBatch() bool {
	return m.Kind == KindBatch
}

func (m *TestMethod) String() string {
	return m.Title
}
