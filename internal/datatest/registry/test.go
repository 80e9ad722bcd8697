package registry

import (
	"context"
	"fmt"
	"runtime/debug"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
)

// InstanceFunc evaluates one object. The object is whatever Model.Get
// returned for it.
type InstanceFunc func(ctx context.Context, obj any) (models.Outcome, error)

// BatchOutcome is the result of a batch predicate: the objects that fail and
// the message attached to each of them. Every other object passes.
type BatchOutcome struct {
	Failing []id.ObjectID
	Message string
}

// BatchFunc evaluates a whole domain type at once.
type BatchFunc func(ctx context.Context) (BatchOutcome, error)

// Test is one data test declared by a Model. Build it with Instance or
// Batch.
type Test struct {
	name     string
	title    string
	kind     models.Kind
	instance InstanceFunc
	batch    BatchFunc
}

// Option customizes a Test.
type Option func(*Test)

// WithTitle overrides the humanized method name shown to operators.
func WithTitle(title string) Option {
	return func(t *Test) {
		t.title = title
	}
}

// Instance declares a per-object test. fn receives the object already
// asserted to T; a type mismatch is reported as a predicate error.
func Instance[T any](name string, fn func(ctx context.Context, obj T) (bool, string, error), opts ...Option) Test {
	t := Test{name: name, kind: models.KindInstance}
	if fn != nil {
		t.instance = func(ctx context.Context, obj any) (models.Outcome, error) {
			typed, ok := obj.(T)
			if !ok {
				return models.Outcome{}, fmt.Errorf("test %s expects %T, got %T", name, *new(T), obj)
			}
			passed, msg, err := fn(ctx, typed)
			if err != nil {
				return models.Outcome{}, err
			}
			return models.Outcome{Passed: passed, Message: msg}, nil
		}
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Check adapts a plain boolean predicate for Instance.
func Check[T any](fn func(obj T) bool) func(context.Context, T) (bool, string, error) {
	return func(_ context.Context, obj T) (bool, string, error) {
		return fn(obj), "", nil
	}
}

// Batch declares a test evaluated once for the whole domain type.
func Batch(name string, fn BatchFunc, opts ...Option) Test {
	t := Test{name: name, kind: models.KindBatch, batch: fn}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func (t Test) Name() string      { return t.name }
func (t Test) Kind() models.Kind { return t.kind }

// Title is the explicit title or the humanized name.
func (t Test) Title() string {
	if t.title != "" {
		return t.title
	}
	return humanize(t.name)
}

// EvaluateObject runs an instance test against obj. Panics are recovered
// and returned as errors.
func (t Test) EvaluateObject(ctx context.Context, obj any) (out models.Outcome, err error) {
	if t.instance == nil {
		return models.Outcome{}, fmt.Errorf("test %s is not an instance test", t.name)
	}
	defer recoverInto(&err)
	return t.instance(ctx, obj)
}

// EvaluateBatch runs a batch test. Panics are recovered and returned as
// errors.
func (t Test) EvaluateBatch(ctx context.Context) (out BatchOutcome, err error) {
	if t.batch == nil {
		return BatchOutcome{}, fmt.Errorf("test %s is not a batch test", t.name)
	}
	defer recoverInto(&err)
	return t.batch(ctx)
}

// PanicError wraps a recovered predicate panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = &PanicError{Value: r, Stack: debug.Stack()}
	}
}

func (t Test) validate() error {
	if t.name == "" {
		return fmt.Errorf("test name is required")
	}
	switch t.kind {
	case models.KindInstance:
		if t.instance == nil {
			return fmt.Errorf("instance test %s has no predicate", t.name)
		}
	case models.KindBatch:
		if t.batch == nil {
			return fmt.Errorf("batch test %s has no predicate", t.name)
		}
	default:
		return fmt.Errorf("test %s has invalid kind %q", t.name, t.kind)
	}
	if len(t.Title()) > models.MaxTitleLength {
		return fmt.Errorf("test %s title exceeds %d characters", t.name, models.MaxTitleLength)
	}
	return nil
}
