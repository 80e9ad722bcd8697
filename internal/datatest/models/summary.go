package models

import (
	"time"

	id "datatests/pkg/domain"
)

// ResultCounts aggregates one descriptor's rows.
type ResultCounts struct {
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	FailedXFail int `json:"failed_xfail"`
}

// Total is passed + failed.
func (c ResultCounts) Total() int {
	return c.Passed + c.Failed
}

// RunSummary is what one RunTestMethod pass reports.
type RunSummary struct {
	RunID        string          `json:"run_id"`
	TestMethodID id.TestMethodID `json:"test_method_id"`
	TypeName     id.TypeName     `json:"type_name"`
	MethodName   string          `json:"method_name"`
	Kind         Kind            `json:"kind"`
	Purged       int             `json:"purged"`
	Inserted     int             `json:"inserted"`
	Counts       ResultCounts    `json:"counts"`
	// BatchError is set when a batch descriptor was marked failing wholesale.
	BatchError string        `json:"batch_error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}
