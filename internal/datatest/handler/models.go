package handler

import (
	"strings"
	"time"
	"unicode/utf8"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
)

// AnnotateRequest is the PATCH body for a result row.
type AnnotateRequest struct {
	XFail         *bool   `json:"xfail"`
	Justification *string `json:"justification"`
}

func (r *AnnotateRequest) Validate() error {
	if r.XFail == nil && r.Justification == nil {
		return dErrors.New(dErrors.CodeValidation, "xfail or justification is required")
	}
	if r.Justification != nil && utf8.RuneCountInString(*r.Justification) > models.MaxJustificationLength {
		return dErrors.Newf(dErrors.CodeValidation, "justification must be at most %d characters", models.MaxJustificationLength)
	}
	return nil
}

type ResultResponse struct {
	ID            string    `json:"id"`
	TestMethodID  string    `json:"test_method_id"`
	TypeName      string    `json:"type_name"`
	ObjectID      *string   `json:"object_id"`
	Passed        bool      `json:"passed"`
	XFail         bool      `json:"xfail"`
	Message       string    `json:"message"`
	Justification string    `json:"justification"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	URL           string    `json:"url"`
	ObjectURL     string    `json:"object_url,omitempty"`
}

type ResultPageResponse struct {
	Results []ResultResponse `json:"results"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type MethodsResponse struct {
	Methods []*models.TestMethod `json:"methods"`
}

type ObjectResultsResponse struct {
	Results []ResultResponse `json:"results"`
}

// FailureLink points at one failing row.
type FailureLink struct {
	ResultID  string `json:"result_id"`
	ResultURL string `json:"result_url"`
	Message   string `json:"message"`
}

// SavedResponse answers the save hook.
type SavedResponse struct {
	Warning   string           `json:"warning,omitempty"`
	ObjectURL string           `json:"object_url"`
	Failures  []FailureLink    `json:"failures"`
	Results   []ResultResponse `json:"results"`
}

type DeletedResponse struct {
	MarkedStale int `json:"marked_stale"`
}

func resultLink(resultID id.TestResultID) string {
	return "/admin/datatests/results/" + resultID.String()
}

func (h *Handler) objectLink(ref id.ObjectRef) string {
	if h.objectURL == "" {
		return ""
	}
	return strings.NewReplacer("{type}", ref.Type.String(), "{id}", ref.ID.String()).Replace(h.objectURL)
}

func (h *Handler) toResult(r *models.TestResult) ResultResponse {
	resp := ResultResponse{
		ID:            r.ID.String(),
		TestMethodID:  r.TestMethodID.String(),
		TypeName:      r.TypeName.String(),
		Passed:        r.Passed,
		XFail:         r.XFail,
		Message:       r.Message,
		Justification: r.Justification,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		URL:           resultLink(r.ID),
	}
	if ref, ok := r.Ref(); ok {
		oid := ref.ID.String()
		resp.ObjectID = &oid
		resp.ObjectURL = h.objectLink(ref)
	}
	return resp
}

func (h *Handler) toResults(rows []*models.TestResult) []ResultResponse {
	out := make([]ResultResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, h.toResult(r))
	}
	return out
}
