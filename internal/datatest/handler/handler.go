package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"datatests/internal/datatest/models"
	"datatests/internal/datatest/service"
	id "datatests/pkg/domain"
	dErrors "datatests/pkg/domain-errors"
	"datatests/pkg/platform/httputil"
	"datatests/pkg/requestcontext"
)

// Service is the subset of the data-test service the admin API drives.
type Service interface {
	ListResults(ctx context.Context, filter models.ResultFilter) (*models.ResultPage, error)
	GetResult(ctx context.Context, resultID id.TestResultID) (*models.TestResult, error)
	Annotate(ctx context.Context, resultID id.TestResultID, xfail bool, justification string) (*models.TestResult, error)
	ListMethods(ctx context.Context) ([]*models.TestMethod, error)
	RunByID(ctx context.Context, methodID id.TestMethodID) (*models.RunSummary, error)
	ResultsForObject(ctx context.Context, ref id.ObjectRef) ([]*models.TestResult, error)
	RerunForObject(ctx context.Context, ref id.ObjectRef) ([]*models.TestResult, error)
	ObjectDeleted(ctx context.Context, ref id.ObjectRef) (int, error)
}

// Handler serves the data-test admin API.
type Handler struct {
	svc       Service
	logger    *slog.Logger
	objectURL string
}

// New creates the admin handler. objectURLTemplate renders links to the
// tested objects' own pages; {type} and {id} are substituted.
func New(svc Service, logger *slog.Logger, objectURLTemplate string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger, objectURL: objectURLTemplate}
}

// Register mounts the routes. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin/datatests", func(r chi.Router) {
		r.Get("/results", h.handleListResults)
		r.Get("/results/{id}", h.handleGetResult)
		r.Patch("/results/{id}", h.handleAnnotate)
		r.Get("/methods", h.handleListMethods)
		r.Post("/methods/{id}/run", h.handleRunMethod)
		r.Get("/objects/{type}/{id}/results", h.handleObjectResults)
		r.Post("/objects/{type}/{id}/saved", h.handleObjectSaved)
		r.Delete("/objects/{type}/{id}", h.handleObjectDeleted)
	})
}

func (h *Handler) handleListResults(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := h.svc.ListResults(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "list results", err)
		return
	}
	resp := ResultPageResponse{Total: page.Total, Limit: page.Limit, Offset: page.Offset}
	resp.Results = h.toResults(page.Results)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetResult(w http.ResponseWriter, r *http.Request) {
	resultID, err := id.ParseTestResultID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.svc.GetResult(r.Context(), resultID)
	if err != nil {
		h.fail(w, r, "get result", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.toResult(result))
}

// handleAnnotate edits xfail and justification. Omitted fields keep their
// current value.
func (h *Handler) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resultID, err := id.ParseTestResultID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[AnnotateRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	current, err := h.svc.GetResult(ctx, resultID)
	if err != nil {
		h.fail(w, r, "annotate result", err)
		return
	}
	xfail, justification := current.XFail, current.Justification
	if req.XFail != nil {
		xfail = *req.XFail
	}
	if req.Justification != nil {
		justification = strings.TrimSpace(*req.Justification)
	}
	updated, err := h.svc.Annotate(ctx, resultID, xfail, justification)
	if err != nil {
		h.fail(w, r, "annotate result", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.toResult(updated))
}

func (h *Handler) handleListMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.svc.ListMethods(r.Context())
	if err != nil {
		h.fail(w, r, "list methods", err)
		return
	}
	if methods == nil {
		methods = []*models.TestMethod{}
	}
	httputil.WriteJSON(w, http.StatusOK, MethodsResponse{Methods: methods})
}

func (h *Handler) handleRunMethod(w http.ResponseWriter, r *http.Request) {
	methodID, err := id.ParseTestMethodID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summary, err := h.svc.RunByID(r.Context(), methodID)
	if err != nil {
		h.fail(w, r, "run method", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// handleObjectResults lists an object's rows, creating pending rows for
// tests that have never covered it. ?failing=true keeps only failures.
func (h *Handler) handleObjectResults(w http.ResponseWriter, r *http.Request) {
	ref := objectRef(r)
	rows, err := h.svc.ResultsForObject(r.Context(), ref)
	if err != nil {
		h.fail(w, r, "object results", err)
		return
	}
	if failing, _ := strconv.ParseBool(r.URL.Query().Get("failing")); failing {
		kept := rows[:0]
		for _, row := range rows {
			if !row.Passed {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	httputil.WriteJSON(w, http.StatusOK, ObjectResultsResponse{Results: h.toResults(rows)})
}

// handleObjectSaved is the save hook: it reruns every test covering the
// object and reports the failures nobody marked as expected.
func (h *Handler) handleObjectSaved(w http.ResponseWriter, r *http.Request) {
	ref := objectRef(r)
	rows, err := h.svc.RerunForObject(r.Context(), ref)
	if err != nil {
		h.fail(w, r, "rerun object tests", err)
		return
	}
	resp := SavedResponse{
		Results:   h.toResults(rows),
		ObjectURL: h.objectLink(ref),
		Failures:  []FailureLink{},
	}
	for _, f := range service.FailureReport(rows) {
		resp.Failures = append(resp.Failures, FailureLink{
			ResultID:  f.ID.String(),
			ResultURL: resultLink(f.ID),
			Message:   f.Message,
		})
	}
	if len(resp.Failures) > 0 {
		resp.Warning = "Object saved successfully, the following tests are failing"
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleObjectDeleted(w http.ResponseWriter, r *http.Request) {
	marked, err := h.svc.ObjectDeleted(r.Context(), objectRef(r))
	if err != nil {
		h.fail(w, r, "object deleted", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeletedResponse{MarkedStale: marked})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	attrs := []any{"op", op, "request_id", requestcontext.RequestID(ctx), "error", err}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "admin request failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, "admin request rejected", attrs...)
	}
	httputil.WriteError(w, err)
}

func objectRef(r *http.Request) id.ObjectRef {
	return id.ObjectRef{
		Type: id.TypeName(chi.URLParam(r, "type")),
		ID:   id.ObjectID(chi.URLParam(r, "id")),
	}
}

func parseFilter(r *http.Request) (models.ResultFilter, error) {
	q := r.URL.Query()
	var f models.ResultFilter
	var err error
	if f.Passed, err = optionalBool(q.Get("passed"), "passed"); err != nil {
		return f, err
	}
	if f.XFail, err = optionalBool(q.Get("xfail"), "xfail"); err != nil {
		return f, err
	}
	if v := q.Get("method_id"); v != "" {
		methodID, err := id.ParseTestMethodID(v)
		if err != nil {
			return f, err
		}
		f.TestMethodID = &methodID
	}
	if v := strings.TrimSpace(q.Get("type")); v != "" {
		typeName := id.TypeName(v)
		f.TypeName = &typeName
	}
	if f.Limit, err = optionalInt(q.Get("limit"), "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = optionalInt(q.Get("offset"), "offset"); err != nil {
		return f, err
	}
	return f, nil
}

func optionalBool(v, name string) (*bool, error) {
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a boolean", name)
	}
	return &b, nil
}

func optionalInt(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a non-negative integer", name)
	}
	return n, nil
}
