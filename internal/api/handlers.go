package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"raceprep/internal/analysis"
	"raceprep/internal/service"
	"raceprep/internal/store"
)

// Handlers holds the HTTP handlers for the API
type Handlers struct {
	server    *Server
	formatter *Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(s *Server) *Handlers {
	return &Handlers{
		server:    s,
		formatter: NewFormatter(),
	}
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldsResponse is the stored form with its completeness summary
type FieldsResponse struct {
	Fields  map[string]string    `json:"fields"`
	Summary service.InputSummary `json:"summary"`
}

// SetFieldRequest updates one form field
type SetFieldRequest struct {
	Value string `json:"value"`
}

// CreateReportRequest generates a report. With no fields the stored form is used.
type CreateReportRequest struct {
	Fields map[string]string `json:"fields"`
}

// PostRaceRequest carries the actual finish time
type PostRaceRequest struct {
	ActualTime string `json:"actual_time"`
}

// GetFields returns the stored form and its summary
func (h *Handlers) GetFields(w http.ResponseWriter, req *http.Request) {
	fields, err := h.server.svc.StoredFields()
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, FieldsResponse{
		Fields:  fields,
		Summary: service.Summarize(fields),
	})
}

// SetField stores one form field. An empty value clears it.
func (h *Handlers) SetField(w http.ResponseWriter, req *http.Request) {
	var body SetFieldRequest
	if !h.decode(w, req, &body, false) {
		return
	}

	key := mux.Vars(req)["key"]
	if err := h.server.svc.SetField(key, body.Value); err != nil {
		h.writeError(w, req, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateReport generates and saves a report
func (h *Handlers) CreateReport(w http.ResponseWriter, req *http.Request) {
	var body CreateReportRequest
	if !h.decode(w, req, &body, true) {
		return
	}

	var (
		report *store.StoredReport
		err    error
	)
	if len(body.Fields) == 0 {
		report, err = h.server.svc.Generate()
	} else {
		report, err = h.server.svc.GenerateFromFields(body.Fields)
	}
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, http.StatusCreated, report)
}

// ListReports returns the recent report history
func (h *Handlers) ListReports(w http.ResponseWriter, req *http.Request) {
	summaries, err := h.server.svc.History()
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, summaries)
}

// GetLatestReport returns the most recent report
func (h *Handlers) GetLatestReport(w http.ResponseWriter, req *http.Request) {
	report, err := h.server.svc.LatestReport()
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, report)
}

// GetReport returns one report
func (h *Handlers) GetReport(w http.ResponseWriter, req *http.Request) {
	report, err := h.server.svc.Report(mux.Vars(req)["id"])
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, report)
}

// DeleteReport removes one report
func (h *Handlers) DeleteReport(w http.ResponseWriter, req *http.Request) {
	if err := h.server.svc.DeleteReport(mux.Vars(req)["id"]); err != nil {
		h.writeError(w, req, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreatePostRace compares an actual finish time with a report
func (h *Handlers) CreatePostRace(w http.ResponseWriter, req *http.Request) {
	var body PostRaceRequest
	if !h.decode(w, req, &body, false) {
		return
	}

	result, err := h.server.svc.PostRaceFor(mux.Vars(req)["id"], body.ActualTime)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, http.StatusCreated, result)
}

// GetPostRace returns the saved post-race comparison for a report
func (h *Handlers) GetPostRace(w http.ResponseWriter, req *http.Request) {
	result, err := h.server.svc.PostRaceResult(mux.Vars(req)["id"])
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, result)
}

// decode reads the request body into v. An empty body is accepted only when
// allowEmpty is set.
func (h *Handlers) decode(w http.ResponseWriter, req *http.Request, v any, allowEmpty bool) bool {
	err := h.formatter.ReadRequest(req, v)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	h.write(w, req, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	return false
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, status int, data any) {
	if err := h.formatter.WriteResponse(w, req, status, data); err != nil {
		h.server.logger.Errorw("error writing response", "path", req.URL.Path, "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.server.logger.Errorw("request failed", "path", req.URL.Path, "error", err)
		h.write(w, req, status, ErrorResponse{Error: "internal server error"})
		return
	}
	h.write(w, req, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput),
		errors.Is(err, analysis.ErrUnparsedClock),
		errors.Is(err, service.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrReportNotFound),
		errors.Is(err, store.ErrPostRaceNotFound),
		errors.Is(err, service.ErrNoReport):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
