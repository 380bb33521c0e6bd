package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/screengod/pkg/buildinfo"
	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
	"github.com/matzehuels/screengod/pkg/expr"
	"github.com/matzehuels/screengod/pkg/observability"
	"github.com/matzehuels/screengod/pkg/pipeline"
)

// resolveRequest is the body of /v1/resolve and /v1/render.
type resolveRequest struct {
	Expr   string          `json:"expr"`
	Screen *composite.Rect `json:"screen,omitempty"`

	// Render only.
	Format   string  `json:"format,omitempty"`
	View     string  `json:"view,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

func (req resolveRequest) options() pipeline.Options {
	opts := pipeline.Options{Expr: req.Expr, View: req.View, Detailed: req.Detailed, Scale: req.Scale}
	if req.Screen != nil {
		opts.Screen = *req.Screen
	}
	if req.Format != "" {
		opts.Formats = []string{req.Format}
	}
	return opts
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	Offset    *int        `json:"offset,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Layout(r.Context(), req.options())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res.Placement)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}

	opts := req.options()
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), res.Placement, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[req.Format])
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (resolveRequest, bool) {
	var req resolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return req, false
	}
	return req, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	detail := errorDetail{
		Code:      errors.GetCode(err),
		Message:   errors.UserMessage(err),
		RequestID: middleware.GetReqID(r.Context()),
	}
	if detail.Code == "" {
		detail.Code = errors.ErrCodeInternal
	}
	var se *expr.SyntaxError
	if errors.As(err, &se) {
		detail.Offset = &se.Offset
		detail.Message = se.Message
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", detail.RequestID, "err", err)
		detail.Message = http.StatusText(status)
	}
	s.writeJSON(w, status, errorBody{Error: detail})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidExpression, errors.ErrCodeInvalidGeometry,
		errors.ErrCodeInvalidUnit, errors.ErrCodeUnitConflict, errors.ErrCodeTypeMismatch,
		errors.ErrCodeAttachedNodeImmutable, errors.ErrCodeNoContainer, errors.ErrCodeNotAMember,
		errors.ErrCodeCycle:
		return http.StatusBadRequest
	case errors.ErrCodeWindowNotFound, errors.ErrCodeWindowNotSet:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
