package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yougroupteam/swagger-router/router"
	"github.com/yougroupteam/swagger-router/routererr"
)

// RequestIDHeader carries the id the Logging middleware gives every request.
const RequestIDHeader = "X-Request-Id"

// ErrorResponse is the body written for a request that couldn't be routed.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails describes why a request couldn't be routed.
type ErrorDetails struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Router decorates every request with its swagger routing information before
// passing it on. Requests that can't be routed are answered with an error
// response instead: 404 when no path matches, 405 when the method doesn't,
// 400 when a parameter value is malformed, and 500 for a defect in the
// document.
func Router(rt *router.Router, logger logrus.FieldLogger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decorated, err := rt.Decorate(r)
			if err != nil {
				writeError(w, r, logger, err)
				return
			}
			next.ServeHTTP(w, decorated)
		})
	}
}

// Docs answers GET requests for path with the swagger document itself. doc is
// written as JSON; it's either a *spec.Document or the document as decoded by
// spec.DecodeRaw, which keeps references as written. Other requests are
// passed on.
func Docs(path string, doc interface{}, logger logrus.FieldLogger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if path == "" || r.Method != http.MethodGet || r.URL.Path != path {
				next.ServeHTTP(w, r)
				return
			}

			logger.Debugf("swagger-router: documentation route")
			WriteResponse(w, r, logger, http.StatusOK, doc)
		})
	}
}

// Logging gives every request an id and logs it once it's been answered.
func Logging(logger logrus.FieldLogger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     recorder.status,
				"elapsed":    time.Since(start),
			}).Info("Request")
		})
	}
}

//
// Private types
//

// statusRecorder remembers the status written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

//
// Private functions
//

func writeError(w http.ResponseWriter, r *http.Request, logger logrus.FieldLogger, err error) {
	status, errorType := errorStatus(err)

	var routeErr *routererr.RouteError
	if errors.As(err, &routeErr) && len(routeErr.Allowed) > 0 {
		w.Header().Set("Allow", strings.Join(routeErr.Allowed, ", "))
	}

	switch {
	case routererr.IsConfigError(err):
		logger.Errorf("Swagger document can't serve request: %v", err)
	case status == http.StatusInternalServerError:
		logger.Errorf("Couldn't route request: %v", err)
	default:
		logger.Debugf("Couldn't route request: %v", err)
	}

	WriteResponse(w, r, logger, status, &ErrorResponse{Error: ErrorDetails{
		Type:    errorType,
		Message: err.Error(),
	}})
}

func errorStatus(err error) (int, string) {
	if !routererr.IsClientError(err) {
		return http.StatusInternalServerError, "api_error"
	}

	switch {
	case errors.Is(err, routererr.ErrRouteNotFound):
		return http.StatusNotFound, "route_not_found"
	case errors.Is(err, routererr.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	}
	return http.StatusBadRequest, "invalid_request_error"
}
