// Package routererr holds the error kinds raised while routing a request
// against a swagger document and resolving its parameters.
//
// Every kind has a sentinel for use with errors.Is and a typed error for use
// with errors.As. Kinds fall in two groups: client errors, caused by what the
// request carried, and configuration errors, caused by a defect in the
// document. IsClientError and IsConfigError tell them apart so that a boundary
// layer can pick a transport status without knowing every kind.
package routererr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrRouteNotFound indicates that no path template matched the request
	// path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMethodNotAllowed indicates that a path template matched but has no
	// operation for the request method.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrInvalidParameterLocation indicates a parameter whose `in` is not
	// one of query, header, path, formData or body.
	ErrInvalidParameterLocation = errors.New("invalid parameter location")

	// ErrMissingParameterType indicates a parameter (or schema node) with no
	// type to coerce its value to.
	ErrMissingParameterType = errors.New("missing parameter type")

	// ErrInvalidParameterType indicates a parameter (or schema node) whose
	// type is not a recognized swagger type.
	ErrInvalidParameterType = errors.New("invalid parameter type")

	// ErrBadRequestParameter indicates a request value that could not be
	// coerced to its declared type.
	ErrBadRequestParameter = errors.New("bad request parameter")

	// ErrUndefinedSecurityScheme indicates a security requirement naming a
	// scheme absent from securityDefinitions.
	ErrUndefinedSecurityScheme = errors.New("undefined security scheme")
)

// RouteError is returned when a request cannot be routed to an operation.
type RouteError struct {
	// Kind is ErrRouteNotFound or ErrMethodNotAllowed
	Kind error
	// Method is the request method
	Method string
	// Path is the request path
	Path string
	// Template is the matched path template (method not allowed only)
	Template string
	// Allowed lists the uppercase methods the matched template supports
	// (method not allowed only)
	Allowed []string
}

// Error returns a human-readable error message.
func (e *RouteError) Error() string {
	if e.Kind == ErrMethodNotAllowed {
		msg := fmt.Sprintf("no method %s found for route %s", e.Method, e.Template)
		if len(e.Allowed) > 0 {
			msg += " (allowed: " + strings.Join(e.Allowed, ", ") + ")"
		}
		return msg
	}
	return fmt.Sprintf("no match found in swagger docs for %s", e.Path)
}

// Is reports whether target matches this error's kind.
func (e *RouteError) Is(target error) bool {
	return target == e.Kind
}

// ParameterError is returned when a single parameter cannot be resolved.
type ParameterError struct {
	// Kind is one of the parameter sentinels
	Kind error
	// Name and In identify the parameter (may be empty for nested schema
	// nodes)
	Name string
	In   string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParameterError) Error() string {
	msg := e.Kind.Error()
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
		if e.In != "" {
			msg += " in " + e.In
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParameterError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's kind.
func (e *ParameterError) Is(target error) bool {
	return target == e.Kind
}

// SecurityError is returned when a security requirement references a scheme
// that the document does not define.
type SecurityError struct {
	// Scheme is the missing scheme name
	Scheme string
}

// Error returns a human-readable error message.
func (e *SecurityError) Error() string {
	return fmt.Sprintf("security scheme %q is not defined", e.Scheme)
}

// Is reports whether target matches ErrUndefinedSecurityScheme.
func (e *SecurityError) Is(target error) bool {
	return target == ErrUndefinedSecurityScheme
}

// BadRequest builds a client-side ParameterError with the given message.
func BadRequest(message string) *ParameterError {
	return &ParameterError{Kind: ErrBadRequestParameter, Message: message}
}

// WithParameter fills in the parameter identity on err when it is a
// ParameterError that doesn't carry one yet. Other errors are returned as-is.
func WithParameter(err error, name, in string) error {
	var paramErr *ParameterError
	if !errors.As(err, &paramErr) || paramErr.Name != "" {
		return err
	}
	paramErr.Name = name
	paramErr.In = in
	return err
}

// IsClientError reports whether err was caused by the request rather than by
// the document.
func IsClientError(err error) bool {
	return errors.Is(err, ErrRouteNotFound) ||
		errors.Is(err, ErrMethodNotAllowed) ||
		errors.Is(err, ErrBadRequestParameter)
}

// IsConfigError reports whether err was caused by a defect in the swagger
// document.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidParameterLocation) ||
		errors.Is(err, ErrMissingParameterType) ||
		errors.Is(err, ErrInvalidParameterType) ||
		errors.Is(err, ErrUndefinedSecurityScheme)
}
