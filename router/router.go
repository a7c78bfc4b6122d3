// Package router matches HTTP requests against a swagger document and resolves
// the matched operation's parameters and security requirements.
//
// A Router is built once per document with New and is safe for concurrent
// use. The decoration it produces for a request (a *Swagger) is attached to
// the request's context by Decorate and read back with FromRequest.
package router

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yougroupteam/swagger-router/param"
	"github.com/yougroupteam/swagger-router/pattern"
	"github.com/yougroupteam/swagger-router/routererr"
	"github.com/yougroupteam/swagger-router/spec"
)

// logPrefix starts every line the router logs.
const logPrefix = "swagger-router: "

// Router routes requests against a swagger document.
type Router struct {
	doc    *spec.Document
	routes []route
	logger logrus.FieldLogger
}

// route is a single path template in the routing table. Routes are kept in
// document order since the first matching template wins.
type route struct {
	template spec.Path
	pattern  *pattern.Pattern
	item     *spec.PathItem
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger debug information is written to. By default
// nothing is logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(rt *Router) {
		rt.logger = logger
	}
}

// New builds a Router for doc, compiling every path template up front. The
// document must not be modified afterwards.
func New(doc *spec.Document, opts ...Option) (*Router, error) {
	if doc == nil {
		return nil, errors.New("no swagger document")
	}

	rt := &Router{doc: doc, logger: discardLogger()}
	for _, opt := range opts {
		opt(rt)
	}

	for _, entry := range doc.Paths {
		compiled, err := pattern.Compile(string(entry.Path))
		if err != nil {
			return nil, errors.Wrapf(err, "error compiling route %s", entry.Path)
		}

		item := entry.Item
		if item == nil {
			item = &spec.PathItem{}
		}
		rt.routes = append(rt.routes, route{template: entry.Path, pattern: compiled, item: item})
		rt.logger.Debugf(logPrefix+"compiled route %s as %s with params %v",
			entry.Path, compiled, compiled.Names())
	}

	rt.logger.Debugf(logPrefix+"routing to %v path(s)", len(rt.routes))
	return rt, nil
}

// Document returns the document the router was built with.
func (rt *Router) Document() *spec.Document {
	return rt.doc
}

// Match is the result of routing a method and path.
type Match struct {
	Template  spec.Path
	Pattern   *pattern.Pattern
	Item      *spec.PathItem
	Verb      spec.HTTPVerb
	Operation *spec.Operation
}

// Match finds the operation for a method and path. Templates are tried in
// document order. It fails with a *routererr.RouteError when no template
// matches the path, or when the first template that does has no operation for
// the method.
func (rt *Router) Match(method, path string) (*Match, error) {
	for _, route := range rt.routes {
		if !route.pattern.Match(path) {
			continue
		}

		verb := spec.VerbFor(method)
		operation, ok := route.item.Operations[verb]
		if !ok || operation == nil {
			return nil, &routererr.RouteError{
				Kind:     routererr.ErrMethodNotAllowed,
				Method:   method,
				Path:     path,
				Template: string(route.template),
				Allowed:  allowedMethods(route.item),
			}
		}

		return &Match{
			Template:  route.template,
			Pattern:   route.pattern,
			Item:      route.item,
			Verb:      verb,
			Operation: operation,
		}, nil
	}

	return nil, &routererr.RouteError{
		Kind:   routererr.ErrRouteNotFound,
		Method: method,
		Path:   path,
	}
}

// Resolve routes r and resolves the matched operation's parameters and
// security requirements.
//
// The request body is buffered, and r.Body replaced with a reader over the
// buffered bytes so that it can be read again downstream.
func (rt *Router) Resolve(r *http.Request) (*Swagger, error) {
	match, err := rt.Match(r.Method, r.URL.Path)
	if err != nil {
		rt.logger.Debugf(logPrefix+"%v", err)
		return nil, err
	}

	logger := rt.logger.WithFields(logrus.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"apiPath": match.Template,
	})
	logger.Debugf(logPrefix + "matched route")

	req, err := param.NewRequest(r)
	if err != nil {
		return nil, err
	}

	params := make(map[string]*param.ResolvedParameter)
	for _, definition := range spec.MergeParameters(match.Item, match.Operation) {
		resolved, err := param.Resolve(req, definition, match.Pattern)
		if err != nil {
			logger.Debugf(logPrefix+"could not resolve parameter: %v", err)
			return nil, err
		}
		params[definition.Name] = resolved
	}

	security, err := rt.resolveSecurity(match.Operation)
	if err != nil {
		logger.Debugf(logPrefix+"could not resolve security: %v", err)
		return nil, err
	}

	return &Swagger{
		APIPath:   match.Template,
		Path:      match.Item,
		Operation: match.Operation,
		Params:    params,
		Security:  security,
	}, nil
}

// Decorate resolves r and returns a shallow copy of it carrying the result in
// its context. Reading the body for body and formData parameters replaces
// r.Body with a reader over the buffered bytes, so the original request's
// body stays readable but is no longer the reader it was created with.
func (rt *Router) Decorate(r *http.Request) (*http.Request, error) {
	swagger, err := rt.Resolve(r)
	if err != nil {
		return nil, err
	}
	return r.WithContext(NewContext(r.Context(), swagger)), nil
}

//
// Private functions
//

// resolveSecurity picks the effective security requirement, the operation's
// when it has one and the document's otherwise, and looks up every scheme it
// names.
func (rt *Router) resolveSecurity(operation *spec.Operation) (map[string]*ResolvedSecurityScheme, error) {
	requirements := rt.doc.Security
	if operation.Security != nil {
		requirements = *operation.Security
	}

	security := make(map[string]*ResolvedSecurityScheme)
	for _, requirement := range requirements {
		names := make([]string, 0, len(requirement))
		for name := range requirement {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			scheme, ok := rt.doc.SecurityDefinitions[name]
			if !ok || scheme == nil {
				return nil, &routererr.SecurityError{Scheme: name}
			}

			resolved := &ResolvedSecurityScheme{SecurityScheme: *scheme}
			if scopes := requirement[name]; len(scopes) > 0 {
				resolved.OperationScopes = append([]string(nil), scopes...)
			}
			security[name] = resolved
		}
	}
	return security, nil
}

func allowedMethods(item *spec.PathItem) []string {
	var allowed []string
	for _, verb := range spec.Verbs {
		if item.Operations[verb] != nil {
			allowed = append(allowed, strings.ToUpper(string(verb)))
		}
	}
	return allowed
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

//
// Context
//

type contextKey struct{}

// NewContext returns a copy of ctx carrying swagger.
func NewContext(ctx context.Context, swagger *Swagger) context.Context {
	return context.WithValue(ctx, contextKey{}, swagger)
}

// FromContext returns the decoration stored in ctx, if any.
func FromContext(ctx context.Context) (*Swagger, bool) {
	swagger, ok := ctx.Value(contextKey{}).(*Swagger)
	return swagger, ok && swagger != nil
}

// FromRequest returns the decoration of a request returned by Decorate.
func FromRequest(r *http.Request) (*Swagger, bool) {
	return FromContext(r.Context())
}
