// Package server holds the HTTP middlewares that put a router in front of an
// application: request logging, the documentation route, and request
// decoration with errors rendered as JSON responses.
package server

import (
	"net/http"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Middlewares is an ordered stack of middlewares.
type Middlewares []Middleware

// Chain returns a Middlewares type from a slice of middleware handlers.
func Chain(middlewares ...Middleware) Middlewares {
	return Middlewares(middlewares)
}

// Handler builds and returns a handler from the chain of middlewares, with h
// as the final handler. The first middleware sees the request first.
func (mws Middlewares) Handler(h http.Handler) http.Handler {
	return chain(mws, h)
}

// HandlerFunc is like Handler for a handler function.
func (mws Middlewares) HandlerFunc(h http.HandlerFunc) http.Handler {
	return chain(mws, h)
}

// chain builds a handler composed of an inline middleware stack and endpoint
// handler in the order they are passed.
func chain(middlewares []Middleware, endpoint http.Handler) http.Handler {
	// Return ahead of time if there aren't any middlewares for the chain
	if len(middlewares) == 0 {
		return endpoint
	}

	// Wrap the end handler with the middleware chain
	h := middlewares[len(middlewares)-1](endpoint)
	for i := len(middlewares) - 2; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}
