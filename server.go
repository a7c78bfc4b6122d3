package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yougroupteam/swagger-router/config"
	"github.com/yougroupteam/swagger-router/router"
	"github.com/yougroupteam/swagger-router/server"
	"github.com/yougroupteam/swagger-router/spec"
)

// RouterServer is the application behind the router: it answers every routed
// request with the routing information the router attached to it.
type RouterServer struct {
	logger logrus.FieldLogger
}

// HandleRequest writes the request's decoration as JSON.
func (s *RouterServer) HandleRequest(w http.ResponseWriter, r *http.Request) {
	swagger, ok := router.FromRequest(r)
	if !ok {
		s.logger.Errorf("Request %v %v reached the server undecorated", r.Method, r.URL.Path)
		server.WriteResponse(w, r, s.logger, http.StatusInternalServerError, nil)
		return
	}

	server.WriteResponse(w, r, s.logger, http.StatusOK, swagger)
}

// newHandler loads the configured document and puts the middlewares in front
// of a RouterServer.
func newHandler(cfg *config.Config, logger *logrus.Logger) (http.Handler, error) {
	doc, data, err := loadDocument(cfg, logger)
	if err != nil {
		return nil, err
	}

	rt, err := router.New(doc, router.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	// The documentation route serves the document as written, with its
	// references intact.
	docs, err := spec.DecodeRaw(data)
	if err != nil {
		return nil, err
	}

	routerServer := &RouterServer{logger: logger}
	return server.Chain(
		server.Logging(logger),
		server.Docs(cfg.DocsPath, docs, logger),
		server.Router(rt, logger),
	).HandlerFunc(routerServer.HandleRequest), nil
}
