package router

import (
	"github.com/yougroupteam/swagger-router/param"
	"github.com/yougroupteam/swagger-router/spec"
)

// Swagger is the routing information attached to a decorated request.
type Swagger struct {
	// APIPath is the matched path template
	APIPath spec.Path `json:"apiPath"`

	// Path is the matched path item
	Path *spec.PathItem `json:"path"`

	// Operation is the operation for the request method
	Operation *spec.Operation `json:"operation"`

	// Params holds the operation's parameters with their values, keyed by
	// name. When two parameters share a name in different locations the one
	// merged last is kept.
	Params map[string]*param.ResolvedParameter `json:"params"`

	// Security holds the schemes of the effective security requirement,
	// keyed by scheme name. It's empty when the operation needs no security.
	Security map[string]*ResolvedSecurityScheme `json:"security"`
}

// ResolvedSecurityScheme is a security scheme definition plus the scopes the
// operation requires of it, if any were listed.
type ResolvedSecurityScheme struct {
	spec.SecurityScheme
	OperationScopes []string `json:"operationScopes,omitempty"`
}
