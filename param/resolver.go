package param

import (
	"github.com/yougroupteam/swagger-router/param/coercer"
	"github.com/yougroupteam/swagger-router/pattern"
	"github.com/yougroupteam/swagger-router/routererr"
	"github.com/yougroupteam/swagger-router/spec"
)

// ResolvedParameter is a parameter definition together with the value it took
// in a request. It serializes as the definition with an extra `value` key.
type ResolvedParameter struct {
	spec.Parameter
	Value interface{} `json:"value"`
}

// Resolve locates a parameter in a request, falls back to its default when
// the request doesn't carry it, and casts the result to the declared type.
func Resolve(req *Request, param *spec.Parameter, route *pattern.Pattern) (*ResolvedParameter, error) {
	raw, err := Locate(req, param, route)
	if err != nil {
		return nil, routererr.WithParameter(err, param.Name, string(param.In))
	}

	if raw == nil {
		raw = param.Default
	}

	value, err := coercer.Cast(raw, param)
	if err != nil {
		return nil, err
	}

	return &ResolvedParameter{Parameter: *param, Value: value}, nil
}
