package param

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/yougroupteam/swagger-router/param/form"
	"github.com/yougroupteam/swagger-router/param/parser"
	"github.com/yougroupteam/swagger-router/pattern"
	"github.com/yougroupteam/swagger-router/routererr"
	"github.com/yougroupteam/swagger-router/spec"
)

//
// Public types
//

// Request is the view of an HTTP request that parameters are located in. The
// body is read once when the Request is built; the query string and form
// fields are parsed on first use.
//
// A Request belongs to a single request and is not safe for concurrent use.
type Request struct {
	Method string
	Path   string
	Header http.Header

	rawQuery    string
	contentType string
	body        []byte

	query       form.Values
	queryErr    error
	queryParsed bool

	form       form.Values
	files      map[string][]*multipart.FileHeader
	formErr    error
	formParsed bool
}

//
// Public functions
//

// NewRequest buffers the body of r and returns a Request for locating
// parameters. r.Body is replaced with a reader over the buffered bytes so that
// handlers further down the chain can still read it.
func NewRequest(r *http.Request) (*Request, error) {
	req := &Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		Header:   r.Header,
		rawQuery: r.URL.RawQuery,
	}

	if req.Header == nil {
		req.Header = http.Header{}
	}

	// Truncate content type parameters. For example, given:
	//
	//     application/json; charset=utf-8
	//
	// We want to chop off the `; charset=utf-8` at the end.
	req.contentType = strings.TrimSpace(strings.Split(req.Header.Get("Content-Type"), ";")[0])

	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading request body: %w", err)
		}
		req.body = body
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	return req, nil
}

// Body returns the buffered request body.
func (r *Request) Body() []byte {
	return r.body
}

// Query returns the parsed query string, in order.
func (r *Request) Query() (form.Values, error) {
	if !r.queryParsed {
		r.queryParsed = true
		r.query, r.queryErr = parser.ParseFormString(r.rawQuery)
		if r.queryErr != nil {
			r.queryErr = &routererr.ParameterError{
				Kind:    routererr.ErrBadRequestParameter,
				Message: "Malformed query string",
				Cause:   r.queryErr,
			}
		}
	}
	return r.query, r.queryErr
}

// Form returns the fields of a form-encoded or multipart body. Other bodies
// have no fields.
func (r *Request) Form() (form.Values, error) {
	r.parseForm()
	return r.form, r.formErr
}

// File returns the first file uploaded under key in a multipart body, or nil.
func (r *Request) File(key string) (*multipart.FileHeader, error) {
	r.parseForm()
	if r.formErr != nil {
		return nil, r.formErr
	}
	if files := r.files[key]; len(files) > 0 {
		return files[0], nil
	}
	return nil, nil
}

// Locate finds the raw value of a parameter in a request. It returns nil when
// the request doesn't carry the parameter.
//
// route is the compiled template the request path matched, used to extract
// path parameters. It may be nil, in which case no path parameter has a
// value.
func Locate(req *Request, param *spec.Parameter, route *pattern.Pattern) (interface{}, error) {
	switch param.In {
	case spec.ParameterQuery:
		values, err := req.Query()
		if err != nil {
			return nil, err
		}
		return fromValues(values, param), nil

	case spec.ParameterHeader:
		return fromHeader(req.Header, param), nil

	case spec.ParameterPath:
		if route == nil {
			return nil, nil
		}
		value, ok := route.Value(req.Path, param.Name)
		if !ok {
			return nil, nil
		}
		return explode(value, param), nil

	case spec.ParameterFormData:
		if param.Type == spec.TypeFile {
			file, err := req.File(param.Name)
			if err != nil || file == nil {
				return nil, err
			}
			return file, nil
		}

		values, err := req.Form()
		if err != nil {
			return nil, err
		}
		return fromValues(values, param), nil

	case spec.ParameterBody:
		return fromBody(req.body), nil
	}

	return nil, &routererr.ParameterError{
		Kind:    routererr.ErrInvalidParameterLocation,
		Name:    param.Name,
		In:      string(param.In),
		Message: fmt.Sprintf("%q is not a parameter location", param.In),
	}
}

//
// Private constants
//

// maxMemory is the maximum amount of memory allowed when ingesting a multipart
// form.
//
// Set to 1 MB.
const maxMemory = 1 * 1024 * 1024

// Media types of bodies that carry form fields.
const (
	multipartMediaType  = "multipart/form-data"
	urlencodedMediaType = "application/x-www-form-urlencoded"
)

//
// Private functions
//

func (r *Request) parseForm() {
	if r.formParsed {
		return
	}
	r.formParsed = true

	switch r.contentType {
	case urlencodedMediaType:
		values, err := parser.ParseFormString(string(r.body))
		if err != nil {
			r.formErr = &routererr.ParameterError{
				Kind:    routererr.ErrBadRequestParameter,
				Message: "Malformed form body",
				Cause:   err,
			}
			return
		}
		r.form = values

	case multipartMediaType:
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err == nil && params["boundary"] == "" {
			err = http.ErrMissingBoundary
		}
		if err != nil {
			r.formErr = &routererr.ParameterError{
				Kind:    routererr.ErrBadRequestParameter,
				Message: "Malformed multipart body",
				Cause:   err,
			}
			return
		}

		reader := multipart.NewReader(bytes.NewReader(r.body), params["boundary"])
		multipartForm, err := reader.ReadForm(maxMemory)
		if err != nil {
			r.formErr = &routererr.ParameterError{
				Kind:    routererr.ErrBadRequestParameter,
				Message: "Malformed multipart body",
				Cause:   err,
			}
			return
		}

		// Values within a key keep their order; keys are sorted so that the
		// result doesn't depend on map iteration.
		keys := make([]string, 0, len(multipartForm.Value))
		for key := range multipartForm.Value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, keyValue := range multipartForm.Value[key] {
				r.form = append(r.form, form.Pair{key, keyValue})
			}
		}
		r.files = multipartForm.File
	}
}

// fromValues reads a query or form parameter. multi arrays collect every
// occurrence of the key; anything else reads the first one.
func fromValues(values form.Values, param *spec.Parameter) interface{} {
	if param.IsArray() && param.CollectionFormat == spec.CollectionMulti {
		if all := values.GetAll(param.Name); all != nil {
			return all
		}
		return nil
	}

	value, ok := values.Get(param.Name)
	if !ok {
		return nil
	}
	return explode(value, param)
}

// fromHeader reads a header parameter. Header names are matched without
// regard to case.
func fromHeader(header http.Header, param *spec.Parameter) interface{} {
	values := header.Values(param.Name)
	if len(values) == 0 {
		// Headers set directly on the map skip canonicalization
		for key, keyValues := range header {
			if strings.EqualFold(key, param.Name) {
				values = keyValues
				break
			}
		}
	}

	switch {
	case len(values) == 0:
		return nil
	case len(values) == 1:
		return explode(values[0], param)
	case param.IsArray():
		return append([]string(nil), values...)
	}
	return values[0]
}

// fromBody returns nil for an empty body, the decoded value of a JSON body,
// or the body text.
func fromBody(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	if gjson.ValidBytes(body) {
		return gjson.ParseBytes(body).Value()
	}
	return string(body)
}

// explode splits a packed array value, and leaves the value of a scalar
// parameter alone.
func explode(value string, param *spec.Parameter) interface{} {
	if !param.IsArray() {
		return value
	}
	return param.CollectionFormat.Split(value)
}
