package param

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/yougroupteam/swagger-router/pattern"
	"github.com/yougroupteam/swagger-router/routererr"
	"github.com/yougroupteam/swagger-router/spec"
)

func newRequest(t *testing.T, r *http.Request) *Request {
	req, err := NewRequest(r)
	assert.NoError(t, err)
	return req
}

func TestLocate_Query(t *testing.T) {
	req := newRequest(t, httptest.NewRequest(http.MethodGet, "/?some_variable=value", nil))

	val, err := Locate(req, &spec.Parameter{Name: "some_variable", In: spec.ParameterQuery, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "value", val)

	val, err = Locate(req, &spec.Parameter{Name: "other_variable", In: spec.ParameterQuery}, nil)
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestLocate_QueryArray(t *testing.T) {
	req := newRequest(t, httptest.NewRequest(http.MethodGet,
		"/?ids=1234,5678&tags=a%7Cb&status=open&status=closed&flag", nil))

	val, err := Locate(req, &spec.Parameter{Name: "ids", In: spec.ParameterQuery, Type: spec.TypeArray}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"1234", "5678"}, val)

	val, err = Locate(req, &spec.Parameter{
		Name: "tags", In: spec.ParameterQuery, Type: spec.TypeArray, CollectionFormat: spec.CollectionPipes,
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, val)

	multi := &spec.Parameter{
		Name: "status", In: spec.ParameterQuery, Type: spec.TypeArray, CollectionFormat: spec.CollectionMulti,
	}
	val, err = Locate(req, multi, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"open", "closed"}, val)

	multi.Name = "missing"
	val, err = Locate(req, multi, nil)
	assert.NoError(t, err)
	assert.Nil(t, val)

	// A key without a value is present and empty
	val, err = Locate(req, &spec.Parameter{Name: "flag", In: spec.ParameterQuery, Type: spec.TypeBoolean}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestLocate_MalformedQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.URL.RawQuery = "a=%"
	req := newRequest(t, r)

	_, err := Locate(req, &spec.Parameter{Name: "a", In: spec.ParameterQuery, Type: spec.TypeString}, nil)
	assert.True(t, errors.Is(err, routererr.ErrBadRequestParameter))

	// Other locations don't depend on the query string
	val, err := Locate(req, &spec.Parameter{Name: "X-Missing", In: spec.ParameterHeader, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestLocate_Header(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Some-Header", "value")
	r.Header.Set("X-Ids", "1,2")
	r.Header.Add("X-Multi", "a,b")
	r.Header.Add("X-Multi", "c")
	r.Header["x-raw"] = []string{"raw"}
	req := newRequest(t, r)

	val, err := Locate(req, &spec.Parameter{Name: "some-header", In: spec.ParameterHeader, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "value", val)

	val, err = Locate(req, &spec.Parameter{Name: "Other-Header", In: spec.ParameterHeader, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Nil(t, val)

	val, err = Locate(req, &spec.Parameter{Name: "X-Ids", In: spec.ParameterHeader, Type: spec.TypeArray}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, val)

	// Several header lines are the array; they aren't exploded any further
	val, err = Locate(req, &spec.Parameter{Name: "X-Multi", In: spec.ParameterHeader, Type: spec.TypeArray}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a,b", "c"}, val)

	val, err = Locate(req, &spec.Parameter{Name: "X-Multi", In: spec.ParameterHeader, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "a,b", val)

	val, err = Locate(req, &spec.Parameter{Name: "X-RAW", In: spec.ParameterHeader, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "raw", val)
}

func TestLocate_Path(t *testing.T) {
	route := mustCompile(t, "/pets/{pet_id}/photos/{photo_id}")
	req := newRequest(t, httptest.NewRequest(http.MethodGet, "/pets/12/photos/34", nil))

	val, err := Locate(req, &spec.Parameter{Name: "pet_id", In: spec.ParameterPath, Type: spec.TypeInteger}, route)
	assert.NoError(t, err)
	assert.Equal(t, "12", val)

	val, err = Locate(req, &spec.Parameter{Name: "photo_id", In: spec.ParameterPath, Type: spec.TypeArray}, route)
	assert.NoError(t, err)
	assert.Equal(t, []string{"34"}, val)

	val, err = Locate(req, &spec.Parameter{Name: "owner_id", In: spec.ParameterPath, Type: spec.TypeString}, route)
	assert.NoError(t, err)
	assert.Nil(t, val)

	val, err = Locate(req, &spec.Parameter{Name: "pet_id", In: spec.ParameterPath, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestLocate_FormData(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/",
		bytes.NewBufferString("caption=hello+world&labels=a&labels=b"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	req := newRequest(t, r)

	val, err := Locate(req, &spec.Parameter{Name: "caption", In: spec.ParameterFormData, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", val)

	val, err = Locate(req, &spec.Parameter{
		Name: "labels", In: spec.ParameterFormData, Type: spec.TypeArray, CollectionFormat: spec.CollectionMulti,
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, val)

	// Form fields are not query parameters
	val, err = Locate(req, &spec.Parameter{Name: "caption", In: spec.ParameterQuery, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Nil(t, val)

	// The body is still there for whoever comes next
	body, err := io.ReadAll(r.Body)
	assert.NoError(t, err)
	assert.Equal(t, "caption=hello+world&labels=a&labels=b", string(body))
}

func TestLocate_MultipartFormData(t *testing.T) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	assert.NoError(t, w.WriteField("caption", "hello"))
	part, err := w.CreateFormFile("photo", "photo.png")
	assert.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b.Bytes()))
	r.Header.Set("Content-Type", w.FormDataContentType())
	req := newRequest(t, r)

	val, err := Locate(req, &spec.Parameter{Name: "caption", In: spec.ParameterFormData, Type: spec.TypeString}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "hello", val)

	val, err = Locate(req, &spec.Parameter{Name: "photo", In: spec.ParameterFormData, Type: spec.TypeFile}, nil)
	assert.NoError(t, err)
	file, ok := val.(*multipart.FileHeader)
	assert.True(t, ok)
	assert.Equal(t, "photo.png", file.Filename)

	val, err = Locate(req, &spec.Parameter{Name: "missing", In: spec.ParameterFormData, Type: spec.TypeFile}, nil)
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestLocate_MalformedMultipart(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("garbage"))
	r.Header.Set("Content-Type", "multipart/form-data")
	req := newRequest(t, r)

	_, err := Locate(req, &spec.Parameter{Name: "caption", In: spec.ParameterFormData, Type: spec.TypeString}, nil)
	assert.True(t, errors.Is(err, routererr.ErrBadRequestParameter))
}

func TestLocate_Body(t *testing.T) {
	param := &spec.Parameter{Name: "pet", In: spec.ParameterBody, Schema: &spec.Schema{Type: spec.TypeObject}}

	req := newRequest(t, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "Rex", "tags": ["a"]}`)))
	val, err := Locate(req, param, nil)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Rex", "tags": []interface{}{"a"}}, val)

	req = newRequest(t, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`just text`)))
	val, err = Locate(req, param, nil)
	assert.NoError(t, err)
	assert.Equal(t, "just text", val)

	req = newRequest(t, httptest.NewRequest(http.MethodPost, "/", nil))
	val, err = Locate(req, param, nil)
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestLocate_InvalidLocation(t *testing.T) {
	req := newRequest(t, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := Locate(req, &spec.Parameter{Name: "session", In: "cookie", Type: spec.TypeString}, nil)
	assert.True(t, errors.Is(err, routererr.ErrInvalidParameterLocation))
	assert.True(t, routererr.IsConfigError(err))

	var paramErr *routererr.ParameterError
	assert.True(t, errors.As(err, &paramErr))
	assert.Equal(t, "session", paramErr.Name)
	assert.Equal(t, "cookie", paramErr.In)
}

func mustCompile(t *testing.T, template string) *pattern.Pattern {
	p, err := pattern.Compile(template)
	assert.NoError(t, err)
	return p
}
