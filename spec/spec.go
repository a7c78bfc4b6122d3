package spec

import (
	"encoding/json"
	"strings"
)

// Location is where a parameter's value is carried on the wire.
type Location string

// Parameter locations recognized by swagger 2.0.
const (
	ParameterQuery    Location = "query"
	ParameterHeader   Location = "header"
	ParameterPath     Location = "path"
	ParameterFormData Location = "formData"
	ParameterBody     Location = "body"
)

// Valid reports whether l is one of the five swagger parameter locations.
func (l Location) Valid() bool {
	switch l {
	case ParameterQuery, ParameterHeader, ParameterPath, ParameterFormData, ParameterBody:
		return true
	}
	return false
}

// Type is the declared type of a parameter or schema node.
type Type string

// Various identifiers for types in swagger and JSON schema.
const (
	TypeArray   Type = "array"
	TypeBoolean Type = "boolean"
	TypeFile    Type = "file"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeObject  Type = "object"
	TypeString  Type = "string"
)

// Valid reports whether t is one of the recognized coercion kinds.
func (t Type) Valid() bool {
	switch t {
	case TypeArray, TypeBoolean, TypeFile, TypeInteger, TypeNumber, TypeObject, TypeString:
		return true
	}
	return false
}

// CollectionFormat is the delimiter convention used to pack an array
// parameter into a single string.
type CollectionFormat string

// Collection formats recognized by swagger 2.0.
const (
	CollectionCSV   CollectionFormat = "csv"
	CollectionSSV   CollectionFormat = "ssv"
	CollectionTSV   CollectionFormat = "tsv"
	CollectionPipes CollectionFormat = "pipes"
	CollectionMulti CollectionFormat = "multi"
)

// String formats with dedicated parsing.
const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
)

// HTTPVerb is a lowercase HTTP method name as used for path item keys.
type HTTPVerb string

// HTTP verbs a path item may carry an operation for.
const (
	VerbGet     HTTPVerb = "get"
	VerbPut     HTTPVerb = "put"
	VerbPost    HTTPVerb = "post"
	VerbDelete  HTTPVerb = "delete"
	VerbOptions HTTPVerb = "options"
	VerbHead    HTTPVerb = "head"
	VerbPatch   HTTPVerb = "patch"
)

// Verbs lists every HTTPVerb in a stable order.
var Verbs = []HTTPVerb{VerbGet, VerbPut, VerbPost, VerbDelete, VerbOptions, VerbHead, VerbPatch}

// VerbFor maps a request method to the path item key it is looked up under.
func VerbFor(method string) HTTPVerb {
	return HTTPVerb(strings.ToLower(method))
}

// Path is a swagger path template such as "/pets/{pet_id}".
type Path string

// Document is a swagger 2.0 document. It is loaded once and must be treated as
// read-only afterwards: routers keep a pointer to it and share it between
// concurrent requests.
type Document struct {
	Swagger             string                     `json:"swagger" yaml:"swagger"`
	Info                *Info                      `json:"info,omitempty" yaml:"info"`
	Host                string                     `json:"host,omitempty" yaml:"host"`
	BasePath            string                     `json:"basePath,omitempty" yaml:"basePath"`
	Consumes            []string                   `json:"consumes,omitempty" yaml:"consumes"`
	Produces            []string                   `json:"produces,omitempty" yaml:"produces"`
	Paths               Paths                      `json:"paths" yaml:"paths"`
	Definitions         map[string]*Schema         `json:"definitions,omitempty" yaml:"definitions"`
	Security            SecurityRequirements       `json:"security,omitempty" yaml:"security"`
	SecurityDefinitions map[string]*SecurityScheme `json:"securityDefinitions,omitempty" yaml:"securityDefinitions"`
}

// Info is the document's metadata block.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
}

// PathEntry is a single template in the document's paths object.
type PathEntry struct {
	Path Path
	Item *PathItem
}

// Paths is the document's paths object. Unlike a Go map it keeps the order in
// which templates appear in the document, because routing is first match
// wins.
type Paths []PathEntry

// Get returns the path item for an exact template, or nil.
func (p Paths) Get(path Path) *PathItem {
	for _, entry := range p {
		if entry.Path == path {
			return entry.Item
		}
	}
	return nil
}

// PathItem holds the operations of one path template and the parameters
// shared by all of them.
type PathItem struct {
	Operations map[HTTPVerb]*Operation
	Parameters []*Parameter
}

// Operation describes one HTTP method on one path.
type Operation struct {
	OperationID string                `json:"operationId,omitempty" yaml:"operationId"`
	Summary     string                `json:"summary,omitempty" yaml:"summary"`
	Description string                `json:"description,omitempty" yaml:"description"`
	Tags        []string              `json:"tags,omitempty" yaml:"tags"`
	Consumes    []string              `json:"consumes,omitempty" yaml:"consumes"`
	Produces    []string              `json:"produces,omitempty" yaml:"produces"`
	Parameters  []*Parameter          `json:"parameters,omitempty" yaml:"parameters"`
	Deprecated  bool                  `json:"deprecated,omitempty" yaml:"deprecated"`

	// Security overrides the document's default requirement when non-nil.
	// An empty (but non-nil) list disables security for the operation.
	Security *SecurityRequirements `json:"security,omitempty" yaml:"security"`
}

// Parameter is a swagger parameter definition.
//
// Body parameters carry Schema; every other location carries the simple type
// fields (Type, Format, Items, CollectionFormat). Node returns whichever of
// the two drives coercion, so callers never need to look at In to find it.
type Parameter struct {
	Name        string      `json:"name" yaml:"name"`
	In          Location    `json:"in" yaml:"in"`
	Description string      `json:"description,omitempty" yaml:"description"`
	Required    bool        `json:"required,omitempty" yaml:"required"`
	Default     interface{} `json:"default,omitempty" yaml:"default"`

	// Simple (non-body) parameters
	Type             Type             `json:"type,omitempty" yaml:"type"`
	Format           string           `json:"format,omitempty" yaml:"format"`
	Items            *Schema          `json:"items,omitempty" yaml:"items"`
	CollectionFormat CollectionFormat `json:"collectionFormat,omitempty" yaml:"collectionFormat"`
	AllowEmptyValue  bool             `json:"allowEmptyValue,omitempty" yaml:"allowEmptyValue"`

	// Body parameters
	Schema *Schema `json:"schema,omitempty" yaml:"schema"`
}

// Key is the parameter's identity within an operation: its name and
// location. Two definitions with the same name but different locations are
// distinct parameters.
func (p *Parameter) Key() string {
	return p.Name + "-" + string(p.In)
}

// Node returns the schema node used to coerce the parameter's value: the body
// schema for body parameters, otherwise a node built from the simple type
// fields. It returns nil for a body parameter without a schema.
func (p *Parameter) Node() *Schema {
	if p.In == ParameterBody {
		return p.Schema
	}
	return &Schema{
		Type:             p.Type,
		Format:           p.Format,
		Items:            p.Items,
		CollectionFormat: p.CollectionFormat,
		Default:          p.Default,
	}
}

// IsArray reports whether the parameter's value is a collection.
func (p *Parameter) IsArray() bool {
	if node := p.Node(); node != nil {
		return node.Type == TypeArray
	}
	return false
}

// Schema is a schema node: a body schema, an array's items, or an object
// property.
type Schema struct {
	// Ref is populated if this schema is actually a JSON reference, and it
	// defines the location of the actual schema definition. Local
	// `#/definitions/...` references are resolved at load time.
	Ref string `json:"$ref,omitempty" yaml:"$ref"`

	Type             Type               `json:"type,omitempty" yaml:"type"`
	Format           string             `json:"format,omitempty" yaml:"format"`
	Description      string             `json:"description,omitempty" yaml:"description"`
	Items            *Schema            `json:"items,omitempty" yaml:"items"`
	Properties       map[string]*Schema `json:"properties,omitempty" yaml:"properties"`
	Required         []string           `json:"required,omitempty" yaml:"required"`
	CollectionFormat CollectionFormat   `json:"collectionFormat,omitempty" yaml:"collectionFormat"`
	Default          interface{}        `json:"default,omitempty" yaml:"default"`
}

// SecurityScheme is an entry of securityDefinitions.
type SecurityScheme struct {
	Type             string            `json:"type" yaml:"type"`
	Description      string            `json:"description,omitempty" yaml:"description"`
	Name             string            `json:"name,omitempty" yaml:"name"`
	In               string            `json:"in,omitempty" yaml:"in"`
	Flow             string            `json:"flow,omitempty" yaml:"flow"`
	AuthorizationURL string            `json:"authorizationUrl,omitempty" yaml:"authorizationUrl"`
	TokenURL         string            `json:"tokenUrl,omitempty" yaml:"tokenUrl"`
	Scopes           map[string]string `json:"scopes,omitempty" yaml:"scopes"`
}

// SecurityRequirement maps scheme names to the scopes an operation requires.
type SecurityRequirement map[string][]string

// SecurityRequirements is a list of alternative security requirements.
type SecurityRequirements []SecurityRequirement

// MarshalJSON writes the paths object with templates in document order.
func (p Paths) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, entry := range p {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(string(entry.Path))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Item)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	return append(buf, '}'), nil
}

// MarshalJSON flattens the operations back into verb keys next to the shared
// parameters, which is how a path item looks in a document.
func (item *PathItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(item.Operations)+1)
	for verb, operation := range item.Operations {
		out[string(verb)] = operation
	}
	if len(item.Parameters) > 0 {
		out["parameters"] = item.Parameters
	}
	return json.Marshal(out)
}
