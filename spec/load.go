package spec

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/yougroupteam/swagger-router/util"
)

// definitionsPrefix is the only kind of JSON reference resolved at load time.
const definitionsPrefix = "#/definitions/"

// Load decodes a swagger document. JSON is a subset of YAML, so both formats
// go through the same decoder, which also lets us keep path templates in the
// order they appear in the document.
func Load(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "error decoding swagger document")
	}
	doc.normalize()
	return &doc, nil
}

// LoadFile reads and decodes a swagger document from disk, returning both the
// document and the raw bytes it was decoded from.
func LoadFile(path string) (*Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error reading swagger document %s", path)
	}
	doc, err := Load(data)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error loading %s", path)
	}
	return doc, data, nil
}

// UnmarshalYAML decodes the paths object while keeping its key order.
func (p *Paths) UnmarshalYAML(value *yaml.Node) error {
	if value.ShortTag() == "!!null" {
		*p = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: paths must be a mapping", value.Line)
	}

	paths := make(Paths, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if strings.HasPrefix(key, "x-") {
			continue
		}

		item := &PathItem{}
		if err := value.Content[i+1].Decode(item); err != nil {
			return errors.Wrapf(err, "path %s", key)
		}
		paths = append(paths, PathEntry{Path: Path(key), Item: item})
	}

	*p = paths
	return nil
}

// UnmarshalJSON decodes the paths object while keeping its key order.
func (p *Paths) UnmarshalJSON(data []byte) error {
	return yaml.Unmarshal(data, p)
}

// UnmarshalYAML splits a path item's keys into operations and shared
// parameters.
func (item *PathItem) UnmarshalYAML(value *yaml.Node) error {
	item.Operations = make(map[HTTPVerb]*Operation)
	if value.ShortTag() == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: path item must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		node := value.Content[i+1]

		switch {
		case key == "parameters":
			if err := node.Decode(&item.Parameters); err != nil {
				return errors.Wrap(err, "parameters")
			}

		case key == "$ref":
			util.Warningf("path item references are not supported, ignoring %s", node.Value)

		case strings.HasPrefix(key, "x-"):
			continue

		case isVerb(HTTPVerb(key)):
			operation := &Operation{}
			if err := node.Decode(operation); err != nil {
				return errors.Wrap(err, key)
			}
			item.Operations[HTTPVerb(key)] = operation

		default:
			util.Warningf("unknown path item field %s at line %d", key, value.Content[i].Line)
		}
	}

	return nil
}

// UnmarshalJSON decodes a path item.
func (item *PathItem) UnmarshalJSON(data []byte) error {
	return yaml.Unmarshal(data, item)
}

func isVerb(verb HTTPVerb) bool {
	for _, known := range Verbs {
		if verb == known {
			return true
		}
	}
	return false
}

// normalize makes default values JSON-shaped and resolves local schema
// references. It runs once, before the document is shared.
func (doc *Document) normalize() {
	seen := make(map[*Schema]bool)

	for name, definition := range doc.Definitions {
		doc.Definitions[name] = doc.resolveSchema(definition, seen)
	}

	for _, entry := range doc.Paths {
		if entry.Item == nil {
			continue
		}
		doc.normalizeParameters(entry.Item.Parameters, seen)
		for _, operation := range entry.Item.Operations {
			if operation != nil {
				doc.normalizeParameters(operation.Parameters, seen)
			}
		}
	}
}

func (doc *Document) normalizeParameters(params []*Parameter, seen map[*Schema]bool) {
	for _, param := range params {
		if param == nil {
			continue
		}
		param.Default = stringifyKeysMapValue(param.Default)
		param.Items = doc.resolveSchema(param.Items, seen)
		param.Schema = doc.resolveSchema(param.Schema, seen)
	}
}

// resolveSchema replaces local definition references with the definitions
// they point to and walks into items and properties. Definitions are shared
// pointers, so recursive schemas simply become cyclic graphs.
func (doc *Document) resolveSchema(schema *Schema, seen map[*Schema]bool) *Schema {
	for hops := 0; schema != nil && schema.Ref != ""; hops++ {
		target, ok := doc.lookupDefinition(schema.Ref)
		if !ok || hops > len(doc.Definitions) {
			util.Warningf("could not resolve schema reference %s", schema.Ref)
			break
		}
		schema = target
	}

	if schema == nil || seen[schema] {
		return schema
	}
	seen[schema] = true

	schema.Default = stringifyKeysMapValue(schema.Default)
	schema.Items = doc.resolveSchema(schema.Items, seen)
	for key, property := range schema.Properties {
		schema.Properties[key] = doc.resolveSchema(property, seen)
	}
	return schema
}

func (doc *Document) lookupDefinition(ref string) (*Schema, bool) {
	if !strings.HasPrefix(ref, definitionsPrefix) {
		return nil, false
	}
	definition, ok := doc.Definitions[strings.TrimPrefix(ref, definitionsPrefix)]
	return definition, ok && definition != nil
}
