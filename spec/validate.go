package spec

import (
	schema "github.com/lestrrat-go/jsschema"
	"github.com/lestrrat-go/jsval"
	"github.com/lestrrat-go/jsval/builder"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ValidateDocument checks the structure of a raw swagger document before it
// is served: every parameter needs a name and one of the known locations, and
// declared types and collection formats must be ones the router can handle.
//
// This catches at startup the configuration defects that would otherwise only
// surface when a request reaches the broken operation. It is not a complete
// swagger 2.0 validation.
func ValidateDocument(data []byte) error {
	raw, err := DecodeRaw(data)
	if err != nil {
		return err
	}

	validator, err := GetDocumentValidator()
	if err != nil {
		return err
	}

	if err := validator.Validate(raw); err != nil {
		return errors.Wrap(err, "invalid swagger document")
	}
	return nil
}

// DecodeRaw decodes a swagger document into plain maps and slices, the shape
// a JSON decoder would give it. References are left as written.
func DecodeRaw(data []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "error decoding swagger document")
	}
	return stringifyKeysMapValue(raw), nil
}

// GetDocumentValidator builds a JSON Schema validator for the parts of a
// swagger document that routing depends on.
func GetDocumentValidator() (*jsval.JSVal, error) {
	documentSchema := schema.New()
	if err := documentSchema.Extract(getDocumentJSONSchema()); err != nil {
		return nil, errors.Wrap(err, "error extracting document schema")
	}

	validatorBuilder := builder.New()
	validator, err := validatorBuilder.Build(documentSchema)
	if err != nil {
		return nil, errors.Wrap(err, "error building document validator")
	}

	return validator, nil
}

// getDocumentJSONSchema returns the JSON schema, represented as JSON, used by
// GetDocumentValidator.
func getDocumentJSONSchema() map[string]interface{} {
	parameter := map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"name", "in"},
		"properties": map[string]interface{}{
			"name": map[string]interface{}{"type": "string"},
			"in": map[string]interface{}{"enum": []interface{}{
				string(ParameterQuery),
				string(ParameterHeader),
				string(ParameterPath),
				string(ParameterFormData),
				string(ParameterBody),
			}},
			"type": map[string]interface{}{"enum": []interface{}{
				string(TypeString),
				string(TypeNumber),
				string(TypeInteger),
				string(TypeBoolean),
				string(TypeArray),
				string(TypeFile),
				string(TypeObject),
			}},
			"collectionFormat": map[string]interface{}{"enum": []interface{}{
				string(CollectionCSV),
				string(CollectionSSV),
				string(CollectionTSV),
				string(CollectionPipes),
				string(CollectionMulti),
			}},
		},
	}

	parameters := map[string]interface{}{
		"type":  "array",
		"items": parameter,
	}

	operation := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"parameters": parameters,
		},
	}

	// Only the known keys are constrained: path items may also hold `$ref`
	// strings and `x-` extensions of any shape.
	pathItemProperties := map[string]interface{}{
		"parameters": parameters,
	}
	for _, verb := range Verbs {
		pathItemProperties[string(verb)] = operation
	}
	pathItem := map[string]interface{}{
		"type":       "object",
		"properties": pathItemProperties,
	}

	securityScheme := map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"type"},
		"properties": map[string]interface{}{
			"type": map[string]interface{}{"type": "string"},
		},
	}

	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"paths"},
		"properties": map[string]interface{}{
			"paths": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": pathItem,
			},
			"securityDefinitions": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": securityScheme,
			},
		},
	}
}
