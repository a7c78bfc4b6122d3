package coercer

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/yougroupteam/swagger-router/routererr"
	"github.com/yougroupteam/swagger-router/spec"
)

// Cast coerces a located request value (or a default) to the type declared by
// a parameter. Request values mostly arrive as strings; after casting an
// integer is an int64, a number a float64, a boolean a bool, an array a
// []interface{}, an object a map[string]interface{} and a date a time.Time.
//
// Errors are *routererr.ParameterError values naming the parameter.
func Cast(value interface{}, param *spec.Parameter) (interface{}, error) {
	node := param.Node()
	if node == nil {
		return nil, &routererr.ParameterError{
			Kind:    routererr.ErrMissingParameterType,
			Name:    param.Name,
			In:      string(param.In),
			Message: "body parameter has no schema",
		}
	}

	casted, err := CastSchema(value, node)
	if err != nil {
		return nil, routererr.WithParameter(err, param.Name, string(param.In))
	}
	return casted, nil
}

// CastSchema coerces value to the type of a schema node, recursing through
// array items and object properties.
func CastSchema(value interface{}, schema *spec.Schema) (interface{}, error) {
	typ := schema.Type
	if typ == "" && isDateFormat(schema.Format) {
		typ = spec.TypeString
	}

	if typ == "" {
		return nil, &routererr.ParameterError{Kind: routererr.ErrMissingParameterType}
	}
	if !typ.Valid() {
		return nil, &routererr.ParameterError{
			Kind:    routererr.ErrInvalidParameterType,
			Message: fmt.Sprintf("%q", typ),
		}
	}

	if value == nil {
		return nil, nil
	}

	switch typ {
	case spec.TypeArray:
		return castArray(value, schema)
	case spec.TypeBoolean:
		return castBoolean(value)
	case spec.TypeFile:
		return value, nil
	case spec.TypeInteger:
		return castInteger(value)
	case spec.TypeNumber:
		return castNumber(value)
	case spec.TypeObject:
		return castObject(value, schema)
	case spec.TypeString:
		return castString(value, schema.Format)
	}

	// Unreachable as long as every valid type has a case above
	return nil, &routererr.ParameterError{
		Kind:    routererr.ErrInvalidParameterType,
		Message: fmt.Sprintf("%q", typ),
	}
}

//
// Private functions
//

func castArray(value interface{}, schema *spec.Schema) (interface{}, error) {
	var elements []interface{}

	switch v := value.(type) {
	case string:
		for _, element := range schema.CollectionFormat.Split(v) {
			elements = append(elements, element)
		}
	case []string:
		for _, element := range v {
			elements = append(elements, element)
		}
	case []interface{}:
		elements = v
	default:
		return nil, routererr.BadRequest("Invalid array parameter")
	}

	casted := make([]interface{}, len(elements))
	for i, element := range elements {
		if schema.Items == nil {
			casted[i] = element
			continue
		}

		castedElement, err := CastSchema(element, schema.Items)
		if err != nil {
			return nil, err
		}
		casted[i] = castedElement
	}
	return casted, nil
}

func castBoolean(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case bool:
		return v, nil

	case string:
		// "true", "1", "false", "0" and friends mean what they say; anything
		// else is true unless it's empty.
		if b, err := strconv.ParseBool(v); err == nil {
			return b, nil
		}
		return v != "", nil

	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	}

	return nil, routererr.BadRequest("Invalid boolean parameter")
}

func castInteger(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &routererr.ParameterError{
				Kind:    routererr.ErrBadRequestParameter,
				Message: "Invalid integer parameter",
				Cause:   err,
			}
		}
		return i, nil

	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which is out of range
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v), nil
		}
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	}

	return nil, routererr.BadRequest("Invalid integer parameter")
}

func castNumber(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &routererr.ParameterError{
				Kind:    routererr.ErrBadRequestParameter,
				Message: "Invalid number parameter",
				Cause:   err,
			}
		}
		return f, nil

	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}

	return nil, routererr.BadRequest("Invalid number parameter")
}

func castObject(value interface{}, schema *spec.Schema) (interface{}, error) {
	var object map[string]interface{}

	switch v := value.(type) {
	case string:
		result := gjson.Parse(v)
		if !gjson.Valid(v) || !result.IsObject() {
			return nil, routererr.BadRequest("Bad json object")
		}
		object = result.Value().(map[string]interface{})

	case map[string]interface{}:
		// Copied so that casting a default never changes the document
		object = make(map[string]interface{}, len(v))
		for key, property := range v {
			object[key] = property
		}

	default:
		return nil, routererr.BadRequest("Bad json object")
	}

	for key, property := range object {
		propertySchema, ok := schema.Properties[key]
		if !ok || propertySchema == nil || !isTyped(propertySchema) {
			continue
		}

		casted, err := CastSchema(property, propertySchema)
		if err != nil {
			return nil, err
		}
		object[key] = casted
	}

	return object, nil
}

func castString(value interface{}, format string) (interface{}, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s = fmt.Sprint(v)
	}

	switch format {
	case spec.FormatDate:
		return parseDate(s, "2006-01-02")
	case spec.FormatDateTime:
		return parseDate(s, time.RFC3339)
	}
	return s, nil
}

func parseDate(s, layout string) (interface{}, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, &routererr.ParameterError{
			Kind:    routererr.ErrBadRequestParameter,
			Message: "Invalid date parameter",
			Cause:   err,
		}
	}
	return t, nil
}

func isDateFormat(format string) bool {
	return format == spec.FormatDate || format == spec.FormatDateTime
}

func isTyped(schema *spec.Schema) bool {
	return schema.Type != "" || isDateFormat(schema.Format)
}
