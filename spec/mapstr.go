package spec

import (
	"fmt"
)

// stringifyKeysMapValue recurses into v and changes all instances of
// map[interface{}]interface{} to map[string]interface{}. This is useful to
// work around the impedence mismatch between JSON and YAML unmarshaling that's
// described here:
//
// https://github.com/go-yaml/yaml/issues/139
//
// YAML allows non-string keys (`1: one`); those are formatted with fmt so that
// a default value always looks like something a JSON body could have carried.
func stringifyKeysMapValue(v interface{}) interface{} {
	switch v := v.(type) {
	case []interface{}:
		return stringifyKeysInterfaceArray(v)
	case map[interface{}]interface{}:
		return stringifyKeysInterfaceMap(v)
	case map[string]interface{}:
		return stringifyKeysStringMap(v)
	default:
		return v
	}
}

//
// helpers
//

func stringifyKeysInterfaceArray(in []interface{}) []interface{} {
	res := make([]interface{}, len(in))
	for i, v := range in {
		res[i] = stringifyKeysMapValue(v)
	}
	return res
}

func stringifyKeysInterfaceMap(in map[interface{}]interface{}) map[string]interface{} {
	res := make(map[string]interface{}, len(in))
	for k, v := range in {
		kStr, ok := k.(string)
		if !ok {
			kStr = fmt.Sprint(k)
		}
		res[kStr] = stringifyKeysMapValue(v)
	}
	return res
}

func stringifyKeysStringMap(in map[string]interface{}) map[string]interface{} {
	res := make(map[string]interface{}, len(in))
	for k, v := range in {
		res[k] = stringifyKeysMapValue(v)
	}
	return res
}
