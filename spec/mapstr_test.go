package spec

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestStringifyKeysMapValue(t *testing.T) {
	assert.Equal(t,
		map[string]interface{}{
			"arrkey": []interface{}{
				123,
				map[string]interface{}{
					"intkey": 123,
				},
			},
			"boolkey": true,
			"intkey":  123,
			"mapkey": map[string]interface{}{
				"intkey": 123,
			},
		},
		stringifyKeysMapValue(map[interface{}]interface{}{
			"arrkey": []interface{}{
				123,
				map[interface{}]interface{}{
					"intkey": 123,
				},
			},
			"boolkey": true,
			"intkey":  123,
			"mapkey": map[interface{}]interface{}{
				"intkey": 123,
			},
		}),
	)
}

func TestStringifyKeysMapValue_NonStringKeys(t *testing.T) {
	assert.Equal(t,
		map[string]interface{}{
			"1":    "one",
			"true": "yes",
		},
		stringifyKeysMapValue(map[interface{}]interface{}{
			1:    "one",
			true: "yes",
		}),
	)
}

func TestStringifyKeysMapValue_NestedInStringMap(t *testing.T) {
	assert.Equal(t,
		map[string]interface{}{
			"outer": map[string]interface{}{
				"2": "two",
			},
		},
		stringifyKeysMapValue(map[string]interface{}{
			"outer": map[interface{}]interface{}{
				2: "two",
			},
		}),
	)
}

func TestStringifyKeysMapValue_Scalars(t *testing.T) {
	assert.Equal(t, "value", stringifyKeysMapValue("value"))
	assert.Nil(t, stringifyKeysMapValue(nil))
}
