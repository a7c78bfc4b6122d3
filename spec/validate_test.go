package spec

import (
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/yougroupteam/swagger-router/embedded"
)

func TestValidateDocument_Valid(t *testing.T) {
	assert.NoError(t, ValidateDocument(embedded.Swagger))

	assert.NoError(t, ValidateDocument([]byte(`
swagger: "2.0"
paths:
  /things/{id}:
    $ref: "#/x"
    x-owner: team
    parameters:
      - name: id
        in: path
        type: string
    get:
      parameters:
        - name: ids
          in: query
          type: array
          collectionFormat: multi
          items:
            type: integer
`)))
}

func TestValidateDocument_Invalid(t *testing.T) {
	// Unknown location
	assert.Error(t, ValidateDocument([]byte(`
swagger: "2.0"
paths:
  /things:
    get:
      parameters:
        - name: session
          in: cookie
          type: string
`)))

	// Missing name
	assert.Error(t, ValidateDocument([]byte(`
swagger: "2.0"
paths:
  /things:
    parameters:
      - in: query
        type: string
`)))

	// Unknown type
	assert.Error(t, ValidateDocument([]byte(`
swagger: "2.0"
paths:
  /things:
    get:
      parameters:
        - name: when
          in: query
          type: datetime
`)))

	// Unknown collection format
	assert.Error(t, ValidateDocument([]byte(`
swagger: "2.0"
paths:
  /things:
    get:
      parameters:
        - name: ids
          in: query
          type: array
          collectionFormat: semicolons
`)))

	// Security scheme without a type
	assert.Error(t, ValidateDocument([]byte(`
swagger: "2.0"
paths: {}
securityDefinitions:
  api_key:
    name: key
`)))

	// No paths at all
	assert.Error(t, ValidateDocument([]byte(`swagger: "2.0"`)))

	// Not a document
	assert.Error(t, ValidateDocument([]byte(`paths: [`)))
}

func TestDecodeRaw(t *testing.T) {
	raw, err := DecodeRaw([]byte(`
swagger: "2.0"
paths:
  /pets:
    post:
      parameters:
        - name: pet
          in: body
          schema:
            $ref: "#/definitions/Pet"
`))
	assert.NoError(t, err)

	doc := raw.(map[string]interface{})
	param := doc["paths"].(map[string]interface{})["/pets"].(map[string]interface{})["post"].(map[string]interface{})["parameters"].([]interface{})[0]
	assert.Equal(t, map[string]interface{}{"$ref": "#/definitions/Pet"}, param.(map[string]interface{})["schema"])

	_, err = DecodeRaw([]byte(`paths: [`))
	assert.Error(t, err)
}
