// Package embedded carries the sample swagger document served when no
// document is configured.
package embedded

import (
	_ "embed"
)

// Swagger is a swagger 2.0 document (YAML) describing a small pet store.
//
//go:embed swagger.yaml
var Swagger []byte
