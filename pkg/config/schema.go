package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "fightkeep configuration",
  "type": "object",
  "properties": {
    "root": {
      "type": "string",
      "minLength": 1
    },
    "exclude": {
      "type": "array",
      "items": {"type": "string"}
    },
    "rules": {
      "type": "object",
      "properties": {
        "order": {
          "type": "array",
          "minItems": 1,
          "uniqueItems": true,
          "items": {
            "type": "string",
            "enum": ["name+author", "name", "manifest"]
          }
        },
        "manifest_similarity": {
          "type": "number",
          "exclusiveMinimum": 0,
          "maximum": 1
        }
      },
      "required": ["order"]
    },
    "dates": {
      "type": "object",
      "properties": {
        "layouts": {
          "type": "array",
          "items": {"type": "string", "minLength": 1}
        }
      }
    }
  },
  "required": ["root", "rules"]
}`

// validateAgainstSchema checks serialized config against the embedded schema.
func validateAgainstSchema(configData []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(configData)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %v", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
