package selection

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "selection.schema.json"

// selectionSchema: an object mapping material tickers to a recipe name, a
// planet natural id, or an empty value meaning the material is not priced
const selectionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "propertyNames": {"pattern": "^[A-Za-z0-9]{1,8}$"},
  "additionalProperties": {
    "oneOf": [
      {"type": "null"},
      {"type": "string", "maxLength": 0},
      {"type": "string", "pattern": "^[A-Z0-9]{1,8}:.*=>.*$"},
      {"type": "string", "pattern": "^[A-Za-z0-9-]+$"}
    ]
  }
}`

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, strings.NewReader(selectionSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}
