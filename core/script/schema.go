package script

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// JSONSchema describes the script file format.
func JSONSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&Script{})
	schema.Title = "Lesson script"
	schema.Description = "Ordered dialogue narrated by the voice tutor"
	return schema
}

// MarshalJSONSchema renders JSONSchema indented for printing.
func MarshalJSONSchema() ([]byte, error) {
	return json.MarshalIndent(JSONSchema(), "", "  ")
}
