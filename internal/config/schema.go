package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema for the configuration file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&AppConfig{})
	schema.Title = "bearing-dash configuration"
	schema.Description = "Schema for ~/.config/bearing-dash/config.yaml."
	// every key has a default
	schema.Required = nil

	return json.MarshalIndent(schema, "", "  ")
}
