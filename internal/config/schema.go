package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// ConfigSchema returns the JSON schema of config.yaml.
func ConfigSchema() ([]byte, error) {
	return schemaFor(&MainConfig{}, "tradedocs config")
}

// OrderSchema returns the JSON schema of an order file.
func OrderSchema() ([]byte, error) {
	return schemaFor(&OrderFile{}, "tradedocs order")
}

// schemaFor reflects v using its yaml field names. Every field is optional
// because defaults are applied after loading.
func schemaFor(v any, title string) ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	s := r.Reflect(v)
	s.Title = title

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return out, nil
}
