package tool

import (
	"encoding/json"
	"fmt"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// reflectSchema generates the JSON Schema of v's type and compiles a
// validator from it. The returned *Schema is nil when the type has no fields.
func reflectSchema(name string, v any) (*Schema, *jsonschema.Schema, error) {
	reflector := invopop.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	raw, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal schema for %s: %w", name, err)
	}

	validator, err := jsonschema.CompileString(name+".json", string(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("compile schema for %s: %w", name, err)
	}

	var params Schema
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, nil, fmt.Errorf("decode schema for %s: %w", name, err)
	}
	if len(params.Properties) == 0 {
		return nil, validator, nil
	}
	return &params, validator, nil
}
