package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator is implemented by request types that check cross-field rules
// the JSON Schema cannot express.
type Validator interface {
	Validate() error
}

// RunFunc executes a tool with its typed request.
// Operational failures may be reported either as an error or inside Resp.
type RunFunc[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

// Typed binds a request type, a response type and a RunFunc into a tool the
// registry can dispatch. The parameter schema is reflected from Req once.
type Typed[Req, Resp any] struct {
	decl      Declaration
	validator *jsonschema.Schema
	run       RunFunc[Req, Resp]
}

// New builds a Typed tool. It fails only if Req cannot be turned into a
// valid JSON Schema, which is a programming error.
func New[Req, Resp any](name, description string, run RunFunc[Req, Resp]) (*Typed[Req, Resp], error) {
	params, validator, err := reflectSchema(name, new(Req))
	if err != nil {
		return nil, err
	}
	return &Typed[Req, Resp]{
		decl: Declaration{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
		validator: validator,
		run:       run,
	}, nil
}

// Name returns the tool's identifier.
func (t *Typed[Req, Resp]) Name() string {
	return t.decl.Name
}

// Declaration returns the tool's schema for the LLM.
func (t *Typed[Req, Resp]) Declaration() Declaration {
	return t.decl
}

// Call validates args against the schema, decodes them into Req and runs
// the tool. The response is returned as a JSON object.
func (t *Typed[Req, Resp]) Call(ctx context.Context, args map[string]any) (map[string]any, error) {
	if args == nil {
		args = map[string]any{}
	}

	if err := t.validator.Validate(args); err != nil {
		return nil, &ArgumentError{Tool: t.decl.Name, Cause: err}
	}

	var req Req
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &req,
	})
	if err != nil {
		return nil, fmt.Errorf("build decoder for %s: %w", t.decl.Name, err)
	}
	if err := decoder.Decode(args); err != nil {
		return nil, &ArgumentError{Tool: t.decl.Name, Cause: err}
	}

	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, &ArgumentError{Tool: t.decl.Name, Cause: err}
		}
	}

	resp, err := t.run(ctx, &req)
	if err != nil {
		return nil, err
	}

	return toObject(resp)
}

func toObject(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool response: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("tool response is not a JSON object: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// ArgumentError reports arguments that failed schema or request validation.
type ArgumentError struct {
	Tool  string
	Cause error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Cause)
}

func (e *ArgumentError) Unwrap() []error {
	return []error{errutil.ErrArgumentValidation, e.Cause}
}

func (e *ArgumentError) InvalidInput() bool { return true }
