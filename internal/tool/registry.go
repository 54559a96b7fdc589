package tool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateTool is returned by Register when the name is already taken.
var ErrDuplicateTool = errors.New("tool already registered")

// ErrUnknownTool is returned by Get and Invoke for unregistered names.
var ErrUnknownTool = errors.New("unknown tool")

// Schema describes a tool's parameters as a JSON-schema object.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a single parameter within a Schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Handler executes a tool call. Arguments have already been validated
// against the tool's schema when a Handler runs.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Spec is one callable operation exposed to the chat model: a unique name,
// a parameter schema, and the invoke function supplied by the backend.
type Spec struct {
	Name        string
	Description string
	Parameters  Schema
	Handler     Handler
}

// InvalidArgumentsError reports a tool call whose arguments don't satisfy
// the declared schema. The model produced a malformed call; the operation
// itself was never attempted.
type InvalidArgumentsError struct {
	Tool   string
	Reason string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %s", e.Tool, e.Reason)
}

// ExecutionError reports a failure inside the tool's own logic, after the
// arguments validated fine.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Registry holds the named tools exposed to the chat model. Registration
// happens once at startup; lookups and invocations are concurrency-safe.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a tool spec. Names must be unique and handlers non-nil.
func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" {
		return fmt.Errorf("tool name must not be empty")
	}
	if spec.Handler == nil {
		return fmt.Errorf("tool %s has no handler", spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[spec.Name]; exists {
		return fmt.Errorf("%s: %w", spec.Name, ErrDuplicateTool)
	}
	r.specs[spec.Name] = spec
	r.order = append(r.order, spec.Name)
	return nil
}

// Get returns the spec registered under name.
func (r *Registry) Get(name string) (Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("%s: %w", name, ErrUnknownTool)
	}
	return spec, nil
}

// List returns all specs in registration order, so the tool catalog sent to
// the model is deterministic.
func (r *Registry) List() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]Spec, len(r.order))
	for i, name := range r.order {
		specs[i] = r.specs[name]
	}
	return specs
}

// Invoke validates args against the tool's schema and runs its handler.
// Schema violations yield *InvalidArgumentsError; handler failures yield
// *ExecutionError, so the orchestrator can tell a malformed call from a
// failed operation.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (string, error) {
	spec, err := r.Get(name)
	if err != nil {
		return "", err
	}

	if reason := validateArgs(spec.Parameters, args); reason != "" {
		return "", &InvalidArgumentsError{Tool: name, Reason: reason}
	}

	out, err := spec.Handler(ctx, args)
	if err != nil {
		return "", &ExecutionError{Tool: name, Err: err}
	}
	return out, nil
}

// validateArgs checks args against the schema, returning a human-readable
// reason on the first violation and "" when everything is fine.
func validateArgs(schema Schema, args map[string]any) string {
	for _, req := range schema.Required {
		if _, ok := args[req]; !ok {
			return fmt.Sprintf("missing required parameter %q", req)
		}
	}

	for key, value := range args {
		prop, declared := schema.Properties[key]
		if !declared {
			return fmt.Sprintf("unexpected parameter %q", key)
		}
		if reason := checkType(key, prop.Type, value); reason != "" {
			return reason
		}
	}
	return ""
}

// checkType verifies a JSON value against a declared schema type.
func checkType(key, declared string, value any) string {
	switch declared {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("parameter %q must be a string", key)
		}
	case "number":
		if !isNumber(value) {
			return fmt.Sprintf("parameter %q must be a number", key)
		}
	case "integer":
		f, ok := asFloat(value)
		if !ok || f != float64(int64(f)) {
			return fmt.Sprintf("parameter %q must be an integer", key)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("parameter %q must be a boolean", key)
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return fmt.Sprintf("parameter %q must be an array", key)
		}
	}
	return ""
}

func isNumber(value any) bool {
	_, ok := asFloat(value)
	return ok
}

// asFloat normalizes the numeric types a decoded JSON argument can carry.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
