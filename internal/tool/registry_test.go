package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func echoSpec(name string) Spec {
	return Spec{
		Name:        name,
		Description: "echoes its input",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"text": {Type: "string", Description: "text to echo"},
			},
			Required: []string{"text"},
		},
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			return args["text"].(string), nil
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoSpec("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	spec, err := r.Get("echo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if spec.Name != "echo" {
		t.Errorf("spec name = %q, want echo", spec.Name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoSpec("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := r.Register(echoSpec("echo"))
	if !errors.Is(err, ErrDuplicateTool) {
		t.Errorf("duplicate Register error = %v, want ErrDuplicateTool", err)
	}
}

func TestRegisterRejectsInvalidSpecs(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Spec{Handler: func(context.Context, map[string]any) (string, error) { return "", nil }}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register(Spec{Name: "no-handler"}); err == nil {
		t.Error("expected error for nil handler")
	}
}

func TestGetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownTool", err)
	}
}

func TestInvokeUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Invoke(context.Background(), "nope", map[string]any{})
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("Invoke(nope) error = %v, want ErrUnknownTool", err)
	}
}

func TestListRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := r.Register(echoSpec(name)); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	specs := r.List()
	want := []string{"charlie", "alpha", "bravo"}
	if len(specs) != len(want) {
		t.Fatalf("List returned %d specs, want %d", len(specs), len(want))
	}
	for i, name := range want {
		if specs[i].Name != name {
			t.Errorf("List[%d] = %q, want %q", i, specs[i].Name, name)
		}
	}
}

func TestInvokeHappyPath(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoSpec("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out, err := r.Invoke(context.Background(), "echo", map[string]any{"text": "hello"})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out != "hello" {
		t.Errorf("Invoke result = %q, want hello", out)
	}
}

func TestInvokeMissingRequired(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoSpec("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := r.Invoke(context.Background(), "echo", map[string]any{})
	var invalid *InvalidArgumentsError
	if !errors.As(err, &invalid) {
		t.Fatalf("Invoke error = %v, want InvalidArgumentsError", err)
	}
	if !strings.Contains(invalid.Reason, "text") {
		t.Errorf("reason %q does not name the missing parameter", invalid.Reason)
	}
}

func TestInvokeUndeclaredArgument(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoSpec("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := r.Invoke(context.Background(), "echo", map[string]any{"text": "hi", "volume": 11})
	var invalid *InvalidArgumentsError
	if !errors.As(err, &invalid) {
		t.Errorf("Invoke error = %v, want InvalidArgumentsError", err)
	}
}

func TestInvokeTypeChecks(t *testing.T) {
	r := NewRegistry()
	spec := Spec{
		Name: "typed",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"name":   {Type: "string"},
				"count":  {Type: "integer"},
				"ratio":  {Type: "number"},
				"active": {Type: "boolean"},
				"tags":   {Type: "array"},
			},
		},
		Handler: func(_ context.Context, _ map[string]any) (string, error) { return "ok", nil },
	}
	if err := r.Register(spec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{"all valid", map[string]any{"name": "x", "count": float64(3), "ratio": 1.5, "active": true, "tags": []any{"a"}}, false},
		{"integer as int", map[string]any{"count": 3}, false},
		{"string as number", map[string]any{"ratio": "1.5"}, true},
		{"fractional integer", map[string]any{"count": 2.5}, true},
		{"number as boolean", map[string]any{"active": 1}, true},
		{"string as array", map[string]any{"tags": "a,b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Invoke(context.Background(), "typed", tt.args)
			var invalid *InvalidArgumentsError
			if tt.wantErr && !errors.As(err, &invalid) {
				t.Errorf("Invoke(%v) error = %v, want InvalidArgumentsError", tt.args, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Invoke(%v) unexpected error: %v", tt.args, err)
			}
		})
	}
}

func TestInvokeExecutionError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("backend exploded")
	spec := Spec{
		Name:       "flaky",
		Parameters: Schema{Type: "object", Properties: map[string]Property{}},
		Handler: func(_ context.Context, _ map[string]any) (string, error) {
			return "", boom
		},
	}
	if err := r.Register(spec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := r.Invoke(context.Background(), "flaky", map[string]any{})
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Invoke error = %v, want ExecutionError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("ExecutionError does not wrap the handler error: %v", err)
	}
}
