package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/extbindgo/extensions/greeter"
	"github.com/vk/extbindgo/internal/hcl"
	"github.com/vk/extbindgo/internal/invoker"
	"github.com/vk/extbindgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// newGreeterHost wires a host over the real greeter extension, the same way
// the app does at startup.
func newGreeterHost(t *testing.T, overrides map[string]string) (*Host, error) {
	t.Helper()
	ctx := context.Background()

	ext := &greeter.Extension{}
	filename, src := ext.Manifest()

	model, converter, err := hcl.NewLoader().Load(ctx, map[string]string{filename: src})
	require.NoError(t, err)

	reg := registry.New()
	ext.Register(reg)
	reg.PopulateDefinitionsFromModel(model)
	require.NoError(t, reg.ValidateRegistry(ctx))
	reg.Seal()

	return New(ctx, reg, invoker.New(converter), overrides)
}

func TestHost_Introspection(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h, err := newGreeterHost(t, nil)
	require.NoError(t, err)

	// --- Act ---
	mod, err := h.Open("greeter")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "greeter", mod.Name())

	// Exactly one exported type with exactly two callable operations.
	require.Equal(t, []string{"Greeter"}, mod.Types())
	methods, err := mod.Methods("Greeter")
	require.NoError(t, err)
	require.Equal(t, []string{"complex_greet", "simple_greet"}, methods)
}

func TestHost_CallGreetings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h, err := newGreeterHost(t, nil)
	require.NoError(t, err)
	mod, err := h.Open("greeter")
	require.NoError(t, err)
	instance, err := mod.NewInstance("Greeter")
	require.NoError(t, err)

	ctx := context.Background()
	arg := cty.StringVal("World")

	// --- Act ---
	simple, err := instance.Call(ctx, "simple_greet", arg)
	require.NoError(t, err)
	complexGreeting, err := instance.Call(ctx, "complex_greet", arg)
	require.NoError(t, err)

	// --- Assert ---
	require.Contains(t, simple.AsString(), "World")
	require.Contains(t, complexGreeting.AsString(), "World")
	require.NotEqual(t, simple.AsString(), complexGreeting.AsString())
}

func TestHost_CallArgumentTypeMismatch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h, err := newGreeterHost(t, nil)
	require.NoError(t, err)
	mod, err := h.Open("greeter")
	require.NoError(t, err)
	instance, err := mod.NewInstance("Greeter")
	require.NoError(t, err)

	// --- Act ---
	// A list cannot convert to the declared string parameter; the error
	// surfaces directly from the call.
	_, err = instance.Call(context.Background(), "simple_greet",
		cty.ListVal([]cty.Value{cty.StringVal("World")}))

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot convert")
}

func TestHost_UnknownLookups(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h, err := newGreeterHost(t, nil)
	require.NoError(t, err)

	// --- Act & Assert ---
	_, err = h.Open("no_such_module")
	require.Error(t, err)

	mod, err := h.Open("greeter")
	require.NoError(t, err)

	_, err = mod.NewInstance("NoSuchType")
	require.Error(t, err)

	instance, err := mod.NewInstance("Greeter")
	require.NoError(t, err)
	_, err = instance.Call(context.Background(), "no_such_method", cty.StringVal("x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `has no method "no_such_method"`)
}

func TestHost_ModuleNameOverride(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h, err := newGreeterHost(t, map[string]string{"greeter": "_ext"})
	require.NoError(t, err)

	// --- Act & Assert ---
	// The module is addressable only under its overridden name.
	require.Equal(t, []string{"_ext"}, h.Modules())

	mod, err := h.Open("_ext")
	require.NoError(t, err)
	require.Equal(t, "_ext", mod.Name())

	_, err = h.Open("greeter")
	require.Error(t, err)
}

func TestHost_MalformedOverrideFailsLoad(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := newGreeterHost(t, map[string]string{"greeter": "not a valid name"})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a valid identifier")
}

func TestModule_Stub(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h, err := newGreeterHost(t, nil)
	require.NoError(t, err)
	mod, err := h.Open("greeter")
	require.NoError(t, err)

	// --- Act ---
	stub := mod.Stub()

	// --- Assert ---
	require.Contains(t, stub, "module greeter")
	require.Contains(t, stub, "type Greeter:")
	require.Contains(t, stub, "simple_greet(name: string) -> string")
	require.Contains(t, stub, "complex_greet(name: string) -> string")
}
