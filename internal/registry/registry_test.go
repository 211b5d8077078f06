package registry

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeReceiver struct{}

func (f *fakeReceiver) Echo(s string) string { return s }

func validBinding() *RegisteredExtension {
	return &RegisteredExtension{
		TypeName:    "Fake",
		NewInstance: func() any { return new(fakeReceiver) },
		Methods: map[string]*RegisteredMethod{
			"Echo": {Fn: (*fakeReceiver).Echo, InputType: reflect.TypeOf("")},
		},
	}
}

func TestBind_DuplicateNamePanics(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	r.Bind("fake", validBinding())

	// --- Act & Assert ---
	require.PanicsWithValue(t,
		"extension with name 'fake' already bound",
		func() { r.Bind("fake", validBinding()) },
	)
}

func TestBind_AfterSealPanics(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	r.Bind("fake", validBinding())
	r.Seal()

	// --- Act & Assert ---
	require.True(t, r.Sealed())
	require.Panics(t, func() { r.Bind("other", validBinding()) },
		"registration must be a one-shot transition; binding after seal is a programmer error")
}

func TestBind_RejectsMalformedHandlers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		apply func(*RegisteredExtension)
	}{
		{
			name:  "nil constructor",
			apply: func(ext *RegisteredExtension) { ext.NewInstance = nil },
		},
		{
			name: "nil handler fn",
			apply: func(ext *RegisteredExtension) {
				ext.Methods["Echo"].Fn = nil
			},
		},
		{
			name: "not a func",
			apply: func(ext *RegisteredExtension) {
				ext.Methods["Echo"].Fn = "not a function"
			},
		},
		{
			name: "wrong arity",
			apply: func(ext *RegisteredExtension) {
				ext.Methods["Echo"].Fn = func(s string) string { return s }
			},
		},
		{
			name: "input type disagreement",
			apply: func(ext *RegisteredExtension) {
				ext.Methods["Echo"].InputType = reflect.TypeOf(0)
			},
		},
		{
			name: "second result not error",
			apply: func(ext *RegisteredExtension) {
				ext.Methods["Echo"].Fn = func(r *fakeReceiver, s string) (string, string) { return s, s }
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			r := New()
			ext := validBinding()
			tc.apply(ext)

			// --- Act & Assert ---
			require.Panics(t, func() { r.Bind("fake", ext) })
		})
	}
}

func TestBind_AcceptsErrorReturningHandler(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	ext := validBinding()
	ext.Methods["Echo"].Fn = func(f *fakeReceiver, s string) (string, error) { return s, nil }

	// --- Act & Assert ---
	require.NotPanics(t, func() { r.Bind("fake", ext) })

	binding, ok := r.Binding("fake")
	require.True(t, ok)
	require.Len(t, binding.Methods, 1)
}

func TestValidateIdentity(t *testing.T) {
	t.Parallel()

	// --- Act & Assert ---
	for _, valid := range []string{"greeter", "_ext", "Module_2", "a"} {
		require.NoError(t, ValidateIdentity(valid), "%q should be a valid module identity", valid)
	}
	for _, invalid := range []string{"", "2fast", "has-dash", "has space", "dot.name", "ünïcode"} {
		require.Error(t, ValidateIdentity(invalid), "%q should be rejected as a module identity", invalid)
	}
}
