package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/extbindgo/internal/config"
)

// Extension is the interface compiled-in extensions implement to be bound
// into a host.
type Extension interface {
	// Manifest returns the extension's manifest source together with a
	// synthetic filename used in diagnostics.
	Manifest() (filename string, src string)

	// Register binds the extension's native type and method handlers.
	Register(r *Registry)
}

// RegisteredMethod holds the compiled Go side of one callable operation.
// Fn must be a method expression of the registered type: a function whose
// first parameter is the receiver, whose second is the single input, and
// which returns either (output) or (output, error).
type RegisteredMethod struct {
	Fn        any
	InputType reflect.Type
}

// RegisteredExtension holds the compiled Go parts of one extension: the
// zero-argument constructor for its exported type and the method table the
// host dispatches through.
type RegisteredExtension struct {
	TypeName    string
	NewInstance func() any
	Methods     map[string]*RegisteredMethod
}

// Registry holds all bindings and manifest definitions for a single
// application instance.
type Registry struct {
	bindings    map[string]*RegisteredExtension
	definitions map[string]*config.ExtensionDefinition
	sealed      bool
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		bindings:    make(map[string]*RegisteredExtension),
		definitions: make(map[string]*config.ExtensionDefinition),
	}
}

// Bind registers the compiled parts of an extension under its declared
// module name. Binding is a load-time operation: a duplicate name, a sealed
// registry, or a malformed handler is a fatal misconfiguration and panics.
func (r *Registry) Bind(name string, ext *RegisteredExtension) {
	if r.sealed {
		panic(fmt.Sprintf("cannot bind extension '%s': registry is sealed", name))
	}
	if _, exists := r.bindings[name]; exists {
		panic(fmt.Sprintf("extension with name '%s' already bound", name))
	}
	if ext.NewInstance == nil {
		panic(fmt.Sprintf("extension '%s' has no instance constructor", name))
	}
	for methodName, m := range ext.Methods {
		if err := checkHandlerShape(m); err != nil {
			panic(fmt.Sprintf("extension '%s', handler '%s': %v", name, methodName, err))
		}
	}
	slog.Debug("Binding extension.", "name", name, "type", ext.TypeName, "methods", len(ext.Methods))
	r.bindings[name] = ext
}

// Seal marks registration as complete. Any Bind call after Seal panics.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether registration has completed.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Binding returns the compiled binding registered under name.
func (r *Registry) Binding(name string) (*RegisteredExtension, bool) {
	ext, ok := r.bindings[name]
	return ext, ok
}

// Definition returns the manifest definition registered under name.
func (r *Registry) Definition(name string) (*config.ExtensionDefinition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// Definitions returns the full manifest definition table.
func (r *Registry) Definitions() map[string]*config.ExtensionDefinition {
	return r.definitions
}

// PopulateDefinitionsFromModel copies the loaded manifest definitions from
// the config model into the registry for access during dispatch.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Extensions {
		r.definitions[key] = val
	}
}

// checkHandlerShape verifies that a registered handler is a method
// expression with the supported signature.
func checkHandlerShape(m *RegisteredMethod) error {
	if m.Fn == nil {
		return fmt.Errorf("handler function is nil")
	}
	fnType := reflect.TypeOf(m.Fn)
	if fnType.Kind() != reflect.Func {
		return fmt.Errorf("handler must be a func, got %s", fnType.Kind())
	}
	if fnType.NumIn() != 2 {
		return fmt.Errorf("handler must take (receiver, input), got %d parameters", fnType.NumIn())
	}
	if m.InputType != nil && fnType.In(1) != m.InputType {
		return fmt.Errorf("handler input parameter is %s but registered input type is %s", fnType.In(1), m.InputType)
	}
	switch fnType.NumOut() {
	case 1:
		// Plain result.
	case 2:
		if !fnType.Out(1).Implements(reflect.TypeOf((*error)(nil)).Elem()) {
			return fmt.Errorf("handler's second result must be error, got %s", fnType.Out(1))
		}
	default:
		return fmt.Errorf("handler must return (output) or (output, error), got %d results", fnType.NumOut())
	}
	return nil
}
