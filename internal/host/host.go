// Package host exposes bound extensions to callers under their externally
// visible module names. It is the runtime-facing half of the boundary: the
// registry records what exists, the host hands out module handles, native
// instances, and dynamic method calls.
package host

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/extbindgo/internal/config"
	"github.com/vk/extbindgo/internal/ctxlog"
	"github.com/vk/extbindgo/internal/invoker"
	"github.com/vk/extbindgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Host resolves externally visible module names to loaded modules.
type Host struct {
	modules map[string]*Module
}

// New builds a Host over a populated registry. overrides maps a declared
// extension name to the module name it should load under; extensions absent
// from the map load under their declared name. Every visible name must be a
// valid module identity or New fails, mirroring a fatal load-time
// misconfiguration in the build.
func New(ctx context.Context, reg *registry.Registry, inv *invoker.Invoker, overrides map[string]string) (*Host, error) {
	logger := ctxlog.FromContext(ctx)

	h := &Host{modules: make(map[string]*Module)}
	for declared, def := range reg.Definitions() {
		visible := declared
		if override, ok := overrides[declared]; ok && override != "" {
			visible = override
		}
		if err := registry.ValidateIdentity(visible); err != nil {
			return nil, fmt.Errorf("cannot load extension %q: %w", declared, err)
		}
		if _, exists := h.modules[visible]; exists {
			return nil, fmt.Errorf("module name %q is claimed by more than one extension", visible)
		}

		binding, ok := reg.Binding(declared)
		if !ok {
			return nil, fmt.Errorf("extension %q has no compiled binding", declared)
		}

		h.modules[visible] = &Module{
			name:    visible,
			def:     def,
			binding: binding,
			invoker: inv,
		}
		logger.Debug("Module loaded.", "name", visible, "declared", declared)
	}
	return h, nil
}

// Open returns the module loaded under the given name.
func (h *Host) Open(name string) (*Module, error) {
	mod, ok := h.modules[name]
	if !ok {
		return nil, fmt.Errorf("no module loaded under name %q", name)
	}
	return mod, nil
}

// Modules lists the visible names of all loaded modules, sorted.
func (h *Host) Modules() []string {
	names := make([]string, 0, len(h.modules))
	for name := range h.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Module is a handle to one loaded extension module.
type Module struct {
	name    string
	def     *config.ExtensionDefinition
	binding *registry.RegisteredExtension
	invoker *invoker.Invoker
}

// Name returns the module's externally visible name.
func (m *Module) Name() string {
	return m.name
}

// Types lists the module's exported type names.
func (m *Module) Types() []string {
	return []string{m.def.Type.Name}
}

// Methods lists the callable method names of an exported type, sorted.
func (m *Module) Methods(typeName string) ([]string, error) {
	if typeName != m.def.Type.Name {
		return nil, fmt.Errorf("module %q exports no type %q", m.name, typeName)
	}
	names := make([]string, 0, len(m.def.Type.Methods))
	for name := range m.def.Type.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// NewInstance constructs a fresh instance of an exported type. Construction
// takes no arguments and the instance is immediately usable.
func (m *Module) NewInstance(typeName string) (*Instance, error) {
	if typeName != m.def.Type.Name {
		return nil, fmt.Errorf("module %q exports no type %q", m.name, typeName)
	}
	return &Instance{
		module:   m,
		receiver: m.binding.NewInstance(),
	}, nil
}

// Instance is a live native object created by the host on a caller's behalf.
type Instance struct {
	module   *Module
	receiver any
}

// Call dispatches one method call on the instance. An argument value that
// cannot convert to the method's declared input type fails the call with an
// error; the native code performs no validation of its own.
func (i *Instance) Call(ctx context.Context, method string, arg cty.Value) (cty.Value, error) {
	def, ok := i.module.def.Type.Methods[method]
	if !ok {
		return cty.NilVal, fmt.Errorf("type %q has no method %q", i.module.def.Type.Name, method)
	}
	handler, ok := i.module.binding.Methods[def.Handler]
	if !ok {
		return cty.NilVal, fmt.Errorf("handler %q for method %q is not registered", def.Handler, method)
	}
	return i.module.invoker.Invoke(ctx, def, handler, i.receiver, arg)
}
