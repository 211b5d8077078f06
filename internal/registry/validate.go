package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/extbindgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry performs a strict parity check between manifests and Go
// code: every declared method needs a registered handler with a compatible
// input type, and every registered handler must be declared. It also
// validates every declared module identity.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for name, def := range r.definitions {
		if err := ValidateIdentity(name); err != nil {
			errs = append(errs, fmt.Sprintf("extension '%s': %v", name, err))
		}

		binding, ok := r.bindings[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("extension '%s': manifest has no compiled binding", name))
			continue
		}

		if def.Type == nil {
			errs = append(errs, fmt.Sprintf("extension '%s': manifest declares no exported type", name))
			continue
		}
		if binding.TypeName != def.Type.Name {
			errs = append(errs, fmt.Sprintf("extension '%s': manifest exports type '%s' but Go binding registers '%s'",
				name, def.Type.Name, binding.TypeName))
		}

		declaredHandlers := make(map[string]struct{})
		for methodName, methodDef := range def.Type.Methods {
			declaredHandlers[methodDef.Handler] = struct{}{}

			handler, ok := binding.Methods[methodDef.Handler]
			if !ok {
				errs = append(errs, fmt.Sprintf("extension '%s': method '%s' names handler '%s' which is not registered",
					name, methodName, methodDef.Handler))
				continue
			}
			if err := checkInputCompat(methodDef.Input.Type, handler.InputType); err != nil {
				errs = append(errs, fmt.Sprintf("extension '%s', method '%s': %v", name, methodName, err))
			}
		}

		for handlerName := range binding.Methods {
			if _, ok := declaredHandlers[handlerName]; !ok {
				errs = append(errs, fmt.Sprintf("extension '%s': Go binding registers handler '%s' which no manifest method declares",
					name, handlerName))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "extensions", len(r.definitions))
	return nil
}

// checkInputCompat verifies that a manifest input type and a Go handler
// parameter type describe the same value shape.
func checkInputCompat(declared cty.Type, goType reflect.Type) error {
	if declared.Equals(cty.DynamicPseudoType) {
		// 'type = any' disables static checking for this input.
		return nil
	}
	if goType == nil {
		return fmt.Errorf("manifest declares a typed input, but the Go handler registered no input type")
	}

	impliedType, err := gocty.ImpliedType(reflect.Zero(goType).Interface())
	if err != nil {
		return fmt.Errorf("could not imply cty type from Go input type %s: %w", goType, err)
	}
	if !declared.Equals(impliedType) {
		return fmt.Errorf("type mismatch: manifest requires '%s' but Go handler takes '%s'",
			declared.FriendlyName(), impliedType.FriendlyName())
	}
	return nil
}
