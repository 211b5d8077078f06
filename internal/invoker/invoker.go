// Package invoker performs the dynamic dispatch at the extension boundary:
// it converts a host value into the Go parameter a registered handler
// expects, calls the handler through reflection, and converts the native
// result back into a host value.
package invoker

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/extbindgo/internal/config"
	"github.com/vk/extbindgo/internal/ctxlog"
	"github.com/vk/extbindgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Invoker dispatches host calls to registered extension handlers.
type Invoker struct {
	converter config.Converter
}

// New creates an Invoker that binds arguments through the given converter.
func New(converter config.Converter) *Invoker {
	return &Invoker{converter: converter}
}

// Invoke calls one registered method on a native receiver. An argument that
// cannot convert to the declared input type fails the call and the error is
// surfaced directly to the caller; no recovery is attempted.
func (inv *Invoker) Invoke(
	ctx context.Context,
	def *config.MethodDefinition,
	handler *registry.RegisteredMethod,
	receiver any,
	arg cty.Value,
) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Dispatching method call.", "method", def.Name, "handler", def.Handler)

	fn := reflect.ValueOf(handler.Fn)
	inputType := fn.Type().In(1)

	inputPtr := reflect.New(inputType)
	if err := inv.converter.DecodeArgument(ctx, arg, def.Input.Type, inputPtr.Interface()); err != nil {
		return cty.NilVal, fmt.Errorf("argument %q for method %q: %w", def.Input.Name, def.Name, err)
	}

	results := fn.Call([]reflect.Value{reflect.ValueOf(receiver), inputPtr.Elem()})

	if len(results) == 2 {
		if errVal := results[1].Interface(); errVal != nil {
			return cty.NilVal, fmt.Errorf("method %q failed: %w", def.Name, errVal.(error))
		}
	}

	out, err := inv.converter.EncodeResult(results[0].Interface())
	if err != nil {
		return cty.NilVal, fmt.Errorf("result of method %q: %w", def.Name, err)
	}

	logger.Debug("Method call complete.", "method", def.Name)
	return out, nil
}
