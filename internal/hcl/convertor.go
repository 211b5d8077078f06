package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/extbindgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL/cty implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new cty converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeArgument converts a host value into the Go parameter a method
// expects. The value must first satisfy the manifest's declared type, then
// the Go parameter's implied type; a failure at either stage is the
// caller's argument-type error and is returned unwrapped into the call.
func (c *Converter) DecodeArgument(ctx context.Context, val cty.Value, declared cty.Type, target any) error {
	logger := ctxlog.FromContext(ctx)

	targetPtr := reflect.ValueOf(target)
	if targetPtr.Kind() != reflect.Ptr || targetPtr.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}

	if val.IsNull() {
		return fmt.Errorf("argument value is null")
	}

	if !declared.Equals(cty.DynamicPseudoType) {
		converted, err := convert.Convert(val, declared)
		if err != nil {
			return fmt.Errorf("cannot convert %s to declared type %s: %w",
				val.Type().FriendlyName(), declared.FriendlyName(), err)
		}
		val = converted
	}

	impliedType, err := gocty.ImpliedType(targetPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.",
			"go_type", targetPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, target)
	}

	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w",
			val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	return gocty.FromCtyValue(converted, target)
}

// EncodeResult converts a native Go return value into its cty equivalent.
func (c *Converter) EncodeResult(v any) (cty.Value, error) {
	if v == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}

	impliedType, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot imply cty type for result %T: %w", v, err)
	}

	out, err := gocty.ToCtyValue(v, impliedType)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot encode result %T: %w", v, err)
	}
	return out, nil
}
