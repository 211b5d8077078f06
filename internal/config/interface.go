package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads manifests from inline sources (keyed by a synthetic
	// filename for diagnostics) and from filesystem paths, translates
	// them into the format-agnostic model, and returns a matching
	// Converter.
	Load(ctx context.Context, sources map[string]string, paths ...string) (*Model, Converter, error)
}

// Converter is the bridge between host-level typed values and the native Go
// values extension methods operate on.
type Converter interface {
	// DecodeArgument converts a host value into the Go parameter a method
	// expects, enforcing the manifest's declared type. A value that cannot
	// convert is the caller's error and is returned as-is.
	DecodeArgument(ctx context.Context, val cty.Value, declared cty.Type, target any) error

	// EncodeResult converts a native Go return value into its cty
	// equivalent for the host.
	EncodeResult(v any) (cty.Value, error)
}
