package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of everything the
// host knows about its extensions before binding takes place.
type Model struct {
	Extensions map[string]*ExtensionDefinition
}

// ExtensionDefinition is the format-agnostic representation of one
// extension manifest: a single loadable module and its declared surface.
type ExtensionDefinition struct {
	// Name is the module name declared in the manifest. It is the default
	// module identity when no override is configured.
	Name        string
	Description string
	Type        *TypeDefinition
	Artifact    *Artifact
}

// TypeDefinition describes one exported native type and its callable methods.
type TypeDefinition struct {
	Name        string
	Description string
	Methods     map[string]*MethodDefinition
}

// MethodDefinition declares a single callable operation: one typed input
// and one typed output, dispatched to a registered Go handler.
type MethodDefinition struct {
	Name        string
	Description string
	Handler     string
	Input       *ParamDefinition
	Output      *ParamDefinition
}

// ParamDefinition declares the name and type of a method input or output.
type ParamDefinition struct {
	Name        string
	Type        cty.Type
	Description string
}

// Artifact carries the packaging surface of a manifest: the source files
// compiled into the module and the destination the built artifact is
// installed to. The host treats this block as declarative metadata for an
// external build orchestrator and never acts on it itself.
type Artifact struct {
	Sources    []string
	InstallDir string
}
