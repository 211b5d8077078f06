// Package schema defines the HCL block structures for extension manifest
// files. These structs mirror the manifest syntax exactly; translation into
// the format-agnostic config model happens in the hcl package.
package schema

import "github.com/hashicorp/hcl/v2"

// ParamBlock declares the name and type of a method input or output.
type ParamBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

// MethodBlock represents a `method` block: one externally callable
// operation, mapped to a registered Go handler by name.
type MethodBlock struct {
	Name        string      `hcl:"name,label"`
	Description string      `hcl:"description,optional"`
	Handler     string      `hcl:"handler"`
	Input       *ParamBlock `hcl:"input,block"`
	Output      *ParamBlock `hcl:"output,block"`
}

// TypeBlock represents a `type` block: one exported native type and its
// callable methods.
type TypeBlock struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Methods     []*MethodBlock `hcl:"method,block"`
}

// ArtifactBlock represents the `artifact` block: the packaging surface of
// the manifest, consumed by an external build orchestrator.
type ArtifactBlock struct {
	Sources    []string `hcl:"sources"`
	InstallDir string   `hcl:"install_dir,optional"`
}

// ExtensionManifest represents a top-level `extension` block.
type ExtensionManifest struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Type        *TypeBlock     `hcl:"type,block"`
	Artifact    *ArtifactBlock `hcl:"artifact,block"`
}

// ManifestFile represents the top-level structure of a manifest file.
type ManifestFile struct {
	Extensions []*ExtensionManifest `hcl:"extension,block"`
	Body       hcl.Body             `hcl:",remain"`
}
