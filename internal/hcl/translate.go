package hcl

import (
	"context"
	"fmt"

	"github.com/vk/extbindgo/internal/config"
	"github.com/vk/extbindgo/internal/schema"
)

// translateExtension converts the HCL-specific manifest schema into the
// agnostic model.
func (l *Loader) translateExtension(ctx context.Context, s *schema.ExtensionManifest) (*config.ExtensionDefinition, error) {
	def := &config.ExtensionDefinition{
		Name:        s.Name,
		Description: s.Description,
	}

	if s.Type == nil {
		return nil, fmt.Errorf("manifest declares no exported type")
	}
	typeDef, err := l.translateType(ctx, s.Type)
	if err != nil {
		return nil, err
	}
	def.Type = typeDef

	if s.Artifact != nil {
		def.Artifact = &config.Artifact{
			Sources:    s.Artifact.Sources,
			InstallDir: s.Artifact.InstallDir,
		}
	}

	return def, nil
}

func (l *Loader) translateType(ctx context.Context, s *schema.TypeBlock) (*config.TypeDefinition, error) {
	typeDef := &config.TypeDefinition{
		Name:        s.Name,
		Description: s.Description,
		Methods:     make(map[string]*config.MethodDefinition),
	}

	for _, m := range s.Methods {
		if _, exists := typeDef.Methods[m.Name]; exists {
			return nil, fmt.Errorf("method %q declared more than once on type %q", m.Name, s.Name)
		}
		methodDef, err := l.translateMethod(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("method %q: %w", m.Name, err)
		}
		typeDef.Methods[m.Name] = methodDef
	}

	return typeDef, nil
}

func (l *Loader) translateMethod(ctx context.Context, s *schema.MethodBlock) (*config.MethodDefinition, error) {
	if s.Handler == "" {
		return nil, fmt.Errorf("missing handler name")
	}

	def := &config.MethodDefinition{
		Name:        s.Name,
		Description: s.Description,
		Handler:     s.Handler,
	}

	var err error
	if def.Input, err = l.translateParam(ctx, s.Input, "input"); err != nil {
		return nil, err
	}
	if def.Output, err = l.translateParam(ctx, s.Output, "output"); err != nil {
		return nil, err
	}
	return def, nil
}

func (l *Loader) translateParam(ctx context.Context, s *schema.ParamBlock, kind string) (*config.ParamDefinition, error) {
	if s == nil {
		return nil, fmt.Errorf("missing %s block", kind)
	}
	ctyType, err := typeExprToCtyType(ctx, s.Type)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, s.Name, err)
	}
	return &config.ParamDefinition{
		Name:        s.Name,
		Type:        ctyType,
		Description: s.Description,
	}, nil
}
