package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/extbindgo/internal/config"
	"github.com/vk/extbindgo/internal/ctxlog"
	"github.com/vk/extbindgo/internal/fsutil"
	"github.com/vk/extbindgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every given manifest source and path, translates all extension
// blocks into the format-agnostic model, and returns a matching Converter.
// Inline sources come first so compiled-in extensions are the baseline that
// on-disk manifests extend.
func (l *Loader) Load(ctx context.Context, sources map[string]string, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "source_count", len(sources), "path_count", len(paths))

	model := &config.Model{
		Extensions: make(map[string]*config.ExtensionDefinition),
	}

	parser := hclparse.NewParser()

	// Deterministic source order keeps duplicate-name diagnostics stable.
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		hclFile, diags := parser.ParseHCL([]byte(sources[name]), name)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse manifest %s: %w", name, diags)
		}
		if err := l.mergeFile(ctx, model, hclFile, name); err != nil {
			return nil, nil, err
		}
	}

	files, err := l.findManifestFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse manifest file %s: %w", file, diags)
		}
		if err := l.mergeFile(ctx, model, hclFile, file); err != nil {
			return nil, nil, err
		}
	}

	logger.Debug("Manifest loading complete.", "extensions", len(model.Extensions))
	return model, NewConverter(), nil
}

// mergeFile decodes one parsed manifest file and merges its extension
// blocks into the model.
func (l *Loader) mergeFile(ctx context.Context, model *config.Model, hclFile *hcl.File, name string) error {
	var root schema.ManifestFile
	diags := gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode manifest %s: %w", name, diags)
	}

	for _, ext := range root.Extensions {
		def, err := l.translateExtension(ctx, ext)
		if err != nil {
			return fmt.Errorf("invalid extension %q in %s: %w", ext.Name, name, err)
		}
		if _, exists := model.Extensions[def.Name]; exists {
			return fmt.Errorf("extension %q declared more than once (in %s)", def.Name, name)
		}
		model.Extensions[def.Name] = def
	}
	return nil
}

// findManifestFiles resolves each path to the .hcl files beneath it. A path
// that does not exist is skipped rather than treated as an error.
func (l *Loader) findManifestFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, wasSeen := seen[f]; !wasSeen {
				all = append(all, f)
				seen[f] = struct{}{}
			}
		}
	}
	return all, nil
}
