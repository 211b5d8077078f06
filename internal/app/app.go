package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/extbindgo/internal/config"
	"github.com/vk/extbindgo/internal/ctxlog"
	"github.com/vk/extbindgo/internal/host"
	"github.com/vk/extbindgo/internal/invoker"
	"github.com/vk/extbindgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// binding lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	host     *host.Host
}

// NewApp constructs the application: it builds an isolated logger, loads
// all extension manifests, binds the compiled extensions into a fresh
// registry, validates manifest/Go parity and module identities, and seals
// the registry. Any failure here is a fatal load-time misconfiguration and
// panics; entrypoints recover to report it cleanly.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, extensions ...registry.Extension) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(extensions) == 0 {
		extensions = coreExtensions
	}

	// Gather the embedded manifest of every compiled-in extension, then let
	// the loader merge in any on-disk manifests.
	sources := make(map[string]string, len(extensions))
	for _, ext := range extensions {
		filename, src := ext.Manifest()
		sources[filename] = src
	}

	var paths []string
	if appConfig.ManifestPath != "" {
		paths = append(paths, appConfig.ManifestPath)
	}

	cfgModel, converter, err := loader.Load(ctx, sources, paths...)
	if err != nil {
		panic(fmt.Errorf("failed to load manifests: %w", err))
	}
	logger.Debug("Manifests loaded and translated into unified model.")

	// Bind the compiled Go side. Binding happens exactly once, before the
	// registry is sealed for the lifetime of the process.
	reg := registry.New()
	for _, ext := range extensions {
		ext.Register(reg)
	}
	reg.PopulateDefinitionsFromModel(cfgModel)
	logger.Debug("All extensions bound.", "count", len(extensions))

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A mismatch between manifests and Go code is a programmer error.
		panic(err)
	}
	reg.Seal()
	logger.Debug("Registry validation passed, registry sealed.")

	overrides, err := moduleNameOverrides(appConfig, cfgModel)
	if err != nil {
		panic(err)
	}

	h, err := host.New(ctx, reg, invoker.New(converter), overrides)
	if err != nil {
		// An unusable module identity means the module cannot load at all.
		panic(err)
	}
	logger.Debug("Host initialized.", "modules", h.Modules())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		host:     h,
	}
}

// moduleNameOverrides maps the single configured override onto the declared
// extension it renames. An override with several loaded extensions is
// ambiguous and refused.
func moduleNameOverrides(appConfig *Config, model *config.Model) (map[string]string, error) {
	if appConfig.ModuleName == "" {
		return nil, nil
	}
	if len(model.Extensions) != 1 {
		return nil, fmt.Errorf("module-name override %q is ambiguous: %d extensions are loaded",
			appConfig.ModuleName, len(model.Extensions))
	}
	overrides := make(map[string]string, 1)
	for declared := range model.Extensions {
		overrides[declared] = appConfig.ModuleName
	}
	return overrides, nil
}

// Host returns the application's host. This is primarily for testing.
func (a *App) Host() *host.Host {
	return a.host
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
