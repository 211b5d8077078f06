package app

import (
	"context"
	"fmt"

	"github.com/vk/extbindgo/internal/ctxlog"
	"github.com/vk/extbindgo/internal/host"
	"github.com/zclconf/go-cty/cty"
)

// Run executes the configured mode against the loaded module: either print
// its stub listing, or construct an instance and call every exported method
// with the configured greet name.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	mod, err := a.targetModule(appConfig)
	if err != nil {
		return err
	}

	if appConfig.Describe {
		fmt.Fprint(a.outW, mod.Stub())
		return nil
	}

	typeName := mod.Types()[0]
	instance, err := mod.NewInstance(typeName)
	if err != nil {
		return err
	}
	a.logger.Debug("Instance constructed.", "module", mod.Name(), "type", typeName)

	methods, err := mod.Methods(typeName)
	if err != nil {
		return err
	}
	for _, method := range methods {
		out, err := instance.Call(ctx, method, cty.StringVal(appConfig.GreetName))
		if err != nil {
			return fmt.Errorf("call to %s.%s failed: %w", typeName, method, err)
		}
		if out.Type() == cty.String {
			fmt.Fprintf(a.outW, "%s = %q\n", method, out.AsString())
		} else {
			fmt.Fprintf(a.outW, "%s = %s\n", method, out.GoString())
		}
	}
	return nil
}

// targetModule resolves which loaded module a run addresses: the configured
// name if given, otherwise the sole loaded module.
func (a *App) targetModule(appConfig *Config) (*host.Module, error) {
	if appConfig.ModuleName != "" {
		return a.host.Open(appConfig.ModuleName)
	}
	names := a.host.Modules()
	if len(names) != 1 {
		return nil, fmt.Errorf("no module name given and %d modules are loaded", len(names))
	}
	return a.host.Open(names[0])
}
