package greeter

import (
	_ "embed"
	"reflect"

	"github.com/vk/extbindgo/internal/registry"
)

//go:embed manifest.hcl
var manifestSrc string

// Extension implements registry.Extension for this package.
type Extension struct{}

// Manifest returns the embedded manifest source.
func (e *Extension) Manifest() (string, string) {
	return "greeter/manifest.hcl", manifestSrc
}

// Register binds the Greeter type and its method handlers with the host
// registry under the extension's declared name.
func (e *Extension) Register(r *registry.Registry) {
	r.Bind("greeter", &registry.RegisteredExtension{
		TypeName:    "Greeter",
		NewInstance: func() any { return new(Greeter) },
		Methods: map[string]*registry.RegisteredMethod{
			"SimpleGreet": {
				Fn:        (*Greeter).SimpleGreet,
				InputType: reflect.TypeOf(""),
			},
			"ComplexGreet": {
				Fn:        (*Greeter).ComplexGreet,
				InputType: reflect.TypeOf(""),
			},
		},
	})
}
