package app

import (
	"github.com/vk/extbindgo/extensions/greeter"
	"github.com/vk/extbindgo/internal/registry"
)

// coreExtensions is the definitive list of extensions compiled into the
// binary.
var coreExtensions = []registry.Extension{
	&greeter.Extension{},
}
