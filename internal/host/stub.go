package host

import (
	"fmt"
	"strings"
)

// Stub renders the module's exported surface as a declaration listing, the
// shape a stub generator would emit for the built artifact.
func (m *Module) Stub() string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", m.name)
	if m.def.Description != "" {
		fmt.Fprintf(&b, "# %s\n", m.def.Description)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "type %s:\n", m.def.Type.Name)
	methods, _ := m.Methods(m.def.Type.Name)
	for _, name := range methods {
		def := m.def.Type.Methods[name]
		fmt.Fprintf(&b, "    %s(%s: %s) -> %s\n",
			name,
			def.Input.Name, def.Input.Type.FriendlyName(),
			def.Output.Type.FriendlyName(),
		)
	}
	return b.String()
}
