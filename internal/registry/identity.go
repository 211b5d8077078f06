package registry

import (
	"fmt"
	"regexp"
)

// identityPattern matches the module names the host runtime can address: a
// leading letter or underscore followed by letters, digits, or underscores.
var identityPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentity reports whether name is a usable module identity. A
// malformed identity is a load-time configuration error, never a runtime
// one, so callers are expected to fail fatally on it.
func ValidateIdentity(name string) error {
	if name == "" {
		return fmt.Errorf("module name must not be empty")
	}
	if !identityPattern.MatchString(name) {
		return fmt.Errorf("module name %q is not a valid identifier", name)
	}
	return nil
}
