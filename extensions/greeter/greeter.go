// Package greeter is the sample extension shipped with the host: a
// stateless native component exposing two greeting operations.
package greeter

import "fmt"

// Greeter produces greeting text. The zero value is ready to use; no
// initialization is required before calling either method.
type Greeter struct{}

// SimpleGreet returns the plain greeting for name. It is a pure function of
// its argument and never fails.
func (g *Greeter) SimpleGreet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

// ComplexGreet returns the ceremonial greeting variant for name. Its output
// is textually distinct from SimpleGreet for every input.
func (g *Greeter) ComplexGreet(name string) string {
	return fmt.Sprintf("Salutations and warmest regards, %s. Delighted to make your acquaintance.", name)
}
