// Package registry provides the binding layer between manifests and
// compiled Go extension code.
//
// The Registry stores mappings from externally visible module names to the
// native constructors and method handlers that implement them, alongside
// the parsed, format-agnostic manifest definitions. It is populated exactly
// once during application startup and then sealed; registration is a single
// irreversible transition for the lifetime of the process.
//
// After population the registry is validated to ensure the Go code and the
// public-facing manifests are perfectly in sync, turning a wide class of
// would-be runtime faults into startup errors.
package registry
