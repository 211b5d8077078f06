// Package config defines the format-agnostic model of an extension
// manifest, along with the interfaces (Loader, Converter) that bridge a
// concrete manifest syntax to the rest of the host.
//
// The config.Model is the single source of truth for the registry and the
// host: it describes the externally visible surface of every extension
// before any Go handler is bound to it. Concrete implementations of the
// interfaces, such as for HCL, live in separate packages.
package config
