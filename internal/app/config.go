package app

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath optionally points at a file or directory of additional
	// .hcl manifests to load alongside the compiled-in extensions.
	ManifestPath string

	// ModuleName overrides the externally visible name of the loaded
	// module. Empty means the extension's declared name is used.
	ModuleName string

	// GreetName is the argument passed to the greeting calls in run mode.
	GreetName string

	// Describe switches run mode to printing the module's stub listing.
	Describe bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GreetName == "" {
		cfg.GreetName = "World"
	}
	return &cfg, nil
}
