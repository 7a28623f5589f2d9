package reconcile

// Config holds configuration for link reconciliation.
type Config struct {
	// StrictReferences rejects selections naming ids that do not exist.
	StrictReferences bool `mapstructure:"strict_references" default:"false"`
}

// Options converts the configuration to reconcile options.
func (c Config) Options() Options {
	return Options{StrictReferences: c.StrictReferences}
}
