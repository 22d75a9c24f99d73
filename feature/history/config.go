package history

// Config holds configuration for the run history.
type Config struct {
	// Enabled turns on persistence of completed runs and the /history routes.
	Enabled bool `mapstructure:"enabled" default:"false"`
}
