package reconcile

import "time"

// Config holds the reconciliation settings.
type Config struct {
	// Owner is the folder name of the person whose collection is the reference.
	Owner string `mapstructure:"owner" default:"My" validate:"required"`
	// Root is the directory holding the day folders when Source is "fs".
	Root string `mapstructure:"root" default:"./photo_example"`
	// Source selects the photo provider (fs, bucket).
	Source string `mapstructure:"source" default:"fs" validate:"oneof=fs bucket"`
	// Prefix is the object key prefix holding the day folders when Source is "bucket".
	Prefix string `mapstructure:"prefix" default:""`
	// Workers bounds concurrent day reconciliation. Zero means one per CPU.
	Workers int `mapstructure:"workers" default:"0" validate:"gte=0"`
	// CacheTTLSeconds is how long the HTTP API reuses a result.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60" validate:"gte=0"`
}

const (
	SourceFS     = "fs"
	SourceBucket = "bucket"
)

// IsValidSource checks if the configured source is supported.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceFS, SourceBucket:
		return true
	default:
		return false
	}
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
