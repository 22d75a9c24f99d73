// Package config provides configuration management for photo-sync.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// partial configuration, and every key can be overridden by an environment
// variable whose name is the upper-cased key path (RECONCILE_OWNER,
// STORAGE_BUCKET, LOG_LEVEL).
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP report API settings (port, API key)
//   - Database: MySQL or SQLite connection details for the run history
//   - Storage: S3/MinIO credentials and bucket settings for the bucket source
//   - Log: Logging level and format
//   - Reconcile: owner label, photo source and worker bound
//   - History: whether completed runs are persisted
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.Owner)
package config
