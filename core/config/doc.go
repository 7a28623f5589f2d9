// Package config provides configuration management for the movies catalog.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults declared in struct tags.
//
// # Configuration Structure
//
//   - Server: HTTP port, admin API key, JWT secret
//   - Database: driver (mysql, sqlite) and connection details
//   - Storage: S3/MinIO credentials, bucket and snapshot prefix
//   - Log: logging level and format
//   - Reconcile: policy for selections naming unknown ids
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
//
// LoadConfig validates the result against the `validate` struct tags and
// reports failures by environment key, e.g. DATABASE_DRIVER.
package config
