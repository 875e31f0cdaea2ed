// Package config provides configuration loading and validation for the
// schedsync gateway.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (SCHEDSYNC_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with SCHEDSYNC_ prefix:
//   - server.port → SCHEDSYNC_SERVER_PORT
//   - storage.type → SCHEDSYNC_STORAGE_TYPE
//   - s3.bucket → SCHEDSYNC_S3_BUCKET
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port, max_upload_size and timeouts
//   - Storage: backend type and filesystem path
//   - Database: DSN, table and auto_migrate for sqlite/postgres
//   - S3: bucket, prefix, region, endpoint and static credentials
//   - Redis: address, credentials, db and key prefix
//   - CORS: cross-origin resource sharing settings
//   - Metrics: admin listener address
//   - Log: level and environment
//
// # Validation
//
// Configuration is validated using struct tags, then the settings required by
// the selected storage backend are checked:
//   - Port must be 1-65535
//   - Storage type must be memory, filesystem, sqlite, postgres, s3, or redis
//   - Log level must be debug, info, warn, or error
//   - s3 requires s3.bucket; sqlite and postgres require database.dsn
package config
