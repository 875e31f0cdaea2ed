package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/schedsync/database"
	schedhttp "github.com/sagarc03/schedsync/http"
	"github.com/sagarc03/schedsync/redis"
	"github.com/sagarc03/schedsync/s3"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "SCHEDSYNC"

// Storage backend names accepted by storage.type.
const (
	StorageMemory     = "memory"
	StorageFilesystem = "filesystem"
	StorageSQLite     = "sqlite"
	StoragePostgres   = "postgres"
	StorageS3         = "s3"
	StorageRedis      = "redis"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for the gateway.
type Config struct {
	Server   ServerConfig         `mapstructure:"server"`
	Storage  StorageConfig        `mapstructure:"storage"`
	Database DatabaseConfig       `mapstructure:"database"`
	S3       s3.Config            `mapstructure:"s3"`
	Redis    redis.Config         `mapstructure:"redis"`
	CORS     schedhttp.CORSConfig `mapstructure:"cors"`
	Metrics  MetricsConfig        `mapstructure:"metrics"`
	Log      LogConfig            `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	MaxUploadSize   int64         `mapstructure:"max_upload_size" validate:"min=0"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// StorageConfig selects the object store backend.
type StorageConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=memory filesystem sqlite postgres s3 redis"`
	// Path is the document directory for the filesystem backend.
	Path string `mapstructure:"path"`
}

// DatabaseConfig holds the SQL settings used by the sqlite and postgres backends.
type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	Table       string `mapstructure:"table" validate:"required"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// ConnectConfig returns the database.Config for storage type t.
func (d DatabaseConfig) ConnectConfig(t string) database.Config {
	return database.Config{Type: t, DSN: d.DSN, Table: d.Table}
}

// MetricsConfig controls the admin listener. An empty Address disables it.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	// Env "prod" or "production" switches to JSON output.
	Env string `mapstructure:"env"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"storage-type": "storage.type",
	"storage-path": "storage.path",
	"db-dsn":       "database.dsn",
	"db-table":     "database.table",
	"port":         "server.port",
	"metrics-addr": "metrics.address",
	"log-level":    "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok {
			return
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance. Every key that
// may come from the environment needs a default so AutomaticEnv can see it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5708)
	v.SetDefault("server.max_upload_size", 10<<20)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("storage.type", StorageFilesystem)
	v.SetDefault("storage.path", "./data")

	v.SetDefault("database.dsn", "schedsync.db")
	v.SetDefault("database.table", database.DefaultTable)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.use_path_style", false)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "schedsync:")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type"})
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 0)

	v.SetDefault("metrics.address", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.env", "dev")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := cfg.validateBackend(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// validateBackend checks the settings the selected storage type depends on.
func (c *Config) validateBackend() error {
	switch c.Storage.Type {
	case StorageFilesystem:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the filesystem backend")
		}
	case StorageSQLite, StoragePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the %s backend", c.Storage.Type)
		}
	case StorageS3:
		if c.S3.Bucket == "" {
			return errors.New("s3.bucket is required for the s3 backend")
		}
	case StorageRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis backend")
		}
	}
	return nil
}
