package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/schedsync/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Load with no config files should use defaults
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5708, cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadSize)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "filesystem", cfg.Storage.Type)
	assert.Equal(t, "./data", cfg.Storage.Path)
	assert.Equal(t, "schedsync.db", cfg.Database.DSN)
	assert.Equal(t, "schedsync_documents", cfg.Database.Table)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "auto", cfg.S3.Region)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "schedsync:", cfg.Redis.Prefix)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Empty(t, cfg.Metrics.Address)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
server:
  port: 8080
  max_upload_size: 2048
  write_timeout: 5s
storage:
  type: s3
s3:
  bucket: scheduler
  prefix: users/alice/
  region: eu-west-1
  endpoint: http://localhost:9000
  use_path_style: true
metrics:
  address: ":9090"
log:
  level: debug
  env: production
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(2048), cfg.Server.MaxUploadSize)
	assert.Equal(t, 5*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "s3", cfg.Storage.Type)
	assert.Equal(t, "scheduler", cfg.S3.Bucket)
	assert.Equal(t, "users/alice/", cfg.S3.Prefix)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UsePathStyle)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "production", cfg.Log.Env)
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	basePath := writeConfig(t, "base.yaml", `
server:
  port: 5708
storage:
  type: sqlite
database:
  dsn: base.db
  table: base_documents
log:
  level: info
`)
	overridePath := writeConfig(t, "override.yaml", `
server:
  port: 9000
database:
  dsn: override.db
`)

	// Load with merge (later files override earlier)
	cfg, err := config.Load([]string{basePath, overridePath}, nil)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "override.db", cfg.Database.DSN)

	// Values from base
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "base_documents", cfg.Database.Table)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load([]string{filepath.Join(t.TempDir(), "absent.yaml")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5708, cfg.Server.Port)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "invalid port",
			content: `
server:
  port: 70000
`,
			wantErr: "Port",
		},
		{
			name: "unknown storage type",
			content: `
storage:
  type: dropbox
`,
			wantErr: "Type",
		},
		{
			name: "invalid log level",
			content: `
log:
  level: verbose
`,
			wantErr: "Level",
		},
		{
			name: "s3 without bucket",
			content: `
storage:
  type: s3
`,
			wantErr: "s3.bucket is required",
		},
		{
			name: "postgres without dsn",
			content: `
storage:
  type: postgres
database:
  dsn: ""
`,
			wantErr: "database.dsn is required for the postgres backend",
		},
		{
			name: "redis without addr",
			content: `
storage:
  type: redis
redis:
  addr: ""
`,
			wantErr: "redis.addr is required",
		},
		{
			name: "filesystem without path",
			content: `
storage:
  type: filesystem
  path: ""
`,
			wantErr: "storage.path is required",
		},
		{
			name: "negative redis db",
			content: `
redis:
  db: -1
`,
			wantErr: "DB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.yaml", tt.content)

			_, err := config.Load([]string{path}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MemoryNeedsNothingElse(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
storage:
  type: memory
  path: ""
`)

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Type)
}

func TestLoad_CORS(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
cors:
  allowed_origins:
    - https://scheduler.example.com
  allowed_headers:
    - Content-Type
    - X-Request-ID
  allow_credentials: true
  max_age: 600
`)

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://scheduler.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"Content-Type", "X-Request-ID"}, cfg.CORS.AllowedHeaders)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 600, cfg.CORS.MaxAge)
}

func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("SCHEDSYNC_SERVER_PORT", "9090")
	t.Setenv("SCHEDSYNC_STORAGE_TYPE", "redis")
	t.Setenv("SCHEDSYNC_REDIS_ADDR", "cache:6379")
	t.Setenv("SCHEDSYNC_LOG_LEVEL", "warn")

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  port: 8080
`)
	t.Setenv("SCHEDSYNC_SERVER_PORT", "7070")

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 5708, "")
	flags.String("storage-type", "", "")
	flags.String("storage-path", "", "")
	flags.String("db-dsn", "", "")
	flags.String("db-table", "", "")
	flags.String("metrics-addr", "", "")
	flags.String("log-level", "", "")
	flags.Bool("unmapped", false, "")
	return flags
}

func TestLoad_Flags(t *testing.T) {
	t.Setenv("SCHEDSYNC_SERVER_PORT", "9090")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{
		"--port", "6000",
		"--storage-type", "sqlite",
		"--db-dsn", "flags.db",
		"--metrics-addr", ":9100",
		"--unmapped",
	}))

	cfg, err := config.Load(nil, flags)
	require.NoError(t, err)

	// flags win over env
	assert.Equal(t, 6000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "flags.db", cfg.Database.DSN)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
}

func TestLoad_UnchangedFlagsIgnored(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
storage:
  path: /srv/scheduler
`)

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load([]string{path}, flags)
	require.NoError(t, err)

	assert.Equal(t, "/srv/scheduler", cfg.Storage.Path)
	assert.Equal(t, 5708, cfg.Server.Port)
}

func TestDatabaseConfig_ConnectConfig(t *testing.T) {
	d := config.DatabaseConfig{DSN: "postgres://db/sched", Table: "docs"}

	got := d.ConnectConfig(config.StoragePostgres)
	assert.Equal(t, "postgres", got.Type)
	assert.Equal(t, "postgres://db/sched", got.DSN)
	assert.Equal(t, "docs", got.Table)
}

func TestContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		cfg := &config.Config{}
		got, err := config.FromContext(config.WithContext(context.Background(), cfg))
		require.NoError(t, err)
		assert.Same(t, cfg, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := config.FromContext(context.Background())
		assert.Error(t, err)
	})
}
