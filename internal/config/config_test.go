package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, DefaultDBHost, cfg.Database.Host)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
	assert.Equal(t, DefaultDBName, cfg.Database.DBName)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, DefaultRedisKeyPrefix, cfg.Redis.KeyPrefix)
	assert.Equal(t, DefaultMinIOEndpoint, cfg.MinIO.Endpoint)
	assert.Equal(t, DefaultMinIOBucket, cfg.MinIO.Bucket)
	assert.Equal(t, DefaultExtractionModel, cfg.Extraction.Model)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
}

func TestApplyDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Database.Host = "db.internal"
	cfg.Log.Level = "debug"

	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyDefaults_NilConfigIsSafe(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "invalid server port",
			mutate:  func(cfg *Config) { cfg.Server.Port = -1 },
			wantErr: "server.port",
		},
		{
			name:    "invalid server mode",
			mutate:  func(cfg *Config) { cfg.Server.Mode = "verbose" },
			wantErr: "server.mode",
		},
		{
			name:    "missing database user",
			mutate:  func(cfg *Config) { cfg.Database.User = "" },
			wantErr: "database.user",
		},
		{
			name:    "missing database name",
			mutate:  func(cfg *Config) { cfg.Database.DBName = "" },
			wantErr: "database.db_name",
		},
		{
			name:    "negative redis db",
			mutate:  func(cfg *Config) { cfg.Redis.DB = -2 },
			wantErr: "redis.db",
		},
		{
			name:    "invalid log format",
			mutate:  func(cfg *Config) { cfg.Log.Format = "xml" },
			wantErr: "log.format",
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.Log.Level = "loud" },
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
server:
  port: 9090
  mode: debug
database:
  host: pg.local
  user: caseworker
  db_name: cases
log:
  level: warn
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "pg.local", cfg.Database.Host)
	assert.Equal(t, "caseworker", cfg.Database.User)
	assert.Equal(t, "cases", cfg.Database.DBName)
	assert.Equal(t, "warn", cfg.Log.Level)
	// Unset keys fall back to defaults.
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("JUSTICE_SERVER_PORT", "7070")
	t.Setenv("JUSTICE_DATABASE_USER", "envuser")
	t.Setenv("JUSTICE_DATABASE_DB_NAME", "envdb")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "envuser", cfg.Database.User)
	assert.Equal(t, "envdb", cfg.Database.DBName)
}

func TestLoadFromEnv_ValidationFailureSurfaces(t *testing.T) {
	t.Setenv("JUSTICE_DATABASE_USER", "envuser")
	t.Setenv("JUSTICE_DATABASE_DB_NAME", "envdb")
	t.Setenv("JUSTICE_LOG_FORMAT", "xml")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestDSN(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Database.Password = "secret"

	dsn := cfg.Database.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=justice")
	assert.Contains(t, dsn, "sslmode=disable")
}
