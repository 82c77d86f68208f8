package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "JUSTICE"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from the given YAML file, overlays JUSTICE_*
// environment variables and returns the validated result.  An empty path
// skips the file entirely and uses environment plus defaults.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds configuration from environment variables and defaults
// only, without touching the filesystem.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	// AutomaticEnv alone does not surface env vars to Unmarshal for keys
	// that never appeared in a config file, so bind the known keys up front.
	for _, key := range configKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load that panics on failure.  Intended for main() wiring.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

func configKeys() []string {
	return []string{
		"server.port",
		"server.mode",
		"server.read_timeout",
		"server.write_timeout",
		"server.max_body_size",
		"server.shutdown_timeout",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.db_name",
		"database.ssl_mode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.migration_path",
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.pool_size",
		"redis.dial_timeout",
		"redis.read_timeout",
		"redis.write_timeout",
		"redis.default_ttl",
		"redis.key_prefix",
		"minio.endpoint",
		"minio.access_key",
		"minio.secret_key",
		"minio.bucket",
		"minio.use_ssl",
		"minio.presign_expiry",
		"extraction.base_url",
		"extraction.api_key",
		"extraction.model",
		"extraction.request_timeout",
		"extraction.max_input_chars",
		"log.level",
		"log.format",
		"log.output",
		"metrics.enabled",
		"metrics.namespace",
	}
}
