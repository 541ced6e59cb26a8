package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix    = "MEDIBRIDGE"
	ConfigFormat = "yaml"
)

// ReadConfig loads the YAML file at path, lets MEDIBRIDGE_* env vars override
// it and validates the result. A missing file is not an error; the defaults
// and the environment are used instead.
func ReadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(ConfigFormat)

	// e.g. MEDIBRIDGE_TENANCY_NON_ROOT_POLICY overrides tenancy.non_root_policy
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.rate_limit.requests_per_minute", 60)
	// keys without a default are invisible to env overrides on Unmarshal
	v.SetDefault("server.admin_token", "")

	v.SetDefault("tenancy.production_domain", "medibridge24x7.com")
	v.SetDefault("tenancy.local_domain", "localhost")
	v.SetDefault("tenancy.landing_prefix", "/clinic")
	v.SetDefault("tenancy.non_root_policy", "passthrough")
	v.SetDefault("tenancy.reserved", []string{"www", "api", "admin", "app", "dashboard", "mail", "static", "medibridge24x7"})
	v.SetDefault("tenancy.excluded_prefixes", []string{"/_next", "/api", "/clinic", "/favicon.ico"})
	v.SetDefault("tenancy.reload.interval_seconds", 60)
	v.SetDefault("tenancy.reload.debounce_millis", 500)

	v.SetDefault("tenancy.reload.file", "")
	v.SetDefault("tenancy.reload.database", false)
	v.SetDefault("tenancy.reload.redis", false)
	v.SetDefault("tenancy.reload.nats", false)

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tenants_key", "medibridge:tenants")
	v.SetDefault("redis.tenants_channel", "medibridge:tenants:changed")
	v.SetDefault("nats.url", "")

	v.SetDefault("observability.service_name", "medibridge")
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output.stdout", true)
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	t := c.Tenancy
	if strings.TrimSpace(t.ProductionDomain) == "" {
		errs = append(errs, errors.New("tenancy.production_domain is required"))
	}
	if strings.TrimSpace(t.LocalDomain) == "" {
		errs = append(errs, errors.New("tenancy.local_domain is required"))
	}
	if !strings.HasPrefix(t.LandingPrefix, "/") || strings.Trim(t.LandingPrefix, "/") == "" {
		errs = append(errs, fmt.Errorf("tenancy.landing_prefix %q must be an absolute non-root path", t.LandingPrefix))
	}
	switch strings.ToLower(strings.TrimSpace(t.NonRootPolicy)) {
	case "", "passthrough", "force_rewrite":
	default:
		errs = append(errs, fmt.Errorf("tenancy.non_root_policy %q must be passthrough or force_rewrite", t.NonRootPolicy))
	}
	if t.Reload.Database && c.Database.Host == "" {
		errs = append(errs, errors.New("tenancy.reload.database requires database.host"))
	}
	if t.Reload.Redis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("tenancy.reload.redis requires redis.addr"))
	}
	if t.Reload.Nats && c.Nats.URL == "" {
		errs = append(errs, errors.New("tenancy.reload.nats requires nats.url"))
	}

	return errors.Join(errs...)
}
