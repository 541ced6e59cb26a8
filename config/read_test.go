package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("ReadConfig(missing) error = %v", err)
	}

	tn := cfg.Tenancy
	if tn.ProductionDomain != "medibridge24x7.com" || tn.LocalDomain != "localhost" {
		t.Errorf("domains = %q, %q", tn.ProductionDomain, tn.LocalDomain)
	}
	if tn.LandingPrefix != "/clinic" || tn.NonRootPolicy != "passthrough" {
		t.Errorf("landing/policy = %q, %q", tn.LandingPrefix, tn.NonRootPolicy)
	}
	if len(tn.Reserved) != 8 || len(tn.ExcludedPrefixes) != 4 {
		t.Errorf("reserved = %v, excluded = %v", tn.Reserved, tn.ExcludedPrefixes)
	}
	if cfg.Server.Port != 3000 || cfg.Observability.ServiceName != "medibridge" {
		t.Errorf("server/observability defaults not applied: %+v", cfg.Server)
	}
	if cfg.Redis.TenantsKey != "medibridge:tenants" || cfg.Redis.TenantsChannel != "medibridge:tenants:changed" {
		t.Errorf("redis registry names = %q, %q", cfg.Redis.TenantsKey, cfg.Redis.TenantsChannel)
	}
}

func TestReadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  admin_token: s3cret
tenancy:
  non_root_policy: force_rewrite
  registry:
    cgh: city-general-hospital
    demo-clinic: demo-clinic
  reload:
    interval_seconds: 15
`)
	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.AdminToken != "s3cret" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Tenancy.NonRootPolicy != "force_rewrite" || cfg.Tenancy.Reload.IntervalSeconds != 15 {
		t.Errorf("tenancy = %+v", cfg.Tenancy)
	}
	if got := cfg.Tenancy.Registry["cgh"]; got != "city-general-hospital" {
		t.Errorf("registry[cgh] = %q", got)
	}
	// untouched keys keep their defaults
	if cfg.Tenancy.LandingPrefix != "/clinic" {
		t.Errorf("landing_prefix = %q", cfg.Tenancy.LandingPrefix)
	}
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv("MEDIBRIDGE_TENANCY_NON_ROOT_POLICY", "force_rewrite")
	t.Setenv("MEDIBRIDGE_SERVER_ADMIN_TOKEN", "from-env")

	cfg, err := ReadConfig(writeConfig(t, "tenancy:\n  non_root_policy: passthrough\n"))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if cfg.Tenancy.NonRootPolicy != "force_rewrite" {
		t.Errorf("non_root_policy = %q, want env override", cfg.Tenancy.NonRootPolicy)
	}
	if cfg.Server.AdminToken != "from-env" {
		t.Errorf("admin_token = %q, want env override", cfg.Server.AdminToken)
	}
}

func TestReadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad policy", "tenancy:\n  non_root_policy: sometimes\n", "non_root_policy"},
		{"root landing prefix", "tenancy:\n  landing_prefix: /\n", "landing_prefix"},
		{"relative landing prefix", "tenancy:\n  landing_prefix: clinic\n", "landing_prefix"},
		{"port out of range", "server:\n  port: 70000\n", "server.port"},
		{"database reload without host", "tenancy:\n  reload:\n    database: true\n", "database.host"},
		{"redis reload without addr", "tenancy:\n  reload:\n    redis: true\n", "redis.addr"},
		{"nats reload without url", "tenancy:\n  reload:\n    nats: true\n", "nats.url"},
		{"malformed yaml", "tenancy: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("ReadConfig() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ReadConfig() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
