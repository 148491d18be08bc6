package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/apimanager/logger"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Servers       map[string]string `yaml:"servers" mapstructure:"servers"`
	Reachability  struct {
		Interval     time.Duration `mapstructure:"interval"`
		ProbeAddress string        `mapstructure:"probe_address"`
	} `yaml:"reachability" mapstructure:"reachability"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name 'svc', got %q", cfg.Logging.ServiceName)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected level info, got %q", cfg.Logging.Level)
		}
	})

	t.Run("debug lowers the log level", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected level debug, got %q", cfg.Logging.Level)
		}
	})

	t.Run("explicit level wins over debug", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true, Logging: logger.Config{Level: "warn"}}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "warn" {
			t.Errorf("expected level warn, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		c := ServiceConfig{Name: "svc", Environment: env}
		c.Logging.ApplyDefaults()
		return c
	}
	badLogging := valid("production")
	badLogging.Logging.Level = "loud"

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid development", valid("development"), ""},
		{"valid staging", valid("staging"), ""},
		{"valid production", valid("production"), ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", valid("qa"), "config.environment must be one of"},
		{"invalid logging", badLogging, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: billing-client
environment: staging
servers:
  api: https://api.example.com/v1
  cdn: https://cdn.example.com
reachability:
  interval: 5s
  probe_address: 1.1.1.1:443
`)

	var cfg testConfig
	if err := Load("billing-client", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "billing-client" {
		t.Errorf("expected name 'billing-client', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	wantServers := map[string]string{"api": "https://api.example.com/v1", "cdn": "https://cdn.example.com"}
	if diff := cmp.Diff(wantServers, cfg.Servers); diff != "" {
		t.Errorf("servers mismatch (-want +got):\n%s", diff)
	}
	if cfg.Reachability.Interval != 5*time.Second {
		t.Errorf("expected interval 5s, got %v", cfg.Reachability.Interval)
	}
	if cfg.Reachability.ProbeAddress != "1.1.1.1:443" {
		t.Errorf("expected probe address, got %q", cfg.Reachability.ProbeAddress)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: billing-client
environment: staging
logging:
  level: info
reachability:
  probe_address: 1.1.1.1:443
`)
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv("REACHABILITY_PROBE_ADDRESS", "8.8.8.8:53")

	var cfg testConfig
	if err := Load("billing-client", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Reachability.ProbeAddress != "8.8.8.8:53" {
		t.Errorf("expected env probe address, got %q", cfg.Reachability.ProbeAddress)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected yaml environment kept, got %q", cfg.Environment)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg testConfig
	err := Load("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected Load to succeed with missing file, got %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: [unterminated\n")

	var cfg testConfig
	if err := Load("svc", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadEnvFileError(t *testing.T) {
	fs := &mockFS{
		files:   map[string]bool{"./.env": true},
		loadErr: errors.New("permission denied"),
	}
	var cfg testConfig
	if err := Load("svc", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("env file errors should only warn, got %v", err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != "./.env" {
		t.Errorf("expected ./.env to be loaded, got %v", fs.loaded)
	}
}

type mockFS struct {
	files   map[string]bool
	loadErr error
	loaded  []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return m.loadErr
}

func TestResolverWithMockFS(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]bool
		want  ResolvedFiles
	}{
		{
			name:  "cmd directory first",
			files: map[string]bool{"./cmd/my-svc/config.yml": true, "./config.yml": true},
			want:  ResolvedFiles{ConfigFile: "./cmd/my-svc/config.yml"},
		},
		{
			name:  "named config under config dir",
			files: map[string]bool{"./config/my-svc.yml": true, "./.env.my-svc": true, "./.env": true},
			want:  ResolvedFiles{ConfigFile: "./config/my-svc.yml", EnvFile: "./.env.my-svc"},
		},
		{
			name:  "root fallbacks",
			files: map[string]bool{"./config.yml": true, "../.env": true},
			want:  ResolvedFiles{ConfigFile: "./config.yml", EnvFile: "../.env"},
		},
		{
			name:  "nothing found",
			files: map[string]bool{},
			want:  ResolvedFiles{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := &Resolver{FileSystem: &mockFS{files: tc.files}}
			got := r.ResolveFiles("my-svc", LoaderConfig{})
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ResolveFiles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	r := &Resolver{FileSystem: &mockFS{files: map[string]bool{"./config.yml": true}}}
	got := r.ResolveFiles("svc", LoaderConfig{ConfigFile: "/etc/svc.yml", EnvFile: "/etc/svc.env"})
	if got.ConfigFile != "/etc/svc.yml" || got.EnvFile != "/etc/svc.env" {
		t.Errorf("explicit paths not kept: %+v", got)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"DEBUG", []string{"debug"}},
		{"LOGGING_LEVEL", []string{"logging_level", "logging.level"}},
		{"REACHABILITY_PROBE_ADDRESS", []string{
			"reachability_probe_address",
			"reachability.probe.address",
			"reachability.probe_address",
			"reachability_probe.address",
		}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, envKeyVariants(tt.in)); diff != "" {
			t.Errorf("envKeyVariants(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem != fs {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
