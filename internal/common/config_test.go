package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_DefaultCarrier(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Carrier.Name != "CMAI Specialty" {
		t.Errorf("Carrier.Name default = %q, want %q", cfg.Carrier.Name, "CMAI Specialty")
	}
	if cfg.Carrier.Marker != "CMAI" {
		t.Errorf("Carrier.Marker default = %q, want %q", cfg.Carrier.Marker, "CMAI")
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("STRATA_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_DataPathEnvOverride(t *testing.T) {
	t.Setenv("STRATA_DATA_PATH", "/var/lib/strata")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Storage.Internal.Path != "/var/lib/strata/internal" {
		t.Errorf("Internal.Path = %q", cfg.Storage.Internal.Path)
	}
	if cfg.Storage.Data.Path != "/var/lib/strata/quotes" {
		t.Errorf("Data.Path = %q", cfg.Storage.Data.Path)
	}
}

func TestConfig_CarrierMarkerEnvOverride(t *testing.T) {
	t.Setenv("STRATA_CARRIER_MARKER", "ACME")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Carrier.Marker != "ACME" {
		t.Errorf("Carrier.Marker = %q, want %q", cfg.Carrier.Marker, "ACME")
	}
}

func TestConfig_LoadTOMLMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strata.toml")
	content := `
environment = "production"

[carrier]
name = "Acme Specialty"
marker = "ACME"

[server]
port = 9000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Carrier.Marker != "ACME" {
		t.Errorf("Carrier.Marker = %q, want ACME", cfg.Carrier.Marker)
	}
	// Untouched sections keep their defaults.
	if cfg.Auth.TokenExpiry != "24h" {
		t.Errorf("Auth.TokenExpiry = %q, want 24h", cfg.Auth.TokenExpiry)
	}
}

func TestConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/strata.toml")
	if err != nil {
		t.Fatalf("LoadConfig should skip missing files, got: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected defaults when file missing, got port %d", cfg.Server.Port)
	}
}

func TestAuthConfig_TokenExpiry(t *testing.T) {
	cfg := AuthConfig{TokenExpiry: "2h"}
	if got := cfg.GetTokenExpiry(); got != 2*time.Hour {
		t.Errorf("GetTokenExpiry() = %v, want 2h", got)
	}

	// Unparseable falls back to 24h.
	cfg = AuthConfig{TokenExpiry: "soon"}
	if got := cfg.GetTokenExpiry(); got != 24*time.Hour {
		t.Errorf("GetTokenExpiry() fallback = %v, want 24h", got)
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"prod", true},
		{" Production ", true},
		{"development", false},
		{"", false},
	}
	for _, tt := range tests {
		cfg := &Config{Environment: tt.env}
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}
