package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Refresh.TriggerDistance != 60 || cfg.Refresh.ParkedHeight != 80 {
		t.Fatalf("unexpected refresh defaults: %+v", cfg.Refresh)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
ui:
  theme: dark
  default_screen: metrics
refresh:
  trigger_distance: 40
  parked_height: 50
  simulated_latency: 1500ms
profile:
  name: Ada
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.UI.Theme != SchemeDark || cfg.UI.DefaultScreen != "metrics" {
		t.Errorf("ui = %+v", cfg.UI)
	}
	if cfg.Refresh.TriggerDistance != 40 || cfg.Refresh.SimulatedLatency != 1500*time.Millisecond {
		t.Errorf("refresh = %+v", cfg.Refresh)
	}
	// Unset keys keep defaults.
	if cfg.Refresh.RowHeight != 20 || cfg.Profile.StepGoal != 10000 {
		t.Errorf("defaults lost: refresh=%+v profile=%+v", cfg.Refresh, cfg.Profile)
	}
	if cfg.Profile.Name != "Ada" {
		t.Errorf("profile name = %q", cfg.Profile.Name)
	}
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "ui:\n  theme: light\n")
	t.Setenv("FITDECK_UI_THEME", "dark")
	t.Setenv("FITDECK_REFRESH_FAIL_EVERY", "3")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.UI.Theme != SchemeDark {
		t.Errorf("theme = %q, want dark from env", cfg.UI.Theme)
	}
	if cfg.Refresh.FailEvery != 3 {
		t.Errorf("fail_every = %d, want 3", cfg.Refresh.FailEvery)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"theme":  "ui:\n  theme: sepia\n",
		"screen": "ui:\n  default_screen: settings\n",
		"parked": "refresh:\n  trigger_distance: 90\n  parked_height: 80\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.UI.Theme = SchemeLight
	cfg.Refresh.Timeout = 5 * time.Second
	cfg.Store.Path = ""

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "trigger_distance") {
		t.Fatalf("saved config missing snake_case keys:\n%s", data)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.UI.Theme != SchemeLight || loaded.Refresh.Timeout != 5*time.Second {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
