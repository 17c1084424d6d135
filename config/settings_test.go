package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/renswick/atlas/geocode"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Provider != "openai" {
		t.Errorf("provider = %q, want openai", settings.Provider)
	}
	if settings.MaxIterations != 5 {
		t.Errorf("max_iterations = %d, want 5", settings.MaxIterations)
	}
	if settings.Listen != ":8000" {
		t.Errorf("listen = %q, want :8000", settings.Listen)
	}
	if settings.Map.Zoom != 2 {
		t.Errorf("map zoom = %d, want 2", settings.Map.Zoom)
	}
	if settings.Center() != [2]float64{0, 0} {
		t.Errorf("center = %v, want origin", settings.Center())
	}
	if settings.Geocode.BaseURL != geocode.DefaultBaseURL {
		t.Errorf("geocode base URL = %q, want default", settings.Geocode.BaseURL)
	}
	if settings.Geocode.Timeout != 10*time.Second {
		t.Errorf("geocode timeout = %v, want 10s", settings.Geocode.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ATLAS_PROVIDER", "deepseek")
	t.Setenv("ATLAS_MAX_ITERATIONS", "3")
	t.Setenv("ATLAS_MAP_ZOOM", "7")

	settings, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Provider != "deepseek" {
		t.Errorf("provider = %q, want deepseek", settings.Provider)
	}
	if settings.MaxIterations != 3 {
		t.Errorf("max_iterations = %d, want 3", settings.MaxIterations)
	}
	if settings.Map.Zoom != 7 {
		t.Errorf("map zoom = %d, want 7", settings.Map.Zoom)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.yaml")
	content := []byte("provider: anthropic\nlisten: \":9000\"\nmap:\n  center_longitude: 2.3522\n  center_latitude: 48.8566\n  zoom: 11\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Provider != "anthropic" {
		t.Errorf("provider = %q, want anthropic", settings.Provider)
	}
	if settings.Listen != ":9000" {
		t.Errorf("listen = %q, want :9000", settings.Listen)
	}
	if settings.Center() != [2]float64{2.3522, 48.8566} {
		t.Errorf("center = %v, want paris", settings.Center())
	}
	if settings.Map.Zoom != 11 {
		t.Errorf("map zoom = %d, want 11", settings.Map.Zoom)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for an explicit config path that does not exist")
	}
}
