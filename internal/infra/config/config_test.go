package config

import (
	"os"
	"testing"
)

// chdir mirrors t.Chdir (Go 1.24+), which is unavailable on this toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestParseAspect(t *testing.T) {
	w, h, err := ParseAspect("3:1")
	if err != nil {
		t.Fatalf("ParseAspect failed: %v", err)
	}
	if w != 3 || h != 1 {
		t.Fatalf("expected 3:1, got %g:%g", w, h)
	}

	w, h, err = ParseAspect(" 16 : 9 ")
	if err != nil {
		t.Fatalf("ParseAspect with spaces failed: %v", err)
	}
	if w != 16 || h != 9 {
		t.Fatalf("expected 16:9, got %g:%g", w, h)
	}

	if _, _, err := ParseAspect("3"); err == nil {
		t.Fatalf("expected error for missing separator")
	}
	if _, _, err := ParseAspect("a:b"); err == nil {
		t.Fatalf("expected error for non-numeric terms")
	}
	if _, _, err := ParseAspect("0:1"); err == nil {
		t.Fatalf("expected error for zero term")
	}
	if _, _, err := ParseAspect("-3:1"); err == nil {
		t.Fatalf("expected error for negative term")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config.yaml or .env around

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Chart.Width != 1200 || cfg.Chart.Height != 800 {
		t.Fatalf("unexpected default canvas: %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.GitHub.Days != 30 {
		t.Fatalf("unexpected default days: %d", cfg.GitHub.Days)
	}
	if cfg.GitHub.MaxRetries != 3 {
		t.Fatalf("unexpected default max retries: %d", cfg.GitHub.MaxRetries)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("CHART_WIDTH", "900")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.GitHub.Token != "ghp_test" {
		t.Fatalf("expected token from env, got %q", cfg.GitHub.Token)
	}
	if cfg.Chart.Width != 900 {
		t.Fatalf("expected width 900 from env, got %d", cfg.Chart.Width)
	}
}
