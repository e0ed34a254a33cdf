package startupfinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := t.TempDir()

	// Partial config (no plot section)
	content := []byte("rgehandler:\n  startup:\n    search_path: [/opt/musrfit/startup]\n")
	if err := os.WriteFile(filepath.Join(root, ConfigFile), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if len(cfg.Startup.SearchPath) != 1 || cfg.Startup.SearchPath[0] != "/opt/musrfit/startup" {
		t.Fatalf("unexpected search path %v", cfg.Startup.SearchPath)
	}
	if cfg.Startup.DepthProfileFile != "depth_profile_startup.xml" {
		t.Fatalf("expected default depth profile file, got=%s", cfg.Startup.DepthProfileFile)
	}
	if cfg.Plot.WidthCM != 16 || cfg.Plot.HeightCM != 10 {
		t.Fatalf("expected default plot size, got=%vx%v", cfg.Plot.WidthCM, cfg.Plot.HeightCM)
	}
	if cfg.Paths.RunsDir != "runs" {
		t.Fatalf("expected runs dir=runs, got=%s", cfg.Paths.RunsDir)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	root := t.TempDir()
	content := []byte(`rgehandler:
  startup:
    depth_profile: dp.yaml
    mag_proximity: mp.xml
    walk_up: true
  plot:
    width_cm: 20
    height_cm: 12
  paths:
    runs_dir: scans
`)
	if err := os.WriteFile(filepath.Join(root, ConfigFile), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Startup.DepthProfileFile != "dp.yaml" || cfg.Startup.MagProxFile != "mp.xml" || !cfg.Startup.WalkUp {
		t.Fatalf("unexpected startup files %+v", cfg.Startup)
	}
	if cfg.Plot.WidthCM != 20 || cfg.Plot.HeightCM != 12 {
		t.Fatalf("unexpected plot size %+v", cfg.Plot)
	}
	if cfg.Paths.RunsDir != "scans" {
		t.Fatalf("expected runs dir=scans, got=%s", cfg.Paths.RunsDir)
	}
}

func TestLoadConfig_MissingAndInvalid(t *testing.T) {
	root := t.TempDir()
	cfg, err := LoadConfig(root)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
	if cfg.Startup.MagProxFile != "mag_proximity_startup.xml" {
		t.Fatalf("expected defaults on missing file, got %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(root, ConfigFile), []byte("rgehandler: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(root); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got: %v", err)
	}
}
