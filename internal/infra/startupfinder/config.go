// Package startupfinder locates startup files and the optional rgehandler.yaml
// tool configuration.
package startupfinder

import (
	"os"
	"path/filepath"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the tool configuration file name.
const ConfigFile = "rgehandler.yaml"

// LoadConfig loads rgehandler.yaml from dir and applies defaults. If the file
// does not exist the defaults are returned together with a not_found error.
func LoadConfig(dir string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(dir, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "startupfinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "startupfinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if len(y.Rge.Startup.SearchPath) > 0 {
		cfg.Startup.SearchPath = y.Rge.Startup.SearchPath
	}
	if y.Rge.Startup.DepthProfile != "" {
		cfg.Startup.DepthProfileFile = y.Rge.Startup.DepthProfile
	}
	if y.Rge.Startup.MagProximity != "" {
		cfg.Startup.MagProxFile = y.Rge.Startup.MagProximity
	}
	cfg.Startup.WalkUp = y.Rge.Startup.WalkUp
	if y.Rge.Plot.WidthCM > 0 {
		cfg.Plot.WidthCM = y.Rge.Plot.WidthCM
	}
	if y.Rge.Plot.HeightCM > 0 {
		cfg.Plot.HeightCM = y.Rge.Plot.HeightCM
	}
	if y.Rge.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Rge.Paths.RunsDir
	}

	return cfg, nil
}

type yamlConfig struct {
	Rge struct {
		Startup struct {
			SearchPath   []string `yaml:"search_path"`
			DepthProfile string   `yaml:"depth_profile"`
			MagProximity string   `yaml:"mag_proximity"`
			WalkUp       bool     `yaml:"walk_up"`
		} `yaml:"startup"`

		Plot struct {
			WidthCM  float64 `yaml:"width_cm"`
			HeightCM float64 `yaml:"height_cm"`
		} `yaml:"plot"`

		Paths struct {
			RunsDir string `yaml:"runs_dir"`
		} `yaml:"paths"`
	} `yaml:"rgehandler"`
}
