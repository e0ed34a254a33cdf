package domain

// Config holds the tool-wide defaults, overridable via flags and environment.
type Config struct {
	Startup StartupConfig
	Plot    PlotConfig
	Paths   PathsConfig
}

type PathsConfig struct {
	// RunsDir receives saved eval scans.
	RunsDir string
}

type StartupConfig struct {
	// SearchPath lists the directories searched for a startup file after the
	// current directory.
	SearchPath []string

	DepthProfileFile string
	MagProxFile      string

	// WalkUp also searches the parents of the current directory.
	WalkUp bool
}

type PlotConfig struct {
	WidthCM  float64
	HeightCM float64
}

// DefaultConfig provides the defaults used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Startup: StartupConfig{
			DepthProfileFile: "depth_profile_startup.xml",
			MagProxFile:      "mag_proximity_startup.xml",
		},
		Plot: PlotConfig{
			WidthCM:  16,
			HeightCM: 10,
		},
		Paths: PathsConfig{
			RunsDir: "runs",
		},
	}
}
