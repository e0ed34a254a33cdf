package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/startupfinder"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn/depthprofile"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn/dummy"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn/magprox"
)

const (
	startupPathKey = "startup_path"
	startupPathEnv = startupfinder.EnvSearchPath
)

// appCtx bundles the configuration shared by the subcommands.
type appCtx struct {
	root   string
	cfg    domain.Config
	finder *startupfinder.Finder
}

// loadApp reads rgehandler.yaml from the working directory, if present, and
// adds the $MUSRFIT_STARTUP_PATH directories to the search path.
func loadApp(v *viper.Viper) (*appCtx, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	cfg, err := startupfinder.LoadConfig(wd)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	search := append([]string{}, cfg.Startup.SearchPath...)
	for _, d := range filepath.SplitList(v.GetString(startupPathKey)) {
		if d != "" {
			search = append(search, d)
		}
	}

	return &appCtx{
		root: wd,
		cfg:  cfg,
		finder: startupfinder.NewFinder(
			startupfinder.WithStartDir(wd),
			startupfinder.WithWalkUp(cfg.Startup.WalkUp),
			startupfinder.WithSearchPath(search...),
		),
	}, nil
}

// newUserFcn builds plugins with the configured startup file lookup.
func (a *appCtx) newUserFcn(name string) (userfcn.UserFcn, error) {
	switch name {
	case dummy.Name:
		return dummy.New(), nil
	case depthprofile.Name:
		return depthprofile.New(
			depthprofile.WithLocator(a.finder),
			depthprofile.WithStartupFile(a.cfg.Startup.DepthProfileFile),
		), nil
	case magprox.Name:
		return magprox.New(
			magprox.WithLocator(a.finder),
			magprox.WithStartupFile(a.cfg.Startup.MagProxFile),
		), nil
	}
	f, err := userfcn.New(name)
	if err != nil {
		return nil, fmt.Errorf("%w (known plugins: %s)", err, strings.Join(userfcn.Names(), ", "))
	}
	return f, nil
}
