package startupfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
)

// EnvSearchPath names the environment variable holding the fallback
// directories (list separated like PATH).
const EnvSearchPath = "MUSRFIT_STARTUP_PATH"

// Finder locates startup files: first in the start directory (optionally
// walking up to the filesystem root), then in each search path directory.
type Finder struct {
	StartDir   string // defaults to "."
	SearchPath []string
	WalkUp     bool
}

type Option func(*Finder)

func WithStartDir(dir string) Option {
	return func(f *Finder) { f.StartDir = dir }
}

func WithSearchPath(dirs ...string) Option {
	return func(f *Finder) { f.SearchPath = append(f.SearchPath, dirs...) }
}

func WithWalkUp(enabled bool) Option {
	return func(f *Finder) { f.WalkUp = enabled }
}

func NewFinder(opts ...Option) *Finder {
	f := &Finder{StartDir: "."}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SearchPathFromEnv splits $MUSRFIT_STARTUP_PATH.
func SearchPathFromEnv() []string {
	var out []string
	for _, d := range filepath.SplitList(os.Getenv(EnvSearchPath)) {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

var _ ports.StartupLocator = (*Finder)(nil)

// Locate returns the path of the first existing file called name. A name
// with a directory part is only checked as given.
func (f *Finder) Locate(name string) (string, error) {
	if name == "" {
		return "", &domain.OpError{
			Op:   "startupfinder.locate",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startup file name is empty"),
		}
	}

	if filepath.Base(name) != name {
		if isFile(name) {
			return name, nil
		}
		return "", notFound(name)
	}

	for _, dir := range f.candidates() {
		p := filepath.Join(dir, name)
		if isFile(p) {
			return p, nil
		}
	}
	return "", notFound(name)
}

func (f *Finder) candidates() []string {
	start := f.StartDir
	if start == "" {
		start = "."
	}
	dirs := []string{start}

	if f.WalkUp {
		if abs, err := filepath.Abs(start); err == nil {
			cur := filepath.Clean(abs)
			for {
				parent := filepath.Dir(cur)
				if parent == cur {
					// Reached filesystem root.
					break
				}
				dirs = append(dirs, parent)
				cur = parent
			}
		}
	}

	return append(dirs, f.SearchPath...)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func notFound(name string) error {
	return &domain.OpError{
		Op:   "startupfinder.locate",
		Kind: domain.KindNotFound,
		Path: name,
		Err:  fmt.Errorf("%w: startup file %s", domain.ErrNotFound, name),
	}
}
