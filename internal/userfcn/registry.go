package userfcn

import (
	"fmt"
	"sort"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
)

// Factory builds a fresh plugin instance.
type Factory func() UserFcn

var registry = map[string]Factory{}

// Register makes a plugin available under name. It is meant to be called from
// init and panics on a duplicate name.
func Register(name string, f Factory) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("userfcn: plugin %q registered twice", name))
	}
	registry[name] = f
}

// New returns a new instance of the named plugin.
func New(name string) (UserFcn, error) {
	f, ok := registry[name]
	if !ok {
		return nil, &domain.OpError{
			Op:   "userfcn.new",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("%w: plugin %q", domain.ErrNotFound, name),
		}
	}
	return f(), nil
}

// Names returns the registered plugin names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
