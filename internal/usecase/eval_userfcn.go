package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn"
)

// EvalRequest describes a time scan of a user function, the way a fit
// evaluates it for one parameter set.
type EvalRequest struct {
	Plugin string
	Params []float64
	TStart float64 // µs
	TEnd   float64 // µs
	TStep  float64 // µs
}

// EvalUserFcn plays the role of the fit host: it owns the global parts and
// drives a plugin through the user function contract.
type EvalUserFcn struct {
	factory func(name string) (userfcn.UserFcn, error)
	parts   *userfcn.GlobalParts
	store   ports.EvalStore
	now     func() time.Time
}

type EvalOption func(*EvalUserFcn)

// WithEvalStore saves every completed scan to store.
func WithEvalStore(store ports.EvalStore) EvalOption {
	return func(uc *EvalUserFcn) { uc.store = store }
}

func NewEvalUserFcn(factory func(name string) (userfcn.UserFcn, error), opts ...EvalOption) *EvalUserFcn {
	if factory == nil {
		factory = userfcn.New
	}
	uc := &EvalUserFcn{factory: factory, parts: userfcn.NewGlobalParts(), now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GlobalParts exposes the host's global part collection.
func (uc *EvalUserFcn) GlobalParts() *userfcn.GlobalParts { return uc.parts }

// Execute scans the plugin over the requested time grid. The returned id is
// empty unless a store is configured.
func (uc *EvalUserFcn) Execute(ctx context.Context, req EvalRequest) (domain.EvalArtifact, string, error) {
	art := domain.EvalArtifact{Plugin: req.Plugin, Params: req.Params, StartedAt: uc.now()}

	if err := validateEval(req); err != nil {
		return art, "", &domain.OpError{Op: "usecase.eval_userfcn", Kind: domain.KindInvalidConfig, Err: err}
	}

	fcn, err := uc.factory(req.Plugin)
	if err != nil {
		return art, "", err
	}

	if fcn.NeedGlobalPart() {
		fcn.SetGlobalPart(uc.parts, 0)
		if !fcn.GlobalPartIsValid() {
			return art, "", &domain.OpError{
				Op:   "usecase.eval_userfcn",
				Kind: domain.KindExecution,
				Err:  fmt.Errorf("%w: global part of %q is invalid", domain.ErrExecution, req.Plugin),
			}
		}
	}

	n := int((req.TEnd-req.TStart)/req.TStep+1e-9) + 1
	art.Points = make([]domain.EvalPoint, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return art, "", err
		}
		t := req.TStart + float64(i)*req.TStep
		art.Points = append(art.Points, domain.EvalPoint{T: t, Value: fcn.Eval(t, req.Params)})
	}
	art.EndedAt = uc.now()

	if uc.store == nil {
		return art, "", nil
	}
	id, err := uc.store.SaveEval(art)
	if err != nil {
		return art, "", err
	}
	return art, id, nil
}

// MaxEvalPoints bounds the size of a time grid.
const MaxEvalPoints = 10_000_000

func validateEval(req EvalRequest) error {
	var errs []error
	if req.Plugin == "" {
		errs = append(errs, errors.New("plugin name is empty"))
	}
	finite := true
	for _, v := range []struct {
		name string
		val  float64
	}{{"t-start", req.TStart}, {"t-end", req.TEnd}, {"t-step", req.TStep}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			errs = append(errs, fmt.Errorf("%s %g is not finite", v.name, v.val))
			finite = false
		}
	}
	if finite {
		switch {
		case req.TStep <= 0:
			errs = append(errs, fmt.Errorf("time step %g is not positive", req.TStep))
		case req.TEnd < req.TStart:
			errs = append(errs, fmt.Errorf("time range [%g, %g] is empty", req.TStart, req.TEnd))
		default:
			// compared as float, the point count may not fit an int
			if n := (req.TEnd-req.TStart)/req.TStep + 1; !(n <= MaxEvalPoints) {
				errs = append(errs, fmt.Errorf("time grid of %g points exceeds %d", n, MaxEvalPoints))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
