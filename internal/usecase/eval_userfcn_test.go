package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expGlobal struct {
	valid bool
	calls int
}

func (g *expGlobal) IsValid() bool { return g.valid }

type expFcn struct {
	globalValid bool
	global      *expGlobal
	ok          bool
}

func (f *expFcn) NeedGlobalPart() bool { return true }

func (f *expFcn) SetGlobalPart(parts *userfcn.GlobalParts, idx int) {
	g, err := userfcn.Attach(parts, idx, func() *expGlobal { return &expGlobal{valid: f.globalValid} })
	f.ok = err == nil
	f.global = g
}

func (f *expFcn) GlobalPartIsValid() bool { return f.ok && f.global.IsValid() }

func (f *expFcn) Eval(t float64, param []float64) float64 {
	f.global.calls++
	return math.Exp(-param[0] * t)
}

func factoryFor(f userfcn.UserFcn) func(string) (userfcn.UserFcn, error) {
	return func(name string) (userfcn.UserFcn, error) {
		if name != "exp" {
			return userfcn.New(name)
		}
		return f, nil
	}
}

func TestEvalUserFcn_Scan(t *testing.T) {
	f := &expFcn{globalValid: true}
	uc := NewEvalUserFcn(factoryFor(f))

	art, id, err := uc.Execute(context.Background(), EvalRequest{
		Plugin: "exp", Params: []float64{1}, TStart: 0, TEnd: 1, TStep: 0.1,
	})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, "exp", art.Plugin)
	pts := art.Points
	require.Len(t, pts, 11)
	assert.InDelta(t, 1.0, pts[10].T, 1e-12)
	assert.InDelta(t, math.Exp(-1), pts[10].Value, 1e-12)
	assert.Equal(t, 11, f.global.calls)
	assert.Equal(t, 1, uc.GlobalParts().Len())
}

func TestEvalUserFcn_InvalidGlobal(t *testing.T) {
	uc := NewEvalUserFcn(factoryFor(&expFcn{globalValid: false}))
	_, _, err := uc.Execute(context.Background(), EvalRequest{Plugin: "exp", Params: []float64{1}, TEnd: 1, TStep: 0.1})
	assert.True(t, domain.IsKind(err, domain.KindExecution), "got %v", err)
}

func TestEvalUserFcn_BadRequest(t *testing.T) {
	uc := NewEvalUserFcn(nil)
	cases := []EvalRequest{
		{Plugin: "", TEnd: 1, TStep: 0.1},
		{Plugin: "dummy", TEnd: 1, TStep: 0},
		{Plugin: "dummy", TStart: 2, TEnd: 1, TStep: 0.1},
		{Plugin: "dummy", TEnd: math.NaN(), TStep: 0.1},
		{Plugin: "dummy", TStart: math.Inf(-1), TEnd: 1, TStep: 0.1},
		{Plugin: "dummy", TEnd: 1, TStep: math.Inf(1)},
		{Plugin: "dummy", TEnd: 1e300, TStep: 1e-300},
		{Plugin: "dummy", TEnd: MaxEvalPoints, TStep: 0.5},
	}
	for _, req := range cases {
		_, _, err := uc.Execute(context.Background(), req)
		assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), "req %+v: got %v", req, err)
	}

	_, _, err := uc.Execute(context.Background(), EvalRequest{Plugin: "no-such-plugin", TEnd: 1, TStep: 0.1})
	assert.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)
}

func TestEvalUserFcn_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewEvalUserFcn(factoryFor(&expFcn{globalValid: true}))
	art, _, err := uc.Execute(ctx, EvalRequest{Plugin: "exp", Params: []float64{1}, TEnd: 1, TStep: 0.1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, art.Points)
}

type memStore struct {
	saved []domain.EvalArtifact
	err   error
}

func (m *memStore) SaveEval(a domain.EvalArtifact) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, a)
	return fmt.Sprintf("scan-%d", len(m.saved)), nil
}

func TestEvalUserFcn_SavesToStore(t *testing.T) {
	store := &memStore{}
	uc := NewEvalUserFcn(factoryFor(&expFcn{globalValid: true}), WithEvalStore(store))

	art, id, err := uc.Execute(context.Background(), EvalRequest{Plugin: "exp", Params: []float64{2}, TEnd: 1, TStep: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "scan-1", id)
	require.Len(t, store.saved, 1)
	assert.Equal(t, art.Points, store.saved[0].Points)
	assert.Equal(t, []float64{2}, store.saved[0].Params)
	assert.False(t, store.saved[0].EndedAt.Before(store.saved[0].StartedAt))
}

func TestEvalUserFcn_StoreError(t *testing.T) {
	store := &memStore{err: &domain.OpError{Op: "test.save", Kind: domain.KindExecution, Err: domain.ErrExecution}}
	uc := NewEvalUserFcn(factoryFor(&expFcn{globalValid: true}), WithEvalStore(store))

	art, id, err := uc.Execute(context.Background(), EvalRequest{Plugin: "exp", Params: []float64{1}, TEnd: 1, TStep: 0.5})
	assert.True(t, domain.IsKind(err, domain.KindExecution), "got %v", err)
	assert.Empty(t, id)
	assert.Len(t, art.Points, 3)
}

func TestEvalUserFcn_LargestGrid(t *testing.T) {
	err := validateEval(EvalRequest{Plugin: "dummy", TEnd: MaxEvalPoints - 1, TStep: 1})
	assert.NoError(t, err)
}
