package magprox

import (
	"math"
	"testing"

	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/startupfinder"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFinder() *startupfinder.Finder {
	return startupfinder.NewFinder(startupfinder.WithStartDir("testdata"))
}

func attached(t *testing.T) *UserFcn {
	t.Helper()
	f := New(WithLocator(testFinder()))
	f.SetGlobalPart(userfcn.NewGlobalParts(), 0)
	require.True(t, f.GlobalPartIsValid())
	return f
}

// param: E (keV), zStart, zEnd, B0, B1, zeta, phase
func params(b0, b1, zeta, phase float64) []float64 {
	return []float64{2.0, 0.5, 10, b0, b1, zeta, phase}
}

func TestGlobal_Loads(t *testing.T) {
	g := NewGlobal(WithLocator(testFinder()))
	require.True(t, g.IsValid())
	assert.Equal(t, 0, g.EnergyIndex(2.0))
	assert.Equal(t, -1, g.EnergyIndex(3.0))
	assert.Equal(t, 4.0, g.ZMax(0))
	assert.InDelta(t, 0.5, g.StoppingDensity(0, 2), 1e-12)
}

func TestGlobal_Invalid(t *testing.T) {
	assert.False(t, NewGlobal(WithLocator(testFinder()), WithStartupFile("nope.xml")).IsValid())
	assert.False(t, NewGlobal(WithLocator(testFinder()), WithStartupFile("missing_rge.xml")).IsValid())
}

func TestGlobal_Field(t *testing.T) {
	g := NewGlobal(WithLocator(testFinder()))
	g.CalculateField([]float64{2, 0, 10, 5, 100, 2, 0})

	assert.InDelta(t, 105.0, g.MagneticField(10), 1e-9)
	assert.InDelta(t, 100*math.Exp(-5)+5, g.MagneticField(0), 1e-9)
	assert.InDelta(t, 100*math.Exp(-2.4975)+5, g.MagneticField(5.005), 1e-3)
	assert.Equal(t, 0.0, g.MagneticField(-0.1))
	assert.Equal(t, 0.0, g.MagneticField(10.1))

	g.CalculateField([]float64{2, 0, 10, 5, 100, 0, 0})
	assert.Equal(t, 0.0, g.MagneticField(5))
}

func TestEval_Limits(t *testing.T) {
	f := attached(t)
	assert.Equal(t, 1.0, f.Eval(0, params(0, 0, 1, 0)))
	assert.Equal(t, 1.0, f.Eval(-1, params(0, 0, 1, 0)))
	assert.Equal(t, 1.0, f.Eval(0.5, params(100, 100, 0, 0)))
	assert.Equal(t, 1.0, f.Eval(0.5, params(100, 100, -2, 0)))

	unknown := params(0, 0, 1, 0)
	unknown[0] = 7.0
	assert.Equal(t, 0.0, f.Eval(0.5, unknown))

	assert.True(t, math.IsNaN(f.Eval(0.5, []float64{2.0})))
}

func TestEval_ZeroFieldIntegratesProfile(t *testing.T) {
	f := attached(t)
	// 0.1 nm sum of the piecewise linear n(z) between 1 and 4 nm: the
	// trapezoid value 11/12 less half a step of n(1 nm) = 1/6, since n
	// vanishes at the first tabulated depth
	assert.InDelta(t, 11.0/12.0-0.05/6.0, f.Eval(1.0, params(0, 0, 1, 0)), 1e-6)
	assert.InDelta(t, 0.0, f.Eval(1.0, params(0, 0, 1, 90)), 1e-6)
}

func TestEval_PhaseDoesNotRecalculateField(t *testing.T) {
	f := attached(t)
	f.Eval(0.1, params(10, 50, 2, 0))
	f.Eval(0.2, params(10, 50, 2, 0))
	f.Eval(0.2, params(10, 50, 2, 30))
	assert.Equal(t, 1, f.global.Recomputes())

	f.Eval(0.2, params(20, 50, 2, 30))
	assert.Equal(t, 2, f.global.Recomputes())
}

func TestEval_FieldDephases(t *testing.T) {
	f := attached(t)
	p0 := f.Eval(0.01, params(1000, 0, 1, 0))
	p1 := f.Eval(5.0, params(1000, 0, 1, 0))
	assert.Less(t, math.Abs(p1), p0)
}
