// Package userfcn defines the contract between the fit host and user
// function plugins.
//
// A plugin may depend on an expensive companion object, its global part,
// which is shared by all instances of the plugin in a fit. The host owns a
// GlobalParts collection and hands it to every plugin which asks for one,
// together with the index the plugin was assigned. All calls happen on the
// fit thread.
package userfcn

// UserFcn is implemented by every plugin.
type UserFcn interface {
	// NeedGlobalPart reports whether SetGlobalPart must be called before Eval.
	NeedGlobalPart() bool
	// SetGlobalPart creates the global part at idx, or attaches to the one
	// already stored there.
	SetGlobalPart(parts *GlobalParts, idx int)
	GlobalPartIsValid() bool
	// Eval returns the function value at time t (µs) for the parameter vector.
	Eval(t float64, param []float64) float64
}

// Global is the shared companion object of a plugin.
type Global interface {
	IsValid() bool
}
