package domain

import "time"

// EvalPoint is one value of a user function time scan.
type EvalPoint struct {
	T     float64 `json:"t"`
	Value float64 `json:"value"`
}

// EvalArtifact is a stored time scan of a user function.
type EvalArtifact struct {
	Plugin    string      `json:"plugin"`
	Params    []float64   `json:"params"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   time.Time   `json:"ended_at"`
	Points    []EvalPoint `json:"points"`
}
