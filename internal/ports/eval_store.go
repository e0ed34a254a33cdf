package ports

import "github.com/aPeter1/musrfit-fork-sub004/internal/domain"

// EvalStore persists user function scans and returns an id for them.
type EvalStore interface {
	SaveEval(a domain.EvalArtifact) (string, error)
}
