package domain

import (
	"github.com/fabulist/fabula/pkg/expr"
)

// Snapshot captures the full resumable state of one playback session:
// the current branch and the variable environment. It is what session
// stores persist; the document itself is never serialized.
type Snapshot struct {
	Branch string   `json:"branch"`
	Vars   expr.Env `json:"vars"`
}

// NewSnapshot builds a snapshot with an independent copy of the
// environment.
func NewSnapshot(branch string, vars expr.Env) *Snapshot {
	return &Snapshot{Branch: branch, Vars: vars.Clone()}
}

// Clone returns a deep copy so stores and callers cannot alias each
// other's environment maps.
func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{Branch: s.Branch, Vars: s.Vars.Clone()}
}
