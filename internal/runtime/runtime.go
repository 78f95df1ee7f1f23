// Package runtime drives playback of a parsed story document: it owns the
// live variable environment and the current branch, and exposes the
// render/select operations hosts build their loop on.
package runtime

import (
	"fmt"
	"log/slog"

	"github.com/fabulist/fabula/internal/logging"
	"github.com/fabulist/fabula/pkg/domain"
	"github.com/fabulist/fabula/pkg/expr"
)

// Runtime is a single playback session. It is not safe for concurrent
// use; hosts own synchronization.
type Runtime struct {
	doc     *domain.Document
	env     expr.Env
	current string
	logger  *slog.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger injects a structured logger. Transitions log at Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New starts a session on the document: it seeds the environment from the
// initial assignments and enters the start branch, running its actions.
func New(doc *domain.Document, opts ...Option) (*Runtime, error) {
	r := &Runtime{
		doc:    doc,
		env:    make(expr.Env),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, a := range doc.Init {
		if _, err := expr.Eval(a.Node(), r.env); err != nil {
			return nil, fmt.Errorf("initial assignment %q: %w", a.Var, err)
		}
	}

	start, ok := doc.Branch(doc.StartBranch)
	if !ok {
		return nil, &domain.UnknownBranchError{ID: doc.StartBranch}
	}
	if err := runActions(start, r.env); err != nil {
		return nil, err
	}
	r.current = start.ID

	r.logger.Debug("session started", "branch", r.current, "title", doc.Title)
	return r, nil
}

// Current returns the id of the branch the session is at.
func (r *Runtime) Current() string { return r.current }

// Env returns a copy of the live environment.
func (r *Runtime) Env() expr.Env { return r.env.Clone() }

// Document returns the story being played.
func (r *Runtime) Document() *domain.Document { return r.doc }

// Snapshot captures the session state for persistence.
func (r *Runtime) Snapshot() *domain.Snapshot {
	return domain.NewSnapshot(r.current, r.env)
}

// Restore resumes the session at a previously captured snapshot. Entry
// actions are not re-run; the snapshot already reflects them.
func (r *Runtime) Restore(snap *domain.Snapshot) error {
	if _, ok := r.doc.Branch(snap.Branch); !ok {
		return &domain.UnknownBranchError{ID: snap.Branch}
	}
	r.current = snap.Branch
	r.env = snap.Vars.Clone()
	return nil
}

// runActions executes every state action of the branch, in body order,
// against env. This happens exactly once per branch entry, before the
// first render of the branch.
func runActions(b *domain.Branch, env expr.Env) error {
	for _, a := range b.Actions() {
		if _, err := expr.Eval(a.Node(), env); err != nil {
			return fmt.Errorf("action at line %d: %w", a.Line, err)
		}
	}
	return nil
}

func (r *Runtime) branch() *domain.Branch {
	b, ok := r.doc.Branch(r.current)
	if !ok {
		// Unreachable: current is only ever set to a validated id.
		panic(fmt.Sprintf("runtime at unknown branch %q", r.current))
	}
	return b
}
