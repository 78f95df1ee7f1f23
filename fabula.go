package fabula

import (
	"log/slog"

	"github.com/fabulist/fabula/internal/runtime"
	"github.com/fabulist/fabula/internal/script"
	"github.com/fabulist/fabula/pkg/domain"
)

// Version of the library.
const Version = "0.3.0"

// Aliases for the domain types a host touches most, so simple hosts only
// import the root package.
type (
	Document    = domain.Document
	RenderModel = domain.RenderModel
	Snapshot    = domain.Snapshot
)

// Load parses script text into a story document. The document is
// immutable and can back any number of concurrent runtimes.
func Load(text string) (*domain.Document, error) {
	return script.NewParser().Parse(text)
}

// Runtime is one playback session over a loaded document. It wraps the
// internal state machine with the host-facing API: render the current
// branch, select a choice, snapshot and restore.
//
// A Runtime is single-threaded by contract; hosts that share one across
// goroutines own the synchronization.
type Runtime struct {
	inner        *runtime.Runtime
	showDisabled bool
}

// Option configures a Runtime.
type Option func(*Runtime, *[]runtime.Option)

// WithLogger sets a structured logger. Transitions log at Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(_ *Runtime, inner *[]runtime.Option) {
		*inner = append(*inner, runtime.WithLogger(logger))
	}
}

// WithShowDisabled overrides the document's @show-disabled flag for this
// session.
func WithShowDisabled(show bool) Option {
	return func(r *Runtime, _ *[]runtime.Option) {
		r.showDisabled = show
	}
}

// NewRuntime starts a session on the document: initial assignments seed
// the environment and the start branch's actions run once.
func NewRuntime(doc *domain.Document, opts ...Option) (*Runtime, error) {
	r := &Runtime{showDisabled: doc.ShowDisabled}
	var innerOpts []runtime.Option
	for _, opt := range opts {
		opt(r, &innerOpts)
	}

	inner, err := runtime.New(doc, innerOpts...)
	if err != nil {
		return nil, err
	}
	r.inner = inner
	return r, nil
}

// Render returns the interpolated view of the current branch. Choice
// conditions are previewed against a copy of the environment; rendering
// never mutates session state.
func (r *Runtime) Render() *domain.RenderModel {
	return r.inner.Render()
}

// Select commits the choice at index: its condition's side effects apply
// for real, and the session moves to the target branch, running that
// branch's actions. Errors (domain.ErrDisabledChoice,
// domain.ErrIndexOutOfRange, domain.ErrEnded, evaluation failures) leave
// the session untouched.
func (r *Runtime) Select(index int) error {
	return r.inner.Select(index)
}

// Current returns the id of the branch the session is at.
func (r *Runtime) Current() string {
	return r.inner.Current()
}

// Document returns the story being played.
func (r *Runtime) Document() *domain.Document {
	return r.inner.Document()
}

// ShowDisabled reports whether the host should list disabled choices.
func (r *Runtime) ShowDisabled() bool {
	return r.showDisabled
}

// Snapshot captures the session for persistence through a
// ports.SessionStore (or any serialization the host prefers).
func (r *Runtime) Snapshot() *domain.Snapshot {
	return r.inner.Snapshot()
}

// Restore resumes the session at a snapshot taken from the same document.
func (r *Runtime) Restore(snap *domain.Snapshot) error {
	return r.inner.Restore(snap)
}
