package runtime

import (
	"fmt"

	"github.com/fabulist/fabula/pkg/domain"
	"github.com/fabulist/fabula/pkg/expr"
)

// Select commits the choice at index in the current branch: the condition
// runs for real (side effects included), the runtime moves to the target
// branch and the target's actions run.
//
// The whole call is atomic. Every mutation lands in a clone of the
// environment first and is committed only once the condition is satisfied,
// the target exists and its actions ran cleanly; any failure leaves the
// session exactly as it was.
func (r *Runtime) Select(index int) error {
	choices := r.branch().Choices()
	if len(choices) == 0 {
		return domain.ErrEnded
	}
	if index < 0 || index >= len(choices) {
		return fmt.Errorf("%w: %d (branch %q has %d)", domain.ErrIndexOutOfRange, index, r.current, len(choices))
	}
	c := choices[index]

	next := r.env.Clone()
	if c.Condition != nil {
		ok, err := expr.EvalCondition(c.Condition, next)
		if err != nil {
			return fmt.Errorf("condition at line %d: %w", c.Line, err)
		}
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrDisabledChoice, c.Text)
		}
	}

	target, ok := r.doc.Branch(c.Target)
	if !ok {
		return &domain.UnknownBranchError{ID: c.Target}
	}
	if err := runActions(target, next); err != nil {
		return err
	}

	r.env = next
	r.current = target.ID
	r.logger.Debug("choice selected", "index", index, "target", target.ID)
	return nil
}
