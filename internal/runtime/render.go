package runtime

import (
	"github.com/fabulist/fabula/internal/interp"
	"github.com/fabulist/fabula/pkg/domain"
	"github.com/fabulist/fabula/pkg/expr"
)

// Render builds the host-facing view of the current branch. All text is
// interpolated against the live environment; choice conditions are
// previewed on a disposable copy so their side effects never leak.
func (r *Runtime) Render() *domain.RenderModel {
	b := r.branch()

	model := &domain.RenderModel{
		Story: interp.Interpolate(r.doc.Title, r.env),
		Title: interp.Interpolate(b.Title, r.env),
	}
	for _, p := range b.Paragraphs() {
		model.Paragraphs = append(model.Paragraphs, interp.Interpolate(p, r.env))
	}

	anyEnabled := false
	for _, c := range b.Choices() {
		enabled := r.previewCondition(c)
		if enabled {
			anyEnabled = true
		}
		model.Choices = append(model.Choices, domain.RenderChoice{
			Text:    interp.Interpolate(c.Text, r.env),
			Enabled: enabled,
		})
	}

	if !anyEnabled {
		model.Ended = true
		model.EndingText = interp.Interpolate(r.doc.EndingText, r.env)
	}
	return model
}

// previewCondition evaluates a choice condition against a clone of the
// environment. A condition that fails to evaluate reads as disabled.
func (r *Runtime) previewCondition(c domain.Choice) bool {
	if c.Condition == nil {
		return true
	}
	ok, err := expr.EvalCondition(c.Condition, r.env.Clone())
	if err != nil {
		r.logger.Debug("condition preview failed", "branch", r.current, "line", c.Line, "err", err)
		return false
	}
	return ok
}
