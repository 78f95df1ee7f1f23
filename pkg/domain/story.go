package domain

import (
	"github.com/fabulist/fabula/pkg/expr"
)

// Defaults applied by the parser when the script omits the directive.
const (
	DefaultTitle      = "Untitled"
	DefaultEndingText = "The End"
)

// Document is a fully parsed story. It is immutable after parsing; all
// mutable playback state lives in the runtime's environment.
type Document struct {
	Title        string `json:"title" yaml:"title"`
	StartBranch  string `json:"start" yaml:"start"`
	EndingText   string `json:"ending" yaml:"ending"`
	ShowDisabled bool   `json:"showDisabled" yaml:"showDisabled"`

	// Init holds the initial variable assignments, in file order. Each may
	// reference variables defined by earlier entries.
	Init []Action `json:"-" yaml:"-"`

	// Chapters preserves declaration order; Branches indexes every branch
	// in the document by id.
	Chapters []*Chapter         `json:"-" yaml:"-"`
	Branches map[string]*Branch `json:"-" yaml:"-"`
}

// Branch returns the branch with the given id.
func (d *Document) Branch(id string) (*Branch, bool) {
	b, ok := d.Branches[id]
	return b, ok
}

// Chapter is a named group of branches.
type Chapter struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Branches []*Branch `json:"-" yaml:"-"`
	Line     int       `json:"-" yaml:"-"`
}

// Branch is one narrative unit. Body preserves the declaration order of
// paragraphs, actions and choices.
type Branch struct {
	ID      string     `json:"id" yaml:"id"`
	Title   string     `json:"title" yaml:"title"`
	Chapter string     `json:"chapter" yaml:"chapter"`
	Body    []BodyItem `json:"-" yaml:"-"`
	Line    int        `json:"-" yaml:"-"`
}

// Paragraphs returns the branch's paragraph texts in order.
func (b *Branch) Paragraphs() []string {
	var out []string
	for _, item := range b.Body {
		if p, ok := item.(Paragraph); ok {
			out = append(out, p.Text)
		}
	}
	return out
}

// Actions returns the branch's state actions in order.
func (b *Branch) Actions() []Action {
	var out []Action
	for _, item := range b.Body {
		if a, ok := item.(Action); ok {
			out = append(out, a)
		}
	}
	return out
}

// Choices returns the branch's choices in declaration order.
func (b *Branch) Choices() []Choice {
	var out []Choice
	for _, item := range b.Body {
		if c, ok := item.(Choice); ok {
			out = append(out, c)
		}
	}
	return out
}

// BodyItem is one entry of a branch body: Paragraph, Action or Choice.
type BodyItem interface {
	bodyItem()
}

// Paragraph is a block of narrative text. Consecutive script lines join
// with a newline; blank lines separate paragraphs.
type Paragraph struct {
	Text string
}

// Action mutates one variable. Op is "=" or a compound operator
// (+=, -=, *=, /=, //=, %=, **=); Value is the parsed right-hand side and
// ValueText its source form, kept for presentation and export.
type Action struct {
	Var       string
	Op        string
	Value     expr.Node
	ValueText string
	Line      int
}

// Node returns the action as an evaluable assignment expression.
func (a Action) Node() expr.Node {
	return &expr.Assignment{Name: a.Var, Op: a.Op, Right: a.Value}
}

// Choice is a selectable transition to another branch. Condition is nil
// when the choice is unconditional; ConditionText keeps the source form
// for presentation and export.
type Choice struct {
	Text          string
	Condition     expr.Node
	ConditionText string
	Target        string
	Line          int
}

func (Paragraph) bodyItem() {}
func (Action) bodyItem()    {}
func (Choice) bodyItem()    {}
