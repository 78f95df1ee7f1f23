package expr

// Node is a parsed expression tree node. The variant set is closed
// (Literal, VariableRef, Unary, Binary, Assignment, Grouping); the
// evaluator dispatches over it with an exhaustive type switch.
type Node interface {
	exprNode()
}

// Literal is a constant number, string or boolean.
type Literal struct {
	Val Value
}

// VariableRef reads a variable from the environment.
type VariableRef struct {
	Name string
}

// Unary applies "-" (numeric negation) or "not" to its operand.
type Unary struct {
	Op      string
	Operand Node
}

// Binary applies an arithmetic, comparison or logical operator. Logical
// operators are normalized to "and"/"or" regardless of their spelling in
// the source ("&", "&&", "|", "||" or the words).
type Binary struct {
	Op    string
	Left  Node
	Right Node
}

// Assignment binds the evaluated right side to a variable. Op is "=" or one
// of the compound forms (+=, -=, *=, /=, //=, %=, **=). Evaluating an
// Assignment mutates the environment and yields the assigned value.
type Assignment struct {
	Name  string
	Op    string
	Right Node
}

// Grouping is a parenthesized sub-expression.
type Grouping struct {
	Inner Node
}

func (*Literal) exprNode()     {}
func (*VariableRef) exprNode() {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Assignment) exprNode()  {}
func (*Grouping) exprNode()    {}
