package expr

import (
	"fmt"
	"math"
	"strings"
)

// Eval interprets a node against the environment. Assignment nodes mutate
// the environment in place, even when nested inside a larger expression.
//
// String ordering comparisons are lexical (byte-wise); this is the
// documented deterministic tie-break for "<" and friends on strings.
func Eval(node Node, env Env) (Value, error) {
	switch n := node.(type) {
	case *Literal:
		return n.Val, nil
	case *VariableRef:
		return env.Get(n.Name), nil
	case *Grouping:
		return Eval(n.Inner, env)
	case *Unary:
		return evalUnary(n, env)
	case *Binary:
		return evalBinary(n, env)
	case *Assignment:
		return evalAssignment(n, env)
	}
	return Value{}, fmt.Errorf("unsupported expression node %T", node)
}

// EvalCondition reports whether a condition expression is satisfied.
//
// The contract: operands of an "and" chain all evaluate, left to right,
// with no short-circuit, so assignment side effects before a failing test
// still apply. Assignment operands always count as satisfied (their point
// is the side effect). "or" stops at the first truthy operand. Anything
// else is satisfied when its value is truthy.
func EvalCondition(node Node, env Env) (bool, error) {
	switch n := node.(type) {
	case *Grouping:
		return EvalCondition(n.Inner, env)
	case *Assignment:
		if _, err := Eval(n, env); err != nil {
			return false, err
		}
		return true, nil
	case *Binary:
		switch n.Op {
		case "and":
			left, err := EvalCondition(n.Left, env)
			if err != nil {
				return false, err
			}
			right, err := EvalCondition(n.Right, env)
			if err != nil {
				return false, err
			}
			return left && right, nil
		case "or":
			left, err := EvalCondition(n.Left, env)
			if err != nil {
				return false, err
			}
			if left {
				return true, nil
			}
			return EvalCondition(n.Right, env)
		}
	}
	v, err := Eval(node, env)
	if err != nil {
		return false, err
	}
	return v.Truthy(), nil
}

func evalAssignment(n *Assignment, env Env) (Value, error) {
	val, err := Eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	if n.Op != "=" {
		op := strings.TrimSuffix(n.Op, "=")
		val, err = applyBinary(op, env.Get(n.Name), val)
		if err != nil {
			return Value{}, err
		}
	}
	env.Set(n.Name, val)
	return val, nil
}

func evalUnary(n *Unary, env Env) (Value, error) {
	operand, err := Eval(n.Operand, env)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case "not":
		return Bool(!operand.Truthy()), nil
	case "-":
		num, ok := operand.numeric()
		if !ok {
			return Value{}, &EvalError{Op: n.Op, Err: ErrTypeMismatch}
		}
		return Number(-num), nil
	}
	return Value{}, fmt.Errorf("unsupported unary operator %q", n.Op)
}

func evalBinary(n *Binary, env Env) (Value, error) {
	switch n.Op {
	case "and":
		// Both sides evaluate; side effects are never skipped.
		left, err := Eval(n.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := Eval(n.Right, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(left.Truthy() && right.Truthy()), nil
	case "or":
		left, err := Eval(n.Left, env)
		if err != nil {
			return Value{}, err
		}
		if left.Truthy() {
			return Bool(true), nil
		}
		right, err := Eval(n.Right, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(right.Truthy()), nil
	}
	left, err := Eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := Eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	return applyBinary(n.Op, left, right)
}

// applyBinary computes a single arithmetic or comparison operation.
func applyBinary(op string, left, right Value) (Value, error) {
	switch op {
	case "==":
		return Bool(valuesEqual(left, right)), nil
	case "!=":
		return Bool(!valuesEqual(left, right)), nil
	case "<", "<=", ">", ">=":
		return compareOrder(op, left, right)
	case "+":
		if left.Kind == KindString && right.Kind == KindString {
			return String(left.Str + right.Str), nil
		}
	}

	ln, lok := left.numeric()
	rn, rok := right.numeric()
	if !lok || !rok {
		return Value{}, &EvalError{Op: op, Err: ErrTypeMismatch}
	}

	switch op {
	case "+":
		return Number(ln + rn), nil
	case "-":
		return Number(ln - rn), nil
	case "*":
		return Number(ln * rn), nil
	case "/":
		if rn == 0 {
			return Value{}, &EvalError{Op: op, Err: ErrDivisionByZero}
		}
		return Number(ln / rn), nil
	case "//":
		if rn == 0 {
			return Value{}, &EvalError{Op: op, Err: ErrDivisionByZero}
		}
		return Number(math.Floor(ln / rn)), nil
	case "%":
		if rn == 0 {
			return Value{}, &EvalError{Op: op, Err: ErrDivisionByZero}
		}
		// Floored modulo: the result takes the sign of the divisor.
		return Number(ln - math.Floor(ln/rn)*rn), nil
	case "**":
		return Number(math.Pow(ln, rn)), nil
	}
	return Value{}, fmt.Errorf("unsupported binary operator %q", op)
}

func valuesEqual(left, right Value) bool {
	if left.Kind == KindString || right.Kind == KindString {
		return left.Kind == KindString && right.Kind == KindString && left.Str == right.Str
	}
	ln, _ := left.numeric()
	rn, _ := right.numeric()
	return ln == rn
}

func compareOrder(op string, left, right Value) (Value, error) {
	if left.Kind == KindString && right.Kind == KindString {
		switch op {
		case "<":
			return Bool(left.Str < right.Str), nil
		case "<=":
			return Bool(left.Str <= right.Str), nil
		case ">":
			return Bool(left.Str > right.Str), nil
		default:
			return Bool(left.Str >= right.Str), nil
		}
	}
	ln, lok := left.numeric()
	rn, rok := right.numeric()
	if !lok || !rok {
		return Value{}, &EvalError{Op: op, Err: ErrTypeMismatch}
	}
	switch op {
	case "<":
		return Bool(ln < rn), nil
	case "<=":
		return Bool(ln <= rn), nil
	case ">":
		return Bool(ln > rn), nil
	default:
		return Bool(ln >= rn), nil
	}
}
