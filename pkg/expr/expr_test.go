package expr

import (
	"errors"
	"testing"
)

func evalSrc(t *testing.T, src string, env Env) Value {
	t.Helper()
	node, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	v, err := Eval(node, env)
	if err != nil {
		t.Fatalf("Eval(%q) failed: %v", src, err)
	}
	return v
}

func TestLex(t *testing.T) {
	t.Run("greedy multi-char operators", func(t *testing.T) {
		toks, err := Lex("a **= 2 // 3 >= 1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"a", "**=", "2", "//", "3", ">=", "1", ""}
		if len(toks) != len(want) {
			t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
		}
		for i, w := range want {
			if toks[i].Text != w {
				t.Errorf("token %d: expected %q, got %q", i, w, toks[i].Text)
			}
		}
	})

	t.Run("word operators and booleans", func(t *testing.T) {
		toks, err := Lex("not done and True")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toks[0].Kind != OP || toks[0].Text != "not" {
			t.Errorf("expected OP 'not', got %v %q", toks[0].Kind, toks[0].Text)
		}
		if toks[1].Kind != IDENT {
			t.Errorf("expected IDENT, got %v", toks[1].Kind)
		}
		if toks[3].Kind != BOOLEAN || toks[3].Text != "true" {
			t.Errorf("expected BOOLEAN 'true', got %v %q", toks[3].Kind, toks[3].Text)
		}
	})

	t.Run("quoted strings with escapes", func(t *testing.T) {
		toks, err := Lex(`name == "the \"end\""`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toks[2].Kind != STRING || toks[2].Text != `the "end"` {
			t.Errorf("unexpected string token: %q", toks[2].Text)
		}
	})

	t.Run("unrecognized character carries offset", func(t *testing.T) {
		_, err := Lex("coins >= 10 ?")
		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Fatalf("expected LexError, got %v", err)
		}
		if lexErr.Offset != 12 {
			t.Errorf("expected offset 12, got %d", lexErr.Offset)
		}
	})
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unmatched parenthesis", "(1 + 2"},
		{"assignment to non-identifier", "1 + 2 = 3"},
		{"dangling operator", "coins >="},
		{"empty input", ""},
		{"chained comparison", "1 < 2 < 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError for %q, got %v", tc.src, err)
			}
			if parseErr.Expr != tc.src {
				t.Errorf("ParseError should carry the source, got %q", parseErr.Expr)
			}
		})
	}
}

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"2 ** 10", 1024},
		{"-7 // 2", -4},
		{"-7 % 2", 1},
		{"7 % -2", -1},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"2 ** 3 ** 2", 512},   // right associative
		{"-2 ** 2", 4},         // unary minus binds tighter
		{"2 * 3 ** 2", 18},     // power binds tighter than multiply
		{"10 / 4", 2.5},
		{"true + true", 2},     // booleans coerce to 1
		{"missing + 1", 1},     // undefined reads as 0
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			v := evalSrc(t, tc.src, Env{})
			if v.Kind != KindNumber || v.Num != tc.want {
				t.Errorf("%s: expected %v, got %s", tc.src, tc.want, v)
			}
		})
	}
}

func TestEvalStrings(t *testing.T) {
	env := Env{"name": String("Ada")}

	v := evalSrc(t, `name + " Lovelace"`, env)
	if v.Str != "Ada Lovelace" {
		t.Errorf("expected concatenation, got %q", v.Str)
	}

	v = evalSrc(t, `name == "Ada"`, env)
	if !v.Bool {
		t.Error("string equality should be lexical")
	}

	v = evalSrc(t, `"abc" < "abd"`, env)
	if !v.Bool {
		t.Error("string ordering should be lexical")
	}

	// Comparing a string against a number is never equal.
	v = evalSrc(t, `name == 3`, env)
	if v.Bool {
		t.Error("string and number should not compare equal")
	}
}

func TestEvalErrors(t *testing.T) {
	t.Run("division by zero", func(t *testing.T) {
		for _, src := range []string{"1 / 0", "1 // 0", "1 % 0"} {
			node, err := Parse(src)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", src, err)
			}
			_, err = Eval(node, Env{})
			if !errors.Is(err, ErrDivisionByZero) {
				t.Errorf("%s: expected ErrDivisionByZero, got %v", src, err)
			}
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		env := Env{"name": String("Ada")}
		for _, src := range []string{"name + 1", "name < 1", "-name", "name * 2"} {
			node, err := Parse(src)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", src, err)
			}
			_, err = Eval(node, env)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("%s: expected ErrTypeMismatch, got %v", src, err)
			}
		}
	})
}

func TestAssignments(t *testing.T) {
	t.Run("simple assignment yields value and mutates", func(t *testing.T) {
		env := Env{}
		v := evalSrc(t, "gold = 7", env)
		if v.Num != 7 || env.Get("gold").Num != 7 {
			t.Errorf("expected gold=7, got %s / %s", v, env.Get("gold"))
		}
	})

	t.Run("compound operators", func(t *testing.T) {
		env := Env{"gold": Number(10)}
		cases := []struct {
			src  string
			want float64
		}{
			{"gold += 5", 15},
			{"gold -= 3", 12},
			{"gold *= 2", 24},
			{"gold /= 4", 6},
			{"gold //= 4", 1},
			{"gold **= 3", 1},
			{"gold %= 2", 1},
		}
		for _, tc := range cases {
			v := evalSrc(t, tc.src, env)
			if v.Num != tc.want {
				t.Errorf("%s: expected %v, got %s", tc.src, tc.want, v)
			}
		}
	})

	t.Run("compound on undefined starts from zero", func(t *testing.T) {
		env := Env{}
		v := evalSrc(t, "score += 3", env)
		if v.Num != 3 {
			t.Errorf("expected 3, got %s", v)
		}
	})

	t.Run("string append", func(t *testing.T) {
		env := Env{"log": String("a")}
		v := evalSrc(t, `log += "b"`, env)
		if v.Str != "ab" {
			t.Errorf("expected ab, got %q", v.Str)
		}
	})
}

func TestEvalCondition(t *testing.T) {
	cond := func(t *testing.T, src string, env Env) bool {
		t.Helper()
		node, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", src, err)
		}
		ok, err := EvalCondition(node, env)
		if err != nil {
			t.Fatalf("EvalCondition(%q) failed: %v", src, err)
		}
		return ok
	}

	t.Run("undefined variable reads as zero", func(t *testing.T) {
		if cond(t, "coins >= 10", Env{}) {
			t.Error("0 >= 10 should be false")
		}
	})

	t.Run("pure assignments are always satisfied", func(t *testing.T) {
		env := Env{}
		if !cond(t, "x = 1 and y = 2", env) {
			t.Error("assignment-only condition should be satisfied")
		}
		if env.Get("x").Num != 1 || env.Get("y").Num != 2 {
			t.Errorf("expected x=1 y=2, got x=%s y=%s", env.Get("x"), env.Get("y"))
		}
	})

	t.Run("mixed test and side effect", func(t *testing.T) {
		env := Env{"gold": Number(8)}
		if !cond(t, "gold >= 5 and gold -= 5", env) {
			t.Error("condition should be satisfied")
		}
		if env.Get("gold").Num != 3 {
			t.Errorf("expected gold=3, got %s", env.Get("gold"))
		}
	})

	t.Run("failing test does not skip side effects", func(t *testing.T) {
		env := Env{"gold": Number(2)}
		if cond(t, "gold >= 5 and seen = 1", env) {
			t.Error("condition should not be satisfied")
		}
		if env.Get("seen").Num != 1 {
			t.Error("assignment after a failing test must still apply")
		}
	})

	t.Run("earlier assignments visible to later operands", func(t *testing.T) {
		env := Env{}
		if !cond(t, "x = 4 and x > 3", env) {
			t.Error("later operand should see the fresh assignment")
		}
	})

	t.Run("or stops at the first truthy operand", func(t *testing.T) {
		env := Env{"a": Number(1)}
		if !cond(t, "a or b = 1", env) {
			t.Error("condition should be satisfied")
		}
		if _, defined := env["b"]; defined {
			t.Error("right side of a satisfied or must not run")
		}
	})

	t.Run("symbolic operators", func(t *testing.T) {
		env := Env{"a": Number(1), "b": Number(0)}
		if !cond(t, "a && !b", env) {
			t.Error("a && !b should hold")
		}
		if !cond(t, "b || a", env) {
			t.Error("b || a should hold")
		}
	})
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Number(8), "8"},
		{Number(2.5), "2.5"},
		{Number(1024), "1024"},
		{Number(-4), "-4"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{String("hi"), "hi"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
