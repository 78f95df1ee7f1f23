package interp

import (
	"testing"

	"github.com/fabulist/fabula/pkg/expr"
)

func TestInterpolate(t *testing.T) {
	env := expr.Env{
		"coins": expr.Number(8),
		"name":  expr.String("Ada"),
		"done":  expr.Bool(true),
		"ratio": expr.Number(2.5),
	}

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "nothing here", "nothing here"},
		{"empty input", "", ""},
		{"number value", "You have __coins__ coins.", "You have 8 coins."},
		{"integral numbers drop the decimal point", "__coins__", "8"},
		{"fractional numbers keep it", "__ratio__", "2.5"},
		{"string value", "Hello __name__!", "Hello Ada!"},
		{"boolean renders lowercase", "done: __done__", "done: true"},
		{"undefined placeholder unchanged", "__missing__", "__missing__"},
		{"defined after undefined", "__missing____coins__", "__missing__8"},
		{"multiple placeholders", "__name__ has __coins__", "Ada has 8"},
		{"bare double underscore", "a __ b", "a __ b"},
		{"no closing delimiter", "__coins", "__coins"},
		{"extra leading underscore slides", "___coins__", "_8"},
		{"name with inner underscore", "__coin_count__", "__coin_count__"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpolate(tc.in, env)
			if got != tc.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestInterpolateIdempotentOnUndefined(t *testing.T) {
	env := expr.Env{}
	once := Interpolate("__missing__", env)
	twice := Interpolate(once, env)
	if once != "__missing__" || twice != "__missing__" {
		t.Errorf("undefined interpolation should be a fixed point, got %q then %q", once, twice)
	}
}
