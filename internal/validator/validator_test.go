package validator

import (
	"strings"
	"testing"

	"github.com/fabulist/fabula/internal/script"
	"github.com/fabulist/fabula/pkg/domain"
)

func load(t *testing.T, text string) *domain.Document {
	t.Helper()
	doc, err := script.NewParser().Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestCheck(t *testing.T) {
	t.Run("clean graph", func(t *testing.T) {
		doc := load(t, `@chapter one
# a
* Forward -> b
* Sideways -> c

# b
* Loop back -> a

# c
Terminal.
`)
		unreachable, err := Check(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(unreachable) != 0 {
			t.Errorf("unexpected unreachable branches: %v", unreachable)
		}
	})

	t.Run("dead link reported with location", func(t *testing.T) {
		doc := load(t, `@chapter one
# a
* Into the void -> nowhere
`)
		_, err := Check(doc)
		if err == nil {
			t.Fatal("expected a dead link error")
		}
		if !strings.Contains(err.Error(), `"nowhere"`) || !strings.Contains(err.Error(), "line 3") {
			t.Errorf("error should name the missing target and line: %v", err)
		}
	})

	t.Run("unreachable branches listed", func(t *testing.T) {
		doc := load(t, `@chapter one
# a
The only stop.

# island
Nobody arrives here.

# atoll
Nor here.
`)
		unreachable, err := Check(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(unreachable) != 2 || unreachable[0] != "atoll" || unreachable[1] != "island" {
			t.Errorf("expected sorted [atoll island], got %v", unreachable)
		}
	})
}
