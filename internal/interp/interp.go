// Package interp rewrites __name__ placeholders in narrative text using
// the live variable environment.
package interp

import (
	"regexp"
	"strings"

	"github.com/fabulist/fabula/pkg/expr"
)

// namePattern matches a placeholder name right after an opening "__":
// alphanumeric runs joined by single underscores, so the name itself can
// never contain "__" and never starts or ends with "_".
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:_[A-Za-z0-9]+)*`)

// Interpolate replaces every defined __name__ placeholder with the
// value's canonical string form and leaves undefined placeholders
// untouched.
//
// The scanner slides rather than skips: after an undefined placeholder it
// resumes at the closing "__", so that text like "__a____b__" still
// resolves "__b__" when only b is defined. A "__" with no name after it
// emits a single "_" and advances one byte.
func Interpolate(text string, env expr.Env) string {
	if text == "" {
		return ""
	}

	var out strings.Builder
	i := 0
	for i < len(text) {
		j := strings.Index(text[i:], "__")
		if j < 0 {
			out.WriteString(text[i:])
			break
		}
		j += i
		out.WriteString(text[i:j])

		name := namePattern.FindString(text[j+2:])
		if name == "" {
			out.WriteByte('_')
			i = j + 1
			continue
		}

		k := j + 2 + len(name)
		if !strings.HasPrefix(text[k:], "__") {
			out.WriteByte('_')
			i = j + 1
			continue
		}

		if v, ok := env[name]; ok {
			out.WriteString(v.String())
			i = k + 2
		} else {
			// Undefined: emit "__name" and re-scan from the closing "__"
			// so it can open the next placeholder.
			out.WriteString(text[j:k])
			i = k
		}
	}
	return out.String()
}
