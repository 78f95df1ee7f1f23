// Package validator checks the integrity of the story graph ahead of
// playback: every choice target must resolve, and branches should be
// reachable from the start branch.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fabulist/fabula/pkg/domain"
)

// Check crawls the branch graph from the start branch. It returns the ids
// of unreachable branches (a warning, not an error) and an error listing
// every choice that points at a missing branch.
//
// The runtime resolves targets lazily, so a script with dead links loads
// and plays fine until one is selected; Check is the eager companion for
// authoring tools.
func Check(doc *domain.Document) (unreachable []string, err error) {
	visited := make(map[string]bool)
	queue := []string{doc.StartBranch}

	var broken []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		branch, ok := doc.Branch(id)
		if !ok {
			// The start branch is validated at parse time, so this only
			// happens for choice targets.
			continue
		}
		for _, c := range branch.Choices() {
			if _, ok := doc.Branch(c.Target); !ok {
				broken = append(broken, fmt.Sprintf("branch %q line %d: choice %q -> missing branch %q",
					id, c.Line, c.Text, c.Target))
				continue
			}
			if !visited[c.Target] {
				queue = append(queue, c.Target)
			}
		}
	}

	for id := range doc.Branches {
		if !visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	sort.Strings(unreachable)

	if len(broken) > 0 {
		return unreachable, fmt.Errorf("found %d dead link(s):\n- %s", len(broken), strings.Join(broken, "\n- "))
	}
	return unreachable, nil
}
