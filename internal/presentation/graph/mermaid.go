// Package graph renders the story's branch graph as Mermaid flowchart
// syntax for documentation and debugging.
package graph

import (
	"fmt"
	"strings"

	"github.com/fabulist/fabula/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart from the document. Chapters
// become subgraphs, the start branch draws as a circle, and conditional
// choices label their edges with the condition source.
func GenerateMermaid(doc *domain.Document) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, ch := range doc.Chapters {
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"%s\"]\n", sanitizeMermaidID("ch_"+ch.ID), escapeMermaidLabel(ch.Title)))
		for _, b := range ch.Branches {
			safeID := sanitizeMermaidID(b.ID)
			opener, closer := "[", "]"
			if b.ID == doc.StartBranch {
				opener, closer = "((", "))"
			}
			sb.WriteString(fmt.Sprintf("        %s%s\"%s\"%s\n", safeID, opener, escapeMermaidLabel(b.Title), closer))
		}
		sb.WriteString("    end\n")
	}

	for _, ch := range doc.Chapters {
		for _, b := range ch.Branches {
			safeID := sanitizeMermaidID(b.ID)
			for _, c := range b.Choices() {
				safeTo := sanitizeMermaidID(c.Target)
				arrow := "-->"
				if _, ok := doc.Branch(c.Target); !ok {
					// Dead links draw dotted so they stand out.
					arrow = "-.->"
				}
				if c.ConditionText != "" {
					label := escapeMermaidLabel(c.ConditionText)
					if arrow == "-.->" {
						arrow = fmt.Sprintf("-. \"%s\" .->", label)
					} else {
						arrow = fmt.Sprintf("-- \"%s\" -->", label)
					}
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
