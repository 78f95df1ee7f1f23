// Package script parses the line-oriented story format into a
// domain.Document.
//
// Each physical line classifies by its leading token: `;` comments,
// `@title:`/`@start:`/`@ending:`/`@show-disabled:` metadata, `@chapter`
// headers, `#` branch headers, `!` state actions, `* ` choices, and
// everything else as narrative text. Blank lines separate paragraphs.
package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fabulist/fabula/pkg/domain"
	"github.com/fabulist/fabula/pkg/expr"
)

var (
	// Assignment operators ordered longest first so "**=" never scans as
	// "*=" followed by a stray "=".
	actionRe = regexp.MustCompile(`^([A-Za-z0-9_]+)\s*(\*\*=|//=|\+=|-=|\*=|/=|%=|=)\s*(.+)$`)

	varNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Parser converts raw script text into a story document.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse consumes the whole script and returns the document, or the first
// error encountered. No partial document is ever returned.
func (p *Parser) Parse(text string) (*domain.Document, error) {
	doc := &domain.Document{
		Title:      domain.DefaultTitle,
		EndingText: domain.DefaultEndingText,
		Branches:   make(map[string]*domain.Branch),
	}

	text = strings.TrimPrefix(text, "\ufeff")

	var (
		chapter      *domain.Chapter
		branch       *domain.Branch
		paragraph    []string
		firstBranch  string
		chapterLines = make(map[string]int)
		branchLines  = make(map[string]int)
	)

	flushParagraph := func() {
		if branch != nil && len(paragraph) > 0 {
			merged := strings.TrimSpace(strings.Join(paragraph, "\n"))
			if merged != "" {
				branch.Body = append(branch.Body, domain.Paragraph{Text: merged})
			}
		}
		paragraph = paragraph[:0]
	}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		stripped := strings.TrimSpace(line)
		n := i + 1

		switch {
		case stripped == "":
			flushParagraph()

		case strings.HasPrefix(stripped, ";"):
			// Comments vanish entirely; they do not close the paragraph.

		case hasMetadataPrefix(stripped):
			if chapter != nil {
				return nil, &domain.ParseError{Line: n, Msg: stripped, Err: domain.ErrStaleMetadata}
			}
			applyMetadata(doc, stripped)

		case strings.HasPrefix(stripped, "@chapter"):
			flushParagraph()
			branch = nil
			id, title, err := parseHeader(strings.TrimPrefix(stripped, "@chapter"), n)
			if err != nil {
				return nil, err
			}
			if first, dup := chapterLines[id]; dup {
				return nil, &domain.DuplicateIDError{Kind: "chapter", ID: id, FirstLine: first, Line: n}
			}
			chapterLines[id] = n
			chapter = &domain.Chapter{ID: id, Title: title, Line: n}
			doc.Chapters = append(doc.Chapters, chapter)

		case strings.HasPrefix(stripped, "#"):
			if chapter == nil {
				return nil, &domain.ParseError{Line: n, Msg: "branch declared before any chapter", Err: domain.ErrMalformedDirective}
			}
			flushParagraph()
			id, title, err := parseHeader(strings.TrimLeft(stripped, "#"), n)
			if err != nil {
				return nil, err
			}
			if first, dup := branchLines[id]; dup {
				return nil, &domain.DuplicateIDError{Kind: "branch", ID: id, FirstLine: first, Line: n}
			}
			branchLines[id] = n
			branch = &domain.Branch{ID: id, Title: title, Chapter: chapter.ID, Line: n}
			doc.Branches[id] = branch
			chapter.Branches = append(chapter.Branches, branch)
			if firstBranch == "" {
				firstBranch = id
			}

		case strings.HasPrefix(stripped, "!"):
			action, err := parseAction(strings.TrimSpace(stripped[1:]), n)
			if err != nil {
				return nil, err
			}
			if branch == nil {
				if chapter != nil {
					return nil, &domain.ParseError{Line: n, Msg: "state action", Err: domain.ErrOrphanContent}
				}
				if action.Op != "=" {
					return nil, &domain.ParseError{Line: n, Msg: "initial assignment must use '='", Err: domain.ErrMalformedDirective}
				}
				doc.Init = append(doc.Init, action)
				continue
			}
			branch.Body = append(branch.Body, action)

		case strings.HasPrefix(stripped, "* "):
			if branch == nil {
				return nil, &domain.ParseError{Line: n, Msg: "choice", Err: domain.ErrOrphanContent}
			}
			choice, err := parseChoice(strings.TrimSpace(stripped[2:]), n)
			if err != nil {
				return nil, err
			}
			branch.Body = append(branch.Body, choice)

		default:
			if branch == nil {
				return nil, &domain.ParseError{Line: n, Msg: "narrative text", Err: domain.ErrOrphanContent}
			}
			paragraph = append(paragraph, line)
		}
	}
	flushParagraph()

	if firstBranch == "" {
		return nil, &domain.ParseError{Line: 0, Msg: "script declares no branches"}
	}
	if doc.StartBranch == "" {
		doc.StartBranch = firstBranch
	} else if _, ok := doc.Branches[doc.StartBranch]; !ok {
		return nil, &domain.UnknownBranchError{ID: doc.StartBranch}
	}

	// Initial assignments must evaluate cleanly; the runtime replays them
	// to seed each new session.
	env := make(expr.Env)
	for _, a := range doc.Init {
		if _, err := expr.Eval(a.Node(), env); err != nil {
			return nil, &domain.ParseError{Line: a.Line, Msg: "initial assignment", Err: err}
		}
	}

	return doc, nil
}

func hasMetadataPrefix(s string) bool {
	for _, p := range []string{"@title:", "@start:", "@ending:", "@show-disabled:"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func applyMetadata(doc *domain.Document, line string) {
	switch {
	case strings.HasPrefix(line, "@title:"):
		if v := strings.TrimSpace(line[len("@title:"):]); v != "" {
			doc.Title = v
		}
	case strings.HasPrefix(line, "@start:"):
		doc.StartBranch = strings.TrimSpace(line[len("@start:"):])
	case strings.HasPrefix(line, "@ending:"):
		if v := strings.TrimSpace(line[len("@ending:"):]); v != "" {
			doc.EndingText = v
		}
	case strings.HasPrefix(line, "@show-disabled:"):
		v := strings.ToLower(strings.TrimSpace(line[len("@show-disabled:"):]))
		doc.ShowDisabled = v == "true" || v == "1" || v == "yes" || v == "on"
	}
}

// parseHeader splits "<id>[: <title>]" content. The title falls back to
// the id when omitted.
func parseHeader(content string, line int) (id, title string, err error) {
	content = strings.TrimSpace(content)
	if before, after, found := strings.Cut(content, ":"); found {
		id = strings.TrimSpace(before)
		title = strings.TrimSpace(after)
	} else {
		id = content
	}
	if id == "" {
		return "", "", &domain.ParseError{Line: line, Msg: "header missing id", Err: domain.ErrMalformedDirective}
	}
	if title == "" {
		title = id
	}
	return id, title, nil
}

// parseAction handles the content after "!": the set/add sugar forms and
// the bare "<var> <op>= <value>" grammar.
func parseAction(content string, line int) (domain.Action, error) {
	if rest, ok := strings.CutPrefix(content, "set "); ok {
		name, value, found := strings.Cut(rest, "=")
		if !found {
			return domain.Action{}, &domain.ParseError{Line: line, Msg: "invalid set syntax", Err: domain.ErrMalformedDirective}
		}
		return buildAction(name, "=", value, line)
	}
	if rest, ok := strings.CutPrefix(content, "add "); ok {
		name, value, found := strings.Cut(rest, "+=")
		if !found {
			return domain.Action{}, &domain.ParseError{Line: line, Msg: "invalid add syntax", Err: domain.ErrMalformedDirective}
		}
		return buildAction(name, "+=", value, line)
	}
	if m := actionRe.FindStringSubmatch(content); m != nil {
		return buildAction(m[1], m[2], m[3], line)
	}
	return domain.Action{}, &domain.ParseError{Line: line, Msg: "unknown action", Err: domain.ErrMalformedDirective}
}

func buildAction(name, op, value string, line int) (domain.Action, error) {
	name = strings.TrimSpace(name)
	if !validVarName(name) {
		return domain.Action{}, &domain.ParseError{Line: line, Msg: fmt.Sprintf("variable %q", name), Err: domain.ErrInvalidVariableName}
	}
	value = strings.TrimSpace(value)
	node, err := expr.Parse(value)
	if err != nil {
		return domain.Action{}, &domain.ParseError{Line: line, Msg: "action value", Err: err}
	}
	return domain.Action{Var: name, Op: op, Value: node, ValueText: value, Line: line}, nil
}

// validVarName enforces the variable grammar: [A-Za-z0-9_]+ without
// leading/trailing underscores and without "__", which would collide with
// the placeholder delimiter.
func validVarName(name string) bool {
	if name == "" || !varNameRe.MatchString(name) {
		return false
	}
	return !strings.HasPrefix(name, "_") &&
		!strings.HasSuffix(name, "_") &&
		!strings.Contains(name, "__")
}

// parseChoice handles the content after "* ":
// "[<condition>] <text> -> <target>" with the bracket part optional.
func parseChoice(content string, line int) (domain.Choice, error) {
	left, target, found := strings.Cut(content, "->")
	if !found {
		return domain.Choice{}, &domain.ParseError{Line: line, Msg: "choice line must contain '->'", Err: domain.ErrMalformedDirective}
	}
	left = strings.TrimSpace(left)
	target = strings.TrimSpace(target)

	choice := domain.Choice{Target: target, Line: line}
	if strings.HasPrefix(left, "[") {
		end := strings.Index(left, "]")
		if end < 0 {
			return domain.Choice{}, &domain.ParseError{Line: line, Msg: "missing closing ']' in condition", Err: domain.ErrMalformedDirective}
		}
		cond := strings.TrimSpace(left[1:end])
		left = strings.TrimSpace(left[end+1:])
		if cond != "" {
			node, err := expr.Parse(cond)
			if err != nil {
				return domain.Choice{}, &domain.ParseError{Line: line, Msg: "choice condition", Err: err}
			}
			choice.Condition = node
			choice.ConditionText = cond
		}
	}
	if left == "" || target == "" {
		return domain.Choice{}, &domain.ParseError{Line: line, Msg: "choice text or target is empty", Err: domain.ErrMalformedDirective}
	}
	choice.Text = left
	return choice, nil
}
