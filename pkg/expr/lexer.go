package expr

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Multi-character operators are matched greedily, longest first.
var (
	threeCharOps = []string{"**=", "//="}
	twoCharOps   = []string{"**", "//", "==", "!=", "<=", ">=", "&&", "||", "+=", "-=", "*=", "/=", "%="}
	oneCharOps   = "+-*/%<>=!&|"
)

// Lex splits an expression source string into tokens, always terminated by
// an EOF token. An unrecognized character fails with a LexError carrying
// its byte offset.
func Lex(src string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '(':
			toks = append(toks, Token{Kind: LPAREN, Text: "(", Pos: i})
			i++
		case c == ')':
			toks = append(toks, Token{Kind: RPAREN, Text: ")", Pos: i})
			i++
		case c == '"' || c == '\'':
			text, next, err := lexString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: STRING, Text: text, Pos: i})
			i = next
		case isDigit(c):
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i < len(src) && src[i] == '.' {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			toks = append(toks, Token{Kind: NUMBER, Text: src[start:i], Pos: start})
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			word := src[start:i]
			switch {
			case strings.EqualFold(word, "true"), strings.EqualFold(word, "false"):
				toks = append(toks, Token{Kind: BOOLEAN, Text: strings.ToLower(word), Pos: start})
			case word == "and", word == "or", word == "not":
				toks = append(toks, Token{Kind: OP, Text: word, Pos: start})
			default:
				toks = append(toks, Token{Kind: IDENT, Text: word, Pos: start})
			}
		default:
			op, ok := matchOp(src, i)
			if !ok {
				r, _ := utf8.DecodeRuneInString(src[i:])
				return nil, &LexError{Offset: i, Msg: fmt.Sprintf("unrecognized character %q", r)}
			}
			toks = append(toks, Token{Kind: OP, Text: op, Pos: i})
			i += len(op)
		}
	}
	toks = append(toks, Token{Kind: EOF, Pos: len(src)})
	return toks, nil
}

// lexString consumes a quoted string starting at src[start]. A backslash
// escapes the next character.
func lexString(src string, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			b.WriteByte(src[i+1])
			i += 2
		case c == quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, &LexError{Offset: start, Msg: "unterminated string literal"}
}

func matchOp(src string, i int) (string, bool) {
	for _, op := range threeCharOps {
		if strings.HasPrefix(src[i:], op) {
			return op, true
		}
	}
	for _, op := range twoCharOps {
		if strings.HasPrefix(src[i:], op) {
			return op, true
		}
	}
	if strings.IndexByte(oneCharOps, src[i]) >= 0 {
		return src[i : i+1], true
	}
	return "", false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }
