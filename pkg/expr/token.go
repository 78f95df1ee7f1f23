package expr

// Kind identifies the lexical class of a token.
type Kind int

const (
	NUMBER Kind = iota
	STRING
	BOOLEAN
	IDENT
	OP
	LPAREN
	RPAREN
	EOF
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case BOOLEAN:
		return "BOOLEAN"
	case IDENT:
		return "IDENT"
	case OP:
		return "OP"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case EOF:
		return "EOF"
	}
	return "UNKNOWN"
}

// Token is a single lexeme together with its byte offset in the source
// expression. String tokens carry the unquoted, unescaped content.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}
