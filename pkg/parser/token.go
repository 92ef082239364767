package parser

import (
	"fmt"

	"github.com/rhino1998/configlang/pkg/operators"
)

type Keyword string

const (
	KeywordSet   Keyword = "set"
	KeywordConst Keyword = "const"
	KeywordIf    Keyword = "if"
)

type Kind int

const (
	EOF Kind = iota
	Illegal
	Newline
	Ident
	Int
	String
	Set
	Const
	If
	LBrace
	RBrace
	Assign
	Comparison
)

var keywords = map[Keyword]Kind{
	KeywordSet:   Set,
	KeywordConst: Const,
	KeywordIf:    If,
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end-of-input"
	case Illegal:
		return "illegal token"
	case Newline:
		return "newline"
	case Ident:
		return "identifier"
	case Int:
		return "integer"
	case String:
		return "string"
	case Set:
		return string(KeywordSet)
	case Const:
		return string(KeywordConst)
	case If:
		return string(KeywordIf)
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Assign:
		return "'='"
	case Comparison:
		return "comparison operator"
	default:
		return "<unknown>"
	}
}

type Token struct {
	Kind Kind

	// Text holds the identifier name, the string content, the raw numeral or
	// the operator spelling.
	Text     string
	Int      int64
	Operator operators.Operator

	// Truncated is set when Text was cut to the lexer's configured maximum.
	Truncated bool

	// Err is set for Illegal tokens.
	Err error

	Position
}

func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case Int:
		return fmt.Sprintf("integer %d", t.Int)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Comparison:
		return fmt.Sprintf("'%s'", t.Operator)
	case Illegal:
		if t.Err != nil {
			return fmt.Sprintf("illegal token (%v)", t.Err)
		}
		return "illegal token"
	default:
		return t.Kind.String()
	}
}
