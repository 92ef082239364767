package interpreter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rhino1998/configlang/pkg/kinds"
	"github.com/rhino1998/configlang/pkg/parser"
)

// ChainMode selects how adjacent if blocks interact.
type ChainMode int

const (
	// ChainIndependent evaluates every if in a chain on its own. A trailing
	// else block belongs to the last if.
	ChainIndependent ChainMode = iota

	// ChainExclusive runs at most one block per chain. Once a block has run,
	// the rest of the chain is skipped without evaluating conditions.
	ChainExclusive
)

func (m ChainMode) String() string {
	switch m {
	case ChainIndependent:
		return "independent"
	case ChainExclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("ChainMode(%d)", int(m))
	}
}

func (m ChainMode) MarshalText() ([]byte, error) {
	switch m {
	case ChainIndependent, ChainExclusive:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid chain mode %d", int(m))
	}
}

func (m *ChainMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "independent":
		*m = ChainIndependent
	case "exclusive":
		*m = ChainExclusive
	default:
		return fmt.Errorf("invalid chain mode %q", text)
	}

	return nil
}

type Options struct {
	Chain ChainMode

	// StrictTypes rejects re-assignment that changes a variable's kind.
	StrictTypes bool
}

// Execute runs the program produced by lex against store, statement by
// statement. Execution stops at the first error; mutations made by earlier
// statements are kept.
func Execute(logger *slog.Logger, store *Store, lex *parser.Lexer, opts Options) error {
	s := newState(logger, store, lex, opts)

	return s.execute()
}

type state struct {
	logger *slog.Logger
	store  *Store
	lexer  *parser.Lexer
	opts   Options

	current parser.Token
	peek    parser.Token
}

func newState(logger *slog.Logger, store *Store, lex *parser.Lexer, opts Options) *state {
	if logger == nil {
		logger = slog.Default()
	}

	s := &state{
		logger: logger,
		store:  store,
		lexer:  lex,
		opts:   opts,
	}
	s.peek = lex.Next()
	s.advance()

	return s
}

func (s *state) advance() {
	s.current = s.peek
	s.peek = s.lexer.Next()

	if s.current.Truncated {
		s.logger.Warn("token truncated",
			"pos", s.current.Position,
			"kind", s.current.Kind,
			"text", s.current.Text,
		)
	}
}

func (s *state) skipNewlines() {
	for s.current.Kind == parser.Newline {
		s.advance()
	}
}

func (s *state) unexpected(expected string) error {
	tok := s.current
	if tok.Kind == parser.Illegal {
		return tok.WrapError(tok.Err)
	}

	return tok.WrapError(fmt.Errorf("%w: expected %s, found %s", parser.ErrUnexpectedToken, expected, tok))
}

func (s *state) execute() error {
	for {
		s.skipNewlines()
		if s.current.Kind == parser.EOF {
			return nil
		}

		err := s.statement()
		if err != nil {
			return err
		}

		switch s.current.Kind {
		case parser.Newline, parser.EOF:
		default:
			return s.unexpected("end of statement")
		}
	}
}

func (s *state) statement() error {
	if s.current.Kind == parser.If {
		return s.ifStatement()
	}

	return s.setStatement()
}

func (s *state) setStatement() error {
	immutable := false
	if s.current.Kind == parser.Const {
		if s.peek.Kind != parser.Set {
			s.advance()
			return s.unexpected("'set' after 'const'")
		}
		immutable = true
		s.advance()
	}

	if s.current.Kind != parser.Set {
		return s.unexpected("statement")
	}
	s.advance()

	if s.current.Kind != parser.Ident {
		return s.unexpected("variable name")
	}
	nameTok := s.current
	s.advance()

	if s.current.Kind != parser.Assign {
		return s.unexpected("'='")
	}
	s.advance()

	val, err := s.value()
	if err != nil {
		return err
	}

	return nameTok.WrapError(s.assign(nameTok.Text, val, immutable))
}

func (s *state) value() (Value, error) {
	tok := s.current

	switch tok.Kind {
	case parser.Int:
		s.advance()
		return IntValue(tok.Int), nil
	case parser.String:
		s.advance()
		return StringValue(tok.Text), nil
	case parser.Ident:
		v, ok := s.store.Lookup(tok.Text)
		if !ok {
			return Value{}, tok.WrapError(fmt.Errorf("%w: %q", ErrVariableNotFound, tok.Text))
		}
		s.advance()
		return v.Value(), nil
	default:
		return Value{}, s.unexpected("value")
	}
}

func (s *state) assign(name string, val Value, immutable bool) error {
	v, ok := s.store.Lookup(name)
	if !ok {
		_, err := s.store.Define(name, val, immutable)
		if err != nil {
			return err
		}

		s.logger.Debug("defined variable", "name", name, "kind", val.Kind(), "const", immutable)
		return nil
	}

	if v.Immutable() {
		return fmt.Errorf("%w: %q", ErrConstViolation, name)
	}

	if s.opts.StrictTypes && v.Kind() != val.Kind() {
		return fmt.Errorf("%w: %q is %s, cannot assign %s", ErrTypeMismatch, name, v.Kind(), val.Kind())
	}

	err := s.store.Assign(v, val)
	if err != nil {
		return err
	}

	s.logger.Debug("assigned variable", "name", name, "kind", val.Kind())
	return nil
}

func (s *state) ifStatement() error {
	taken := false

	for {
		// current is 'if'
		s.advance()

		var cond bool
		if s.opts.Chain == ChainExclusive && taken {
			err := s.skipCondition()
			if err != nil {
				return err
			}
		} else {
			var err error
			cond, err = s.condition()
			if err != nil {
				return err
			}
		}

		err := s.block(cond)
		if err != nil {
			return err
		}
		taken = taken || cond

		switch s.current.Kind {
		case parser.If:
			continue
		case parser.LBrace:
			runElse := !cond
			if s.opts.Chain == ChainExclusive {
				runElse = !taken
			}
			return s.block(runElse)
		default:
			return nil
		}
	}
}

func (s *state) condition() (bool, error) {
	pos := s.current.Position

	left, err := s.operand()
	if err != nil {
		return false, err
	}

	if s.current.Kind != parser.Comparison {
		return false, s.unexpected("comparison operator")
	}
	op := s.current.Operator
	s.advance()

	right, err := s.operand()
	if err != nil {
		return false, err
	}

	result, err := op.Compare(left, right)
	if err != nil {
		return false, pos.WrapError(err)
	}

	s.logger.Debug("evaluated condition", "pos", pos, "left", left, "op", op, "right", right, "result", result)

	return result, nil
}

func (s *state) operand() (int64, error) {
	tok := s.current

	switch tok.Kind {
	case parser.Int:
		s.advance()
		return tok.Int, nil
	case parser.Ident:
		v, ok := s.store.Lookup(tok.Text)
		if !ok {
			return 0, tok.WrapError(fmt.Errorf("%w: %q", ErrVariableNotFound, tok.Text))
		}

		if !v.Kind().IsComparable() {
			return 0, tok.WrapError(fmt.Errorf("%w: condition requires int, %q is %s", ErrTypeMismatch, tok.Text, v.Kind()))
		}
		n, _ := v.Value().AsInt()

		s.advance()
		return n, nil
	case parser.String:
		return 0, tok.WrapError(fmt.Errorf("%w: condition requires int, found %s", ErrTypeMismatch, kinds.String))
	default:
		return 0, s.unexpected("identifier or integer")
	}
}

func (s *state) skipCondition() error {
	isOperand := func(tok parser.Token) bool {
		return tok.Kind == parser.Ident || tok.Kind == parser.Int
	}

	if !isOperand(s.current) {
		return s.unexpected("identifier or integer")
	}
	s.advance()

	if s.current.Kind != parser.Comparison {
		return s.unexpected("comparison operator")
	}
	s.advance()

	if !isOperand(s.current) {
		return s.unexpected("identifier or integer")
	}
	s.advance()

	return nil
}

// block parses '{' statement '}'. When run is false the body is scanned and
// discarded without executing.
func (s *state) block(run bool) error {
	if s.current.Kind != parser.LBrace {
		return s.unexpected("'{'")
	}
	open := s.current.Position
	s.advance()

	if run {
		s.skipNewlines()
		err := s.setStatement()
		if err != nil {
			return err
		}
		s.skipNewlines()
	} else {
		for s.current.Kind != parser.RBrace && s.current.Kind != parser.EOF {
			if s.current.Kind == parser.Illegal {
				return s.unexpected("'}'")
			}
			s.advance()
		}
		s.logger.Debug("skipped block", "pos", open)
	}

	if s.current.Kind != parser.RBrace {
		return s.unexpected("'}'")
	}
	s.advance()

	return nil
}
