package expr

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
)

// SyntaxError locates a parse failure in the source.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

// Parser builds an AST from a token stream.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
	labels  map[string]int
}

// NewParser creates a Parser reading from lexer.
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{lexer: lexer, labels: make(map[string]int)}
	p.advance()
	p.advance()
	return p
}

// Parse parses a complete expression. Syntax errors, invalid labels, and
// duplicate labels fail with INVALID_EXPRESSION wrapping a *SyntaxError.
func Parse(src string) (*Node, error) {
	n, err := NewParser(NewLexer(src)).ParseExpr()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidExpression, err, "parse expression")
	}
	return n, nil
}

// ParseExpr parses one element followed by the end of input.
func (p *Parser) ParseExpr() (*Node, error) {
	n, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, p.unexpected("end of input")
	}
	return n, nil
}

func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lexer.Next()
}

func (p *Parser) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) unexpected(want string) error {
	got := p.current.Type.String()
	if p.current.Literal != "" {
		got = fmt.Sprintf("%s %q", got, p.current.Literal)
	}
	return p.errorf(p.current.Offset, "expected %s, got %s", want, got)
}

func (p *Parser) expect(typ TokenType) error {
	if p.current.Type != typ {
		return p.unexpected(typ.String())
	}
	p.advance()
	return nil
}

// atContainer reports whether the current token opens h(...) or v(...).
func (p *Parser) atContainer() bool {
	if p.current.Type != TokenIdent {
		return false
	}
	if p.current.Literal != "h" && p.current.Literal != "v" {
		return false
	}
	return p.peek.Type == TokenLParen || p.peek.Type == TokenAt
}

func (p *Parser) parseElement() (*Node, error) {
	start := p.current.Offset

	var label string
	if p.current.Type == TokenIdent && p.peek.Type == TokenEquals {
		label = p.current.Literal
		p.advance()
		p.advance()
		if !p.atContainer() && p.current.Type != TokenSize {
			return nil, p.unexpected("container or size after '='")
		}
	}

	var (
		n   *Node
		err error
	)
	switch {
	case p.atContainer():
		n, err = p.parseContainer()
	case p.current.Type == TokenSize:
		n, err = p.parseLeafSize()
	case p.current.Type == TokenIdent && label == "":
		n = &Node{Kind: composite.KindLeaf, Label: p.current.Literal, Size: composite.DefaultSize}
		label = n.Label
		p.advance()
	default:
		return nil, p.unexpected("element")
	}
	if err != nil {
		return nil, err
	}

	n.Offset = start
	if label != "" {
		if err := p.addLabel(label, start); err != nil {
			return nil, err
		}
		n.Label = label
	}
	return n, nil
}

func (p *Parser) addLabel(label string, offset int) error {
	if err := errors.ValidateLabel(label); err != nil {
		return p.errorf(offset, "%s", errors.UserMessage(err))
	}
	if first, ok := p.labels[label]; ok {
		return p.errorf(offset, "duplicate label %q (first used at offset %d)", label, first)
	}
	p.labels[label] = offset
	return nil
}

func (p *Parser) parseSize() (composite.Size, error) {
	tok := p.current
	if tok.Type != TokenSize {
		return composite.Size{}, p.unexpected("size")
	}

	// Bare digits are a weight; ParseSize reads integers that way.
	var raw any = tok.Literal
	if n, err := strconv.Atoi(tok.Literal); err == nil {
		raw = n
	} else if isDigit(tok.Literal[len(tok.Literal)-1]) {
		return composite.Size{}, p.errorf(tok.Offset, "size %s out of range", tok.Literal)
	}

	s, err := composite.ParseSize(raw)
	if err != nil {
		return composite.Size{}, p.errorf(tok.Offset, "%s", errors.UserMessage(err))
	}
	p.advance()
	return s, nil
}

func (p *Parser) parseLeafSize() (*Node, error) {
	s, err := p.parseSize()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: composite.KindLeaf, Size: s, Sized: true}, nil
}

func (p *Parser) parseContainer() (*Node, error) {
	dir, err := composite.ParseDirection(p.current.Literal)
	if err != nil {
		return nil, p.errorf(p.current.Offset, "%s", errors.UserMessage(err))
	}
	n := &Node{Kind: composite.KindContainer, Direction: dir, Size: composite.DefaultSize}
	p.advance()

	if p.current.Type == TokenAt {
		p.advance()
		if n.Size, err = p.parseSize(); err != nil {
			return nil, err
		}
		n.Sized = true
	}

	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	if p.current.Type == TokenRParen {
		p.advance()
		return n, nil
	}

	for {
		child, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)

		switch p.current.Type {
		case TokenComma:
			p.advance()
		case TokenRParen:
			p.advance()
			return n, nil
		default:
			return nil, p.unexpected("',' or ')'")
		}
	}
}
