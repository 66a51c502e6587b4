package less

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrMixedDelimiters is the cause when one mixin argument list uses both
	// ',' with named arguments and ';' as separators
	ErrMixedDelimiters = errors.New("cannot mix ; and , as delimiter types")
	// ErrExtendAlone is the cause when a selector holds :extend() and no element
	ErrExtendAlone = errors.New("extend must be used to extend a selector, it cannot be used on its own")
	// ErrMaxDepth is the cause when nesting exceeds the configured maximum depth
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
	// ErrUnexpected is the cause of every other parse error
	ErrUnexpected = errors.New("unexpected input")
)

// ParseError reports the first hard failure of a parse. Index is the byte
// offset into the normalized input; Line and Column are 1-based, Column
// counting bytes.
type ParseError struct {
	Message  string
	Filename string
	Index    int
	Line     int
	Column   int
	Found    string
	Expected string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// bailout carries a hard failure up the grammar to Parse
type bailout struct {
	err *ParseError
}

// locate fills in Line and Column for e from the parsed input
func (e *ParseError) locate(input string) {
	i := min(max(e.Index, 0), len(input))
	before := input[:i]
	e.Line = strings.Count(before, "\n") + 1
	e.Column = i - (strings.LastIndexByte(before, '\n') + 1) + 1
}

// describe quotes the character at the cursor for error messages
func (p *Parser) describe() string {
	if p.eof() {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return fmt.Sprintf("'%c'", r)
}

func (p *Parser) fail(err *ParseError) {
	err.Index = p.pos
	if err.Found == "" {
		err.Found = p.describe()
	}
	panic(bailout{err})
}

// failWith raises one of the sentinel errors with its own text as message
func (p *Parser) failWith(sentinel error) {
	p.fail(&ParseError{Message: sentinel.Error(), Err: sentinel})
}

// unexpected raises the standard "expected X got Y" error
func (p *Parser) unexpected(expected string) {
	found := p.describe()
	p.fail(&ParseError{
		Message:  fmt.Sprintf("expected %s got %s", expected, found),
		Found:    found,
		Expected: expected,
		Err:      ErrUnexpected,
	})
}

// failf raises an ErrUnexpected error with a custom message
func (p *Parser) failf(format string, args ...any) {
	p.fail(&ParseError{Message: fmt.Sprintf(format, args...), Err: ErrUnexpected})
}
