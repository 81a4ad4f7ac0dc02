package abc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// GrammarError means the text does not match the ABC grammar.
	GrammarError ErrorKind = iota
	// SemanticError means the text is well formed but structurally invalid,
	// such as switching to a voice that was never declared.
	SemanticError
)

func (k ErrorKind) String() string {
	switch k {
	case GrammarError:
		return "grammar error"
	case SemanticError:
		return "semantic error"
	}
	return "parse error"
}

// Sentinels for errors.Is.
var (
	ErrGrammar  = errors.New("abc: grammar error")
	ErrSemantic = errors.New("abc: semantic error")
)

// ParseError is returned for any source text that cannot be turned into a Song.
type ParseError struct {
	Line int // 1-based, 0 when not tied to a line
	Kind ErrorKind
	Msg  string
	Err  error // underlying participle or strconv error, if any
}

func (e *ParseError) Error() string {
	s := e.Kind.String() + ": " + e.Msg
	if e.Line > 0 {
		s = fmt.Sprintf("line %d: %s", e.Line, s)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrGrammar and ErrSemantic by kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrGrammar:
		return e.Kind == GrammarError
	case ErrSemantic:
		return e.Kind == SemanticError
	}
	return false
}

func grammarErr(line int, err error, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Kind: GrammarError, Msg: fmt.Sprintf(format, args...), Err: err}
}

func semanticErr(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Kind: SemanticError, Msg: fmt.Sprintf(format, args...)}
}
