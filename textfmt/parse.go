// Package textfmt parses the small surface syntax used to write facts and
// conjuncts as text: name(arg1, arg2, ...), where an argument starting with
// "?" names a variable. It sits in front of dataq.Frontend and never sees
// symbol ids: ParseFact and ParseConjunct only ever produce strings.
package textfmt

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// Term is one argument of a parsed conjunct: either a bare/quoted symbol or
// a "?"-prefixed variable reference. For a variable, Name holds the name
// without its "?".
type Term struct {
	Name  string
	IsVar bool
}

// ParseError reports a malformed fact or conjunct, with the scanner
// position of the offending token. The error ParseFact returns for a
// variable argument is raised after scanning and carries a zero Pos.
type ParseError struct {
	Pos scanner.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("textfmt: %s: %s", e.Pos, e.Msg)
}

func newScanner(src string) *scanner.Scanner {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanStrings | scanner.ScanInts | scanner.ScanFloats
	s.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || ch == '-' || ch == '.' ||
			(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9' && i > 0)
	}
	s.Filename = "textfmt"
	return &s
}

func parseErr(s *scanner.Scanner, format string, args ...any) error {
	return &ParseError{Pos: s.Pos(), Msg: fmt.Sprintf(format, args...)}
}

// parseTerms parses "name(arg1, arg2, ...)" into a predicate name and its
// ordered list of raw argument texts (quotes already stripped).
func parseTerms(line string) (string, []string, error) {
	s := newScanner(line)

	tok := s.Scan()
	if tok != scanner.Ident {
		return "", nil, parseErr(s, "expected a predicate name, got %q", s.TokenText())
	}
	name := s.TokenText()

	if tok := s.Scan(); tok != '(' {
		return "", nil, parseErr(s, "expected '(' after %q, got %q", name, s.TokenText())
	}

	var args []string
	if s.Peek() != ')' {
		for {
			arg, err := scanArg(s)
			if err != nil {
				return "", nil, err
			}
			args = append(args, arg)
			if s.Peek() == ',' {
				s.Scan()
				continue
			}
			break
		}
	}

	if tok := s.Scan(); tok != ')' {
		return "", nil, parseErr(s, "expected ')' to close %q, got %q", name, s.TokenText())
	}
	if tok := s.Scan(); tok != scanner.EOF {
		return "", nil, parseErr(s, "unexpected trailing input %q", s.TokenText())
	}
	return name, args, nil
}

// scanArg reads one argument: an optional leading "?", then an identifier,
// quoted string, or number.
func scanArg(s *scanner.Scanner) (string, error) {
	prefix := ""
	tok := s.Scan()
	if tok == '?' {
		prefix = "?"
		tok = s.Scan()
	}
	switch tok {
	case scanner.Ident:
		return prefix + s.TokenText(), nil
	case scanner.String:
		unquoted, err := strconv.Unquote(s.TokenText())
		if err != nil {
			return "", parseErr(s, "invalid quoted string %q: %v", s.TokenText(), err)
		}
		if prefix != "" {
			return "", parseErr(s, "a variable name can't be a quoted string")
		}
		return unquoted, nil
	case scanner.Int, scanner.Float:
		return prefix + s.TokenText(), nil
	default:
		return "", parseErr(s, "expected an argument, got %q", s.TokenText())
	}
}

// ParseFact parses a ground fact, e.g. `on(table, cup1)`. No argument may
// start with "?"; that prefix is reserved for conjunct variables.
func ParseFact(line string) ([]string, error) {
	name, args, err := parseTerms(line)
	if err != nil {
		return nil, err
	}
	fact := make([]string, 0, len(args)+1)
	fact = append(fact, name)
	for _, a := range args {
		if strings.HasPrefix(a, "?") {
			return nil, &ParseError{Msg: fmt.Sprintf("fact argument %q may not be a variable", a)}
		}
		fact = append(fact, a)
	}
	return fact, nil
}

// ParseConjunct parses a lifted fact, e.g. `in(?room, table)`, into its
// predicate name followed by one Term per argument.
func ParseConjunct(line string) ([]Term, error) {
	name, args, err := parseTerms(line)
	if err != nil {
		return nil, err
	}
	terms := make([]Term, 0, len(args)+1)
	terms = append(terms, Term{Name: name})
	for _, a := range args {
		if strings.HasPrefix(a, "?") {
			terms = append(terms, Term{Name: a[1:], IsVar: true})
		} else {
			terms = append(terms, Term{Name: a})
		}
	}
	return terms, nil
}
