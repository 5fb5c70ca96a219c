package token

import (
	"strconv"
	"strings"
)

// Kind identifies the class of a token tree node.
type Kind int

const (
	// Ident is an identifier: a letter or underscore followed by letters,
	// digits, or underscores.
	Ident Kind = iota

	// Number is a numeric literal, including any unit suffix glued directly
	// to the digits (e.g. "10px", "1.5vw"). The suffix is part of Text.
	Number

	// String is a quoted string literal, quotes included.
	String

	// Punct is a single punctuation rune.
	Punct

	// Group is a delimited subtree: the contents of (…), […], or {…}.
	Group
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Punct:
		return "punctuation"
	case Group:
		return "group"
	default:
		return "unknown"
	}
}

// Delim identifies the delimiter of a Group node.
type Delim rune

const (
	Paren   Delim = '('
	Bracket Delim = '['
	Brace   Delim = '{'
)

// Close returns the closing rune for the delimiter.
func (d Delim) Close() rune {
	switch d {
	case Paren:
		return ')'
	case Bracket:
		return ']'
	case Brace:
		return '}'
	default:
		return 0
	}
}

// Span locates a token tree within the original source text.
// Start and End are byte offsets; Line and Col are 1-based and refer to
// the position of Start.
type Span struct {
	Start int
	End   int
	Line  int
	Col   int
}

// Of returns the source text covered by the span.
func (s Span) Of(src string) string {
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return ""
	}

	return src[s.Start:s.End]
}

// Inner returns the source text covered by the span with the outermost
// delimiters stripped. It is only meaningful for Group spans.
func (s Span) Inner(src string) string {
	text := s.Of(src)
	if len(text) < 2 {
		return ""
	}

	return text[1 : len(text)-1]
}

// Join returns the smallest span covering both s and t.
func (s Span) Join(t Span) Span {
	out := s

	if t.Start < s.Start {
		out.Start = t.Start
		out.Line = t.Line
		out.Col = t.Col
	}

	if t.End > s.End {
		out.End = t.End
	}

	return out
}

// String formats the span as "line:col".
func (s Span) String() string {
	return strconv.Itoa(s.Line) + ":" + strconv.Itoa(s.Col)
}

// Tree is one node of the token tree produced by Tokenize.
// Leaf nodes are Ident, Number, String, or Punct; Group nodes carry the
// nested trees between a pair of delimiters.
type Tree struct {
	Kind  Kind
	Text  string // leaf text; empty for groups
	Delim Delim  // set for groups only
	Nodes []Tree // group contents
	Span  Span
}

// IsPunct reports whether the tree is the given punctuation rune.
func (t Tree) IsPunct(r rune) bool {
	return t.Kind == Punct && t.Text == string(r)
}

// IsGroup reports whether the tree is a group with the given delimiter.
func (t Tree) IsGroup(d Delim) bool {
	return t.Kind == Group && t.Delim == d
}

// Describe returns a short description of the tree for diagnostics.
func (t Tree) Describe() string {
	switch t.Kind {
	case Group:
		return "'" + string(rune(t.Delim)) + "…" + string(t.Delim.Close()) + "'"
	case Punct:
		return "'" + t.Text + "'"
	default:
		return t.Kind.String() + " '" + t.Text + "'"
	}
}

// Error is a tokenization failure with its source location.
type Error struct {
	Msg  string
	Span Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	var buf strings.Builder

	buf.WriteString(e.Span.String())
	buf.WriteString(": ")
	buf.WriteString(e.Msg)

	return buf.String()
}
