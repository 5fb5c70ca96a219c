package token

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits source text into a token tree.
//
// Whitespace and comments ("//" to end of line, "/*" to "*/") separate
// tokens and are not represented in the output. Delimiter pairs produce
// nested Group nodes; mismatched or unterminated delimiters are errors.
func Tokenize(src string) ([]Tree, error) {
	t := &tokenizer{src: src, line: 1, col: 1}

	trees, err := t.run(0)
	if err != nil {
		return nil, err
	}

	return trees, nil
}

// tokenizer holds scanning state over the source bytes.
type tokenizer struct {
	src  string
	pos  int
	line int
	col  int
}

// run scans token trees until EOF or the closing rune, which is consumed.
// A zero close rune means scan to EOF.
func (t *tokenizer) run(close rune) ([]Tree, error) {
	var trees []Tree

	for {
		t.skipSpace()

		if t.eof() {
			if close != 0 {
				return nil, &Error{
					Msg:  "unterminated group, expected '" + string(close) + "'",
					Span: t.span(t.pos),
				}
			}

			return trees, nil
		}

		r := t.peek()
		if r == close {
			t.advance()

			return trees, nil
		}

		switch {
		case r == ')' || r == ']' || r == '}':
			return nil, &Error{
				Msg:  "unexpected closing '" + string(r) + "'",
				Span: t.span(t.pos),
			}

		case r == '(' || r == '[' || r == '{':
			tree, err := t.group(Delim(r))
			if err != nil {
				return nil, err
			}

			trees = append(trees, tree)

		case r == '"' || r == '\'':
			tree, err := t.str(r)
			if err != nil {
				return nil, err
			}

			trees = append(trees, tree)

		case isIdentStart(r):
			trees = append(trees, t.ident())

		case unicode.IsDigit(r):
			trees = append(trees, t.number())

		default:
			trees = append(trees, t.punct())
		}
	}
}

// group scans a delimited subtree. The opening rune has not been consumed.
func (t *tokenizer) group(d Delim) (Tree, error) {
	start := t.pos
	line, col := t.line, t.col

	t.advance() // opening delimiter

	nodes, err := t.run(d.Close())
	if err != nil {
		return Tree{}, err
	}

	return Tree{
		Kind:  Group,
		Delim: d,
		Nodes: nodes,
		Span:  Span{Start: start, End: t.pos, Line: line, Col: col},
	}, nil
}

// str scans a quoted string literal, quotes included in Text.
func (t *tokenizer) str(quote rune) (Tree, error) {
	start := t.pos
	line, col := t.line, t.col

	t.advance() // opening quote

	for {
		if t.eof() {
			return Tree{}, &Error{
				Msg:  "unterminated string literal",
				Span: Span{Start: start, End: t.pos, Line: line, Col: col},
			}
		}

		r := t.peek()
		t.advance()

		if r == '\\' && !t.eof() {
			t.advance() // escaped rune

			continue
		}

		if r == quote {
			break
		}
	}

	return Tree{
		Kind: String,
		Text: t.src[start:t.pos],
		Span: Span{Start: start, End: t.pos, Line: line, Col: col},
	}, nil
}

// ident scans an identifier.
func (t *tokenizer) ident() Tree {
	start := t.pos
	line, col := t.line, t.col

	for !t.eof() && isIdentPart(t.peek()) {
		t.advance()
	}

	return Tree{
		Kind: Ident,
		Text: t.src[start:t.pos],
		Span: Span{Start: start, End: t.pos, Line: line, Col: col},
	}
}

// number scans a numeric literal. Digits, one optional fraction, and any
// identifier characters glued directly after the digits (a unit suffix)
// are all part of one token. "10px" is one Number; "10 px" is two tokens.
func (t *tokenizer) number() Tree {
	start := t.pos
	line, col := t.line, t.col

	for !t.eof() && unicode.IsDigit(t.peek()) {
		t.advance()
	}

	if !t.eof() && t.peek() == '.' && t.digitAfterDot() {
		t.advance()

		for !t.eof() && unicode.IsDigit(t.peek()) {
			t.advance()
		}
	}

	// Unit suffix
	for !t.eof() && isIdentPart(t.peek()) {
		t.advance()
	}

	return Tree{
		Kind: Number,
		Text: t.src[start:t.pos],
		Span: Span{Start: start, End: t.pos, Line: line, Col: col},
	}
}

// digitAfterDot reports whether the rune after the current '.' is a digit.
// Without this check "1." followed by a method call would mis-tokenize.
func (t *tokenizer) digitAfterDot() bool {
	_, size := utf8.DecodeRuneInString(t.src[t.pos:])

	next, _ := utf8.DecodeRuneInString(t.src[t.pos+size:])

	return unicode.IsDigit(next)
}

// punct scans one punctuation rune.
func (t *tokenizer) punct() Tree {
	start := t.pos
	line, col := t.line, t.col

	t.advance()

	return Tree{
		Kind: Punct,
		Text: t.src[start:t.pos],
		Span: Span{Start: start, End: t.pos, Line: line, Col: col},
	}
}

// skipSpace consumes whitespace and comments.
func (t *tokenizer) skipSpace() {
	for !t.eof() {
		r := t.peek()

		switch {
		case unicode.IsSpace(r):
			t.advance()

		case r == '/' && t.peekAt(1) == '/':
			for !t.eof() && t.peek() != '\n' {
				t.advance()
			}

		case r == '/' && t.peekAt(1) == '*':
			t.advance()
			t.advance()

			for !t.eof() {
				if t.peek() == '*' && t.peekAt(1) == '/' {
					t.advance()
					t.advance()

					break
				}

				t.advance()
			}

		default:
			return
		}
	}
}

func (t *tokenizer) eof() bool { return t.pos >= len(t.src) }

func (t *tokenizer) peek() rune {
	r, _ := utf8.DecodeRuneInString(t.src[t.pos:])

	return r
}

// peekAt returns the rune n runes past the current position.
func (t *tokenizer) peekAt(n int) rune {
	pos := t.pos

	for range n {
		_, size := utf8.DecodeRuneInString(t.src[pos:])
		pos += size

		if pos >= len(t.src) {
			return 0
		}
	}

	r, _ := utf8.DecodeRuneInString(t.src[pos:])

	return r
}

func (t *tokenizer) advance() {
	r, size := utf8.DecodeRuneInString(t.src[t.pos:])
	t.pos += size

	if r == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
}

func (t *tokenizer) span(start int) Span {
	return Span{Start: start, End: t.pos, Line: t.line, Col: t.col}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Quote returns the text of a String token with quotes and escapes removed.
// Non-string text is returned unchanged.
func Quote(text string) string {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if unquoted, err := strconv.Unquote(`"` + text[1:len(text)-1] + `"`); err == nil {
				return unquoted
			}

			return text[1 : len(text)-1]
		}
	}

	return text
}
