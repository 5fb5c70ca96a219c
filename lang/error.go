package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tnthung/bevy-toolbox/lang/token"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput     = NewError("failed to read input")
	ErrTokenize      = NewError("tokenization failed")
	ErrParse         = NewError("parse failed")
	ErrResolve       = NewError("resolution failed")
	ErrGenerate      = NewError("code generation failed")
	ErrFormatSource  = NewError("generated source formatting failed")
	ErrExprCompile   = NewError("expression compilation failed")
	ErrExprEvaluate  = NewError("expression evaluation failed")
	ErrCondNotBool   = NewError("flow condition is not a boolean")
	ErrNotIterable   = NewError("for-loop expression is not iterable")
	ErrApplyAborted  = NewError("construct has fatal diagnostics")
	ErrNoSpawner     = NewError("no spawner capability provided")
	ErrMethodUnknown = NewError("spawner does not implement method dispatch")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Category classifies a diagnostic.
type Category int

const (
	// SyntaxError is malformed grammar: unterminated group, missing
	// parentheses, extension after a children group. Fatal to the construct.
	SyntaxError Category = iota

	// DuplicateBinding is the same name declared twice in one scope frame.
	DuplicateBinding

	// InsertionTargetNotLocal is '+' on a name without a visible local
	// binding. Insertion requires having observed the creation call.
	InsertionTargetNotLocal

	// ExternalReference notes a reference that fell through every visible
	// scope frame and is passed to the host context verbatim. Non-fatal.
	ExternalReference
)

// String returns the diagnostic category name.
func (c Category) String() string {
	switch c {
	case SyntaxError:
		return "syntax error"
	case DuplicateBinding:
		return "duplicate binding"
	case InsertionTargetNotLocal:
		return "insertion target not local"
	case ExternalReference:
		return "external reference"
	default:
		return "unknown"
	}
}

// Fatal reports whether the category aborts generation for its construct.
func (c Category) Fatal() bool {
	return c != ExternalReference
}

// Diagnostic carries one compile-time finding with its source span.
type Diagnostic struct {
	Category Category
	Span     token.Span
	Msg      string
	Note     string // optional hint, e.g. a close-match suggestion
}

// Render formats the diagnostic with a caret snippet of the source line.
func (d Diagnostic) Render(source string) string {
	var buf strings.Builder

	buf.WriteString(d.Category.String())
	buf.WriteString(" at line ")
	buf.WriteString(strconv.Itoa(d.Span.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(d.Span.Col))
	buf.WriteString(": ")
	buf.WriteString(d.Msg)
	buf.WriteRune('\n')

	lines := strings.Split(source, "\n")
	if d.Span.Line > 0 && d.Span.Line <= len(lines) {
		line := lines[d.Span.Line-1]

		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(d.Span.Line))
		buf.WriteString(" | ")
		buf.WriteString(line)
		buf.WriteRune('\n')

		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		lineNumWidth := len(strconv.Itoa(d.Span.Line))
		buf.WriteString(strings.Repeat(" ", lineNumWidth+5))

		// Echo tabs from the source line so the caret stays aligned on
		// tab-indented lines.
		remain := d.Span.Col - 1
		for _, r := range line {
			if remain <= 0 {
				break
			}

			if r == '\t' {
				buf.WriteRune('\t')
			} else {
				buf.WriteRune(' ')
			}

			remain--
		}

		buf.WriteString("^\n")
	}

	if d.Note != "" {
		buf.WriteString("  note: ")
		buf.WriteString(d.Note)
		buf.WriteRune('\n')
	}

	return buf.String()
}

// DiagnosticError aggregates every diagnostic for a source into one error.
type DiagnosticError struct {
	Diags  []Diagnostic
	Source string
}

// Error implements the error interface by rendering each fatal diagnostic
// with its caret snippet.
func (e *DiagnosticError) Error() string {
	var buf strings.Builder

	for _, d := range e.Diags {
		if !d.Category.Fatal() {
			continue
		}

		buf.WriteString(d.Render(e.Source))
	}

	if buf.Len() == 0 {
		return "compile failed"
	}

	return strings.TrimRight(buf.String(), "\n")
}

// LogValue implements slog.LogValuer.
func (e *DiagnosticError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.Diags))

	for i, d := range e.Diags {
		attrs = append(attrs, slog.Group(
			strconv.Itoa(i),
			slog.String("category", d.Category.String()),
			slog.String("span", d.Span.String()),
			slog.String("msg", d.Msg),
		))
	}

	return slog.GroupValue(attrs...)
}
