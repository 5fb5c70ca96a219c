// Package value parses length literals: a number with a required unit
// suffix, a percentage, or the automatic sizing marker.
//
// Grammar:
//
//	v ::= 'auto' | '@' | number '%' | number ('px'|'vw'|'vh'|'vmin'|'vmax')
//
// The unit must follow the number immediately; whitespace between them
// is rejected.
package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind tags the unit of a Value. The zero Kind is Auto, so the zero
// Value is the automatic sizing marker.
type Kind uint8

const (
	Auto Kind = iota
	Px
	Percent
	Vw
	Vh
	Vmin
	Vmax
)

var kindNames = map[Kind]string{
	Auto:    "auto",
	Px:      "px",
	Percent: "%",
	Vw:      "vw",
	Vh:      "vh",
	Vmin:    "vmin",
	Vmax:    "vmax",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "invalid"
}

// Value is one parsed length. Amount is meaningless when Kind is Auto.
type Value struct {
	Kind   Kind
	Amount float64
}

// New constructs a Value.
func New(k Kind, amount float64) Value {
	if k == Auto {
		return Value{}
	}

	return Value{Kind: k, Amount: amount}
}

func (v Value) String() string {
	if v.Kind == Auto {
		return "auto"
	}

	return strconv.FormatFloat(v.Amount, 'f', -1, 64) + v.Kind.String()
}

var (
	// ErrSyntax reports a malformed length literal.
	ErrSyntax = errors.New("invalid length literal")

	// ErrUnit reports a missing or unknown unit suffix.
	ErrUnit = errors.New("invalid unit, expected px, vw, vh, vmin, vmax or %")
)

var units = map[string]Kind{
	"%":    Percent,
	"px":   Px,
	"vw":   Vw,
	"vh":   Vh,
	"vmin": Vmin,
	"vmax": Vmax,
}

// Parse parses one length literal. The input is trimmed first, but any
// interior whitespace, including between number and unit, is an error.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)

	switch s {
	case "":
		return Value{}, fmt.Errorf("%w: empty input", ErrSyntax)

	case "auto", "@":
		return Value{}, nil
	}

	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return Value{}, fmt.Errorf("%w: %q contains whitespace", ErrSyntax, s)
	}

	num, unit := splitUnit(s)
	if num == "" {
		return Value{}, fmt.Errorf("%w: %q has no number", ErrSyntax, s)
	}

	amount, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	kind, ok := units[unit]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnit, s)
	}

	return Value{Kind: kind, Amount: amount}, nil
}

// splitUnit cuts the literal at the end of its numeric prefix.
func splitUnit(s string) (num, unit string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}

	return s[:i], s[i:]
}
