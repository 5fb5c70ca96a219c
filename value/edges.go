package value

import (
	"fmt"
	"strings"
)

// Edges is a per-side rectangle of lengths, as produced by the CSS-style
// 1 to 4 value shorthand.
type Edges struct {
	Top, Right, Bottom, Left Value
}

func (e Edges) String() string {
	return fmt.Sprintf("%s %s %s %s", e.Top, e.Right, e.Bottom, e.Left)
}

// ParseEdges parses 1 to 4 whitespace-separated length literals, where
// '_' omits a position and leaves it at the default:
//
//	a           all four sides
//	v h         top/bottom, left/right
//	t h b       top, left/right, bottom
//	t r b l     each side
func ParseEdges(s string) (Edges, error) {
	vals, err := parseOmitList(s)
	if err != nil {
		return Edges{}, err
	}

	switch len(vals) {
	case 1:
		return Edges{Top: vals[0], Right: vals[0], Bottom: vals[0], Left: vals[0]}, nil

	case 2:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil

	case 3:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil

	default:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
}

// Corners is a per-corner set of lengths for the radius shorthand.
type Corners struct {
	TopLeft, TopRight, BottomRight, BottomLeft Value
}

func (c Corners) String() string {
	return fmt.Sprintf("%s %s %s %s", c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft)
}

// ParseCorners parses 1 to 4 whitespace-separated length literals into
// corner radii, clockwise from top-left:
//
//	a           all four corners
//	t b         both top, both bottom
//	tl tr b     top-left, top-right, both bottom
//	tl tr br bl each corner
func ParseCorners(s string) (Corners, error) {
	vals, err := parseOmitList(s)
	if err != nil {
		return Corners{}, err
	}

	switch len(vals) {
	case 1:
		return Corners{TopLeft: vals[0], TopRight: vals[0], BottomRight: vals[0], BottomLeft: vals[0]}, nil

	case 2:
		return Corners{TopLeft: vals[0], TopRight: vals[0], BottomRight: vals[1], BottomLeft: vals[1]}, nil

	case 3:
		return Corners{TopLeft: vals[0], TopRight: vals[1], BottomRight: vals[2], BottomLeft: vals[2]}, nil

	default:
		return Corners{TopLeft: vals[0], TopRight: vals[1], BottomRight: vals[2], BottomLeft: vals[3]}, nil
	}
}

func parseOmitList(s string) ([]Value, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return nil, fmt.Errorf("%w: expected 1-4 values or '_', got %d", ErrSyntax, len(fields))
	}

	vals := make([]Value, len(fields))

	for i, f := range fields {
		if f == "_" {
			continue
		}

		v, err := Parse(f)
		if err != nil {
			return nil, err
		}

		vals[i] = v
	}

	return vals, nil
}
