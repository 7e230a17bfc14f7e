package graffle2svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	gl "github.com/rustyoz/genericlexer"
)

// Point is an X,Y coordinate on the Graffle canvas. Y grows downwards.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Point
}

// Geometry is the set of points whose extent a graphic covers: the two
// corners of a shape's bounds, or every point of a line.
type Geometry []Point

// Width of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center of the rectangle.
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Geometry returns the corners of r.
func (r Rect) Geometry() Geometry {
	return Geometry{r.Min, r.Max}
}

// Overlaps reports whether r and o share at least one point. Touching
// edges count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Union returns the smallest rectangle holding both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Extent returns the bounding rectangle of g and false when g is empty.
func Extent(g Geometry) (Rect, bool) {
	if len(g) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: g[0], Max: g[0]}
	for _, p := range g[1:] {
		r = r.Union(Rect{Min: p, Max: p})
	}
	return r, true
}

// OutOfBoundingBox reports whether g lies entirely outside box. A graphic
// that only partially overlaps the box is not out of it. An empty
// geometry has nothing to show and is always out.
func OutOfBoundingBox(g Geometry, box Rect) bool {
	ext, ok := Extent(g)
	if !ok {
		return true
	}
	return !ext.Overlaps(box)
}

// ParsePoint parses a "{x, y}" point.
func ParsePoint(s string) (Point, error) {
	n, err := parseNumbers(s)
	if err != nil {
		return Point{}, err
	}
	if len(n) != 2 {
		return Point{}, fmt.Errorf("point %q: expected 2 numbers, found %d", s, len(n))
	}
	return Point{n[0], n[1]}, nil
}

// ParseBounds parses "{{x, y}, {w, h}}" bounds into a rectangle.
func ParseBounds(s string) (Rect, error) {
	n, err := parseNumbers(s)
	if err != nil {
		return Rect{}, err
	}
	if len(n) != 4 {
		return Rect{}, fmt.Errorf("bounds %q: expected 4 numbers, found %d", s, len(n))
	}
	return Rect{Min: Point{n[0], n[1]}, Max: Point{n[0] + n[2], n[1] + n[3]}}, nil
}

// ParsePoints parses a list of "{x, y}" points.
func ParsePoints(list []string) ([]Point, error) {
	points := make([]Point, 0, len(list))
	for _, s := range list {
		p, err := ParsePoint(s)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

var braces = strings.NewReplacer("{", " ", "}", " ", "\r", " ")

// checkTuple rejects anything the lexer would silently cut short: the
// tuple must be wrapped in balanced braces and hold only numbers, commas
// and white space.
func checkTuple(s string) error {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "{") || !strings.HasSuffix(t, "}") {
		return fmt.Errorf("tuple %q: not enclosed in braces", s)
	}
	depth := 0
	prev := ' '
	for _, r := range t {
		switch {
		case r == '{':
			depth++
		case r == '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("tuple %q: unbalanced braces", s)
			}
		case r == '.':
			if prev < '0' || prev > '9' {
				return fmt.Errorf("tuple %q: unexpected '.'", s)
			}
		case r >= '0' && r <= '9', r == '+', r == '-', r == 'e', r == ',':
		case r == ' ', r == '\t', r == '\n', r == '\r':
		default:
			return fmt.Errorf("tuple %q: unexpected %q", s, r)
		}
		prev = r
	}
	if depth != 0 {
		return fmt.Errorf("tuple %q: unbalanced braces", s)
	}
	return nil
}

// parseNumbers lexes every number out of a brace delimited tuple.
func parseNumbers(s string) ([]float64, error) {
	if err := checkTuple(s); err != nil {
		return nil, err
	}
	l, items := gl.Lex("tuple", braces.Replace(s))
	// the lexer goroutine only exits once its channel is drained
	defer func() {
		for range items {
		}
	}()

	var numbers []float64
	for {
		l.ConsumeWhiteSpace()
		i := l.NextItem()
		switch {
		case i.Type == gl.ItemEOS:
			return numbers, nil
		case i.Type == gl.ItemNumber:
			n, err := strconv.ParseFloat(i.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("tuple %q: %s", s, err)
			}
			numbers = append(numbers, n)
			l.ConsumeWhiteSpace()
			l.ConsumeComma()
		default:
			return nil, fmt.Errorf("tuple %q: unexpected %q", s, i.Value)
		}
	}
}
