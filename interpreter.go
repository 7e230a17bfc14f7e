package graffle2svg

import (
	"fmt"
	"log"
	"os"
)

// ErrorMode determines how the Interpreter treats a graphic it cannot
// read, such as one with malformed bounds.
type ErrorMode int

const (
	// WarnErrorMode logs the problem and skips the graphic.
	WarnErrorMode ErrorMode = iota
	// IgnoreErrorMode skips the graphic silently.
	IgnoreErrorMode
	// StrictErrorMode stops the walk and returns the error.
	StrictErrorMode
)

// Graphic classes the Interpreter draws.
const (
	ShapedGraphic = "ShapedGraphic"
	LineGraphic   = "LineGraphic"
	GroupGraphic  = "Group"
)

// Interpreter walks a Graffle graphics list and draws it on a Target.
type Interpreter struct {
	// BoundingBox, when set, culls every graphic lying entirely outside it.
	BoundingBox *Rect
	// OutOfBoundingBox decides culling. It defaults to the package level
	// OutOfBoundingBox.
	OutOfBoundingBox func(g Geometry, box Rect) bool
	ErrorMode        ErrorMode
	Logger           *log.Logger

	target Target
	scope  *Scope
}

// NewInterpreter returns an Interpreter without target or bounding box.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		OutOfBoundingBox: OutOfBoundingBox,
		Logger:           log.New(os.Stderr, "graffle2svg: ", 0),
		scope:            NewScope(),
	}
}

// SetTarget binds the target that receives the drawing calls.
func (gi *Interpreter) SetTarget(t Target) {
	gi.target = t
}

// IterateGraphics draws graphics in document order. Groups are walked
// recursively, each level inheriting the style of its parents.
func (gi *Interpreter) IterateGraphics(graphics Array) error {
	if gi.target == nil {
		return fmt.Errorf("graffle2svg: no target set")
	}
	if gi.scope == nil {
		gi.scope = NewScope()
	}
	for i, v := range graphics {
		g, ok := v.(*Dict)
		if !ok {
			if err := gi.fail(fmt.Errorf("graphic %d is not a dict", i)); err != nil {
				return err
			}
			continue
		}
		if err := gi.graphic(g); err != nil {
			return err
		}
	}
	return nil
}

func (gi *Interpreter) graphic(g *Dict) error {
	class, _ := g.Text("Class")
	id, _ := g.Text("ID")

	var (
		bounds Rect
		points []Point
		geom   Geometry
		err    error
	)
	switch class {
	case ShapedGraphic:
		s, _ := g.Text("Bounds")
		if bounds, err = ParseBounds(s); err != nil {
			return gi.fail(fmt.Errorf("graphic %s: %s", id, err))
		}
		geom = bounds.Geometry()
	case LineGraphic:
		if points, err = linePoints(g); err != nil {
			return gi.fail(fmt.Errorf("graphic %s: %s", id, err))
		}
		geom = points
	case GroupGraphic:
		// children are culled one by one
	default:
		gi.warn("graphic %s: skipping unknown class %q", id, class)
		return nil
	}

	if gi.BoundingBox != nil && class != GroupGraphic && gi.outside(geom) {
		return nil
	}

	style, _ := g.Dict("Style")
	gi.scope.Push(style)
	defer gi.scope.Pop()

	switch class {
	case ShapedGraphic:
		gi.target.SetGraffleStyle(gi.scope.Top())
		gi.target.AddRect(bounds, gi.scope.Top(), id)
		if text := graphicText(g); text != "" {
			gi.target.AddText(bounds, text, gi.scope.Top(), id)
		}
	case LineGraphic:
		gi.target.SetGraffleStyle(gi.scope.Top())
		gi.target.AddPath(points, gi.scope.Top(), id)
	case GroupGraphic:
		children, _ := g.Array("Graphics")
		return gi.IterateGraphics(children)
	}
	return nil
}

func (gi *Interpreter) outside(g Geometry) bool {
	out := gi.OutOfBoundingBox
	if out == nil {
		out = OutOfBoundingBox
	}
	return out(g, *gi.BoundingBox)
}

// fail applies the error mode to err. It returns err only in strict mode.
func (gi *Interpreter) fail(err error) error {
	switch gi.ErrorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		gi.warn("%s", err)
	}
	return nil
}

func (gi *Interpreter) warn(format string, args ...interface{}) {
	if gi.ErrorMode != WarnErrorMode || gi.Logger == nil {
		return
	}
	gi.Logger.Printf(format, args...)
}

func linePoints(g *Dict) ([]Point, error) {
	list, ok := g.Array("Points")
	if !ok {
		return nil, fmt.Errorf("line without Points")
	}
	texts := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := TextOf(v)
		if !ok {
			return nil, fmt.Errorf("point is not a string")
		}
		texts = append(texts, s)
	}
	return ParsePoints(texts)
}

// graphicText returns the plain text of a shape's Text dictionary.
func graphicText(g *Dict) string {
	t, ok := g.Dict("Text")
	if !ok {
		return ""
	}
	s, _ := t.Text("Text")
	return PlainText(s)
}
