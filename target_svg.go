package graffle2svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	svg "github.com/ajstarks/svgo"
	mt "github.com/rustyoz/Mtransform"
)

const (
	defaultFontFamily = "Helvetica"
	defaultFontSize   = 12.0
	defaultStroke     = "000000"
	defaultFill       = "ffffff"
	lineHeight        = 1.2
)

// TargetSvg is a Target that builds an SVG document. A TargetSvg holds the
// state of one conversion; call Reset before reusing it.
type TargetSvg struct {
	// style holds the presentation attributes computed by the last
	// SetGraffleStyle call.
	style        map[string]string
	defs         *svgDefs
	dom          *svgDocument
	currentLayer *svgLayer
	requiredDefs map[string]struct{}

	transform  mt.Transform
	scale      float64
	viewBox    *Rect
	fontFamily string
	fontSize   float64
	anonymous  int
}

// svgDefs lists the marker ids to emit, in order of first use.
type svgDefs struct {
	markers []string
}

// svgDocument is the root of the accumulated document.
type svgDocument struct {
	layers    []*svgLayer
	extent    Rect
	hasExtent bool
}

// svgLayer is a top level <g> holding graphics.
type svgLayer struct {
	id       string
	name     string
	elements []interface{}
}

// TargetOption configures a TargetSvg.
type TargetOption func(*TargetSvg)

// WithScale multiplies every output coordinate by s. Values <= 0 are
// ignored.
func WithScale(s float64) TargetOption {
	return func(t *TargetSvg) {
		if s > 0 {
			t.scale = s
		}
	}
}

// WithFont sets the font used for text.
func WithFont(family string, size float64) TargetOption {
	return func(t *TargetSvg) {
		if family != "" {
			t.fontFamily = family
		}
		if size > 0 {
			t.fontSize = size
		}
	}
}

// NewTargetSvg returns a reset TargetSvg.
func NewTargetSvg(opts ...TargetOption) *TargetSvg {
	t := &TargetSvg{
		scale:      1,
		fontFamily: defaultFontFamily,
		fontSize:   defaultFontSize,
	}
	for _, o := range opts {
		o(t)
	}
	t.Reset()
	return t
}

// Reset implements Target.
func (t *TargetSvg) Reset() {
	t.style = make(map[string]string)
	t.defs = &svgDefs{}
	t.dom = &svgDocument{}
	t.requiredDefs = make(map[string]struct{})
	t.viewBox = nil
	t.anonymous = 0
	t.transform = mt.Identity()
	if t.scale > 0 && t.scale != 1 {
		t.transform.Scale(t.scale, t.scale)
	}
	t.currentLayer = nil
	t.NewLayer("Layer 1")
}

// NewLayer implements Layerer. An empty current layer is renamed instead
// of leaving an empty group behind.
func (t *TargetSvg) NewLayer(name string) {
	if l := t.currentLayer; l != nil && len(l.elements) == 0 {
		l.name = name
		return
	}
	l := &svgLayer{id: fmt.Sprintf("Layer%d", len(t.dom.layers)+1), name: name}
	t.dom.layers = append(t.dom.layers, l)
	t.currentLayer = l
}

// SetViewBox fixes the visible area of the output to box, in Graffle
// coordinates. Without a view box the canvas grows to fit the content.
func (t *TargetSvg) SetViewBox(box Rect) {
	t.viewBox = &box
}

// Style returns the current presentation attributes.
func (t *TargetSvg) Style() map[string]string {
	return t.style
}

// RequiredDefs returns the marker ids referenced so far, sorted.
func (t *TargetSvg) RequiredDefs() []string {
	ids := make([]string, 0, len(t.requiredDefs))
	for id := range t.requiredDefs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasRequiredDef reports whether the marker id has been referenced.
func (t *TargetSvg) HasRequiredDef(id string) bool {
	_, ok := t.requiredDefs[id]
	return ok
}

// SetGraffleStyle implements Target. It translates the Graffle stroke and
// fill dictionaries into SVG presentation attributes, and records a marker
// for every arrow head or tail.
func (t *TargetSvg) SetGraffleStyle(style *Dict) {
	attrs := make(map[string]string)

	stroke, _ := style.Dict("stroke")
	color := defaultStroke
	if c, ok := stroke.Dict("Color"); ok {
		color = colorHex(c)
	}
	width := 1.0
	if w, ok := stroke.Float("Width"); ok && w >= 0 {
		width = w
	}
	if draws(stroke) {
		attrs["stroke"] = "#" + color
		attrs["stroke-width"] = fmt.Sprintf("%g", width)
		if p, ok := stroke.Float("Pattern"); ok {
			if dash := dashArray(int(p), width); dash != "" {
				attrs["stroke-dasharray"] = dash
			}
		}
	} else {
		attrs["stroke"] = "none"
	}

	fill, _ := style.Dict("fill")
	switch c, ok := fill.Dict("Color"); {
	case !draws(fill):
		attrs["fill"] = "none"
	case ok:
		attrs["fill"] = "#" + colorHex(c)
	default:
		attrs["fill"] = "#" + defaultFill
	}

	if arrow, ok := stroke.Text("HeadArrow"); ok && hasArrow(arrow) {
		attrs["marker-end"] = t.requireMarker(markerEnd, color, width)
	}
	if arrow, ok := stroke.Text("TailArrow"); ok && hasArrow(arrow) {
		attrs["marker-start"] = t.requireMarker(markerStart, color, width)
	}

	t.style = attrs
}

// requireMarker records the marker and returns the attribute value that
// references it.
func (t *TargetSvg) requireMarker(direction, color string, width float64) string {
	id := markerID(direction, color, width)
	if _, ok := t.requiredDefs[id]; !ok {
		t.requiredDefs[id] = struct{}{}
		t.defs.markers = append(t.defs.markers, id)
	}
	return "url(#" + id + ")"
}

// AddRect implements Target.
func (t *TargetSvg) AddRect(bounds Rect, style *Dict, id string) {
	r := t.apply(bounds)
	rect := Rectangle{
		ID:     t.elementID(id, ""),
		X:      r.Min.X,
		Y:      r.Min.Y,
		Width:  r.Width(),
		Height: r.Height(),
		Style:  styleString(t.shapeStyle()),
	}
	stroke, _ := style.Dict("stroke")
	if cr, ok := stroke.Float("CornerRadius"); ok && cr > 0 {
		rect.Rx = cr * t.scale
		rect.Ry = rect.Rx
	}
	t.add(rect, r)
}

// AddPath implements Target. Lines are never filled.
func (t *TargetSvg) AddPath(points []Point, style *Dict, id string) {
	if len(points) == 0 {
		return
	}
	attrs := t.shapeStyle()
	attrs["fill"] = "none"

	var d strings.Builder
	transformed := make(Geometry, len(points))
	for i, p := range points {
		x, y := t.transform.Apply(p.X, p.Y)
		transformed[i] = Point{x, y}
		cmd := "L"
		if i == 0 {
			cmd = "M"
		} else {
			d.WriteByte(' ')
		}
		fmt.Fprintf(&d, "%s %g %g", cmd, x, y)
	}
	ext, _ := Extent(transformed)
	t.add(PathElement{ID: t.elementID(id, ""), D: d.String(), Style: styleString(attrs)}, ext)
}

// AddText implements Target. The text is centred in bounds, one tspan per
// line.
func (t *TargetSvg) AddText(bounds Rect, text string, style *Dict, id string) {
	lines := strings.Split(text, "\n")
	r := t.apply(bounds)
	c := r.Center()
	size := t.fontSize * t.scale

	el := TextElement{
		ID: t.elementID(id, "-text"),
		X:  c.X,
		// centre the block of lines, 0.35em lowers the baseline to the middle
		Y: c.Y - float64(len(lines)-1)*size*lineHeight/2 + 0.35*size,
		Style: styleString(map[string]string{
			"font-family": t.fontFamily,
			"font-size":   fmt.Sprintf("%gpx", size),
			"text-anchor": "middle",
			"fill":        "#" + defaultStroke,
			"stroke":      "none",
		}),
	}
	for i, line := range lines {
		dy := "0"
		if i > 0 {
			dy = fmt.Sprintf("%gem", lineHeight)
		}
		el.Lines = append(el.Lines, TSpan{X: c.X, Dy: dy, Value: line})
	}
	t.add(el, r)
}

// Bytes serializes the document.
func (t *TargetSvg) Bytes() ([]byte, error) {
	var b bytes.Buffer
	canvas := svg.New(&b)

	if t.viewBox != nil {
		v := t.apply(*t.viewBox)
		w, h := int(math.Ceil(v.Width())), int(math.Ceil(v.Height()))
		canvas.Startview(w, h, int(math.Floor(v.Min.X)), int(math.Floor(v.Min.Y)), w, h)
	} else {
		var w, h int
		if t.dom.hasExtent {
			w = int(math.Ceil(math.Max(t.dom.extent.Max.X, 0)))
			h = int(math.Ceil(math.Max(t.dom.extent.Max.Y, 0)))
		}
		canvas.Start(w, h)
	}

	canvas.Def()
	for _, id := range t.defs.markers {
		if err := writeMarker(canvas, id); err != nil {
			return nil, err
		}
	}
	canvas.DefEnd()

	enc := xml.NewEncoder(canvas.Writer)
	for _, l := range t.dom.layers {
		if len(l.elements) == 0 {
			continue
		}
		canvas.Gid(l.id)
		canvas.Title(l.name)
		for _, el := range l.elements {
			if err := enc.Encode(el); err != nil {
				return nil, fmt.Errorf("error encoding element: %s", err)
			}
			io.WriteString(canvas.Writer, "\n")
		}
		canvas.Gend()
	}
	canvas.End()
	return b.Bytes(), nil
}

// WriteTo implements io.WriterTo. Nothing is written if serialization
// fails.
func (t *TargetSvg) WriteTo(w io.Writer) (int64, error) {
	b, err := t.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

func (t *TargetSvg) add(el interface{}, extent Rect) {
	t.currentLayer.elements = append(t.currentLayer.elements, el)
	if t.dom.hasExtent {
		t.dom.extent = t.dom.extent.Union(extent)
	} else {
		t.dom.extent = extent
		t.dom.hasExtent = true
	}
}

// apply transforms both corners of r.
func (t *TargetSvg) apply(r Rect) Rect {
	x0, y0 := t.transform.Apply(r.Min.X, r.Min.Y)
	x1, y1 := t.transform.Apply(r.Max.X, r.Max.Y)
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

func (t *TargetSvg) shapeStyle() map[string]string {
	attrs := make(map[string]string, len(t.style))
	for k, v := range t.style {
		attrs[k] = v
	}
	return attrs
}

// elementID names an element after its Graffle graphic id. Graffle numbers
// graphics per sheet, so elements outside the first layer carry the layer
// id as a prefix.
func (t *TargetSvg) elementID(id, suffix string) string {
	if id == "" {
		t.anonymous++
		id = fmt.Sprintf("_%d", t.anonymous)
	}
	id = "Graphic" + id + suffix
	if l := t.currentLayer; l != nil && len(t.dom.layers) > 0 && l != t.dom.layers[0] {
		id = l.id + "-" + id
	}
	return id
}

// draws is false when a stroke, fill or shadow dictionary is switched off.
func draws(d *Dict) bool {
	v, ok := d.Text("Draws")
	return !ok || v != "NO"
}

// hasArrow is false for the "0" Graffle writes when a line end has no
// arrow.
func hasArrow(kind string) bool {
	return kind != "" && kind != "0"
}

// dashArray maps a Graffle stroke pattern number to a dash array scaled by
// the stroke width. Pattern 0 is a solid line.
func dashArray(pattern int, width float64) string {
	var dashes []float64
	switch pattern {
	case 0:
		return ""
	case 1:
		dashes = []float64{4, 4}
	case 2:
		dashes = []float64{1, 3}
	case 3:
		dashes = []float64{8, 4}
	case 4:
		dashes = []float64{8, 4, 1, 4}
	default:
		dashes = []float64{4, 2}
	}
	if width <= 0 {
		width = 1
	}
	parts := make([]string, len(dashes))
	for i, d := range dashes {
		parts[i] = fmt.Sprintf("%g", d*width)
	}
	return strings.Join(parts, ",")
}
