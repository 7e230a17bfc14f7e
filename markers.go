package graffle2svg

import (
	"fmt"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	markerPrefix = "Arrow1L"
	markerStart  = "start"
	markerEnd    = "end"

	// arrow1LPath is a long filled arrow pointing left with its tip at 0,0.
	arrow1LPath = "M 0,0 L 5,-5 L -12.5,0 L 5,5 L 0,0 z"
)

// marker holds the parameters encoded in a marker id.
type marker struct {
	Direction string
	Color     string
	Width     float64
}

// markerID encodes a marker's visual parameters, e.g.
// "Arrow1Lend_808080_1.000000px".
func markerID(direction, color string, width float64) string {
	return fmt.Sprintf("%s%s_%s_%fpx", markerPrefix, direction, color, width)
}

func parseMarkerID(id string) (marker, error) {
	var m marker
	parts := strings.Split(strings.TrimPrefix(id, markerPrefix), "_")
	if !strings.HasPrefix(id, markerPrefix) || len(parts) != 3 {
		return m, fmt.Errorf("marker id %q: not of the form %sdir_color_widthpx", id, markerPrefix)
	}
	m.Direction, m.Color = parts[0], parts[1]
	if m.Direction != markerStart && m.Direction != markerEnd {
		return m, fmt.Errorf("marker id %q: unknown direction %q", id, m.Direction)
	}
	w, err := strconv.ParseFloat(strings.TrimSuffix(parts[2], "px"), 64)
	if err != nil {
		return m, fmt.Errorf("marker id %q: %s", id, err)
	}
	m.Width = w
	return m, nil
}

func (m marker) transform() string {
	scale := 0.8 * m.Width
	if m.Direction == markerEnd {
		return fmt.Sprintf("scale(%g) rotate(180) translate(12.5,0)", scale)
	}
	return fmt.Sprintf("scale(%g) translate(12.5,0)", scale)
}

// writeMarker emits one <marker> whose shape is decoded from id.
func writeMarker(canvas *svg.SVG, id string) error {
	m, err := parseMarkerID(id)
	if err != nil {
		return err
	}
	canvas.Marker(id, 0, 0, 10, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`, `style="overflow:visible"`)
	canvas.Path(arrow1LPath,
		fmt.Sprintf(`style="fill:#%s;fill-rule:evenodd;stroke:#%s;stroke-width:1pt"`, m.Color, m.Color),
		fmt.Sprintf(`transform="%s"`, m.transform()))
	canvas.MarkerEnd()
	return nil
}
