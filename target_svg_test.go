package graffle2svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMkHex(t *testing.T) {
	data := []struct {
		value float64
		hex   string
	}{
		{0.0, "00"},
		{1.0, "ff"},
		{1.0 / 255, "01"},
		{15.0 / 255, "0f"},
		{254.0 / 255, "fe"},
		{0.5, "80"},
		{-0.2, "00"},
		{1.7, "ff"},
	}
	for _, test := range data {
		require.Equal(t, test.hex, MkHex(test.value), "MkHex(%v)", test.value)
	}
}

func TestReset(t *testing.T) {
	ts := NewTargetSvg()
	ts.SetGraffleStyle(arrowStyle("HeadArrow"))
	ts.AddRect(Rect{Point{0, 0}, Point{1, 1}}, NewDict(), "1")

	ts.Reset()
	require.NotNil(t, ts.style)
	require.NotNil(t, ts.defs)
	require.NotNil(t, ts.dom)
	require.NotNil(t, ts.currentLayer)
	require.NotNil(t, ts.requiredDefs)
	require.Empty(t, ts.requiredDefs)
	require.Empty(t, ts.currentLayer.elements)
	require.Empty(t, ts.Style())
}

func arrowStyle(end string) *Dict {
	return dictOf("stroke", dictOf(
		"Color", dictOf("r", Real("0.5"), "g", Real("0.5"), "b", Real("0.5")),
		end, String("FilledArrow"),
	))
}

func TestArrowHeadColor(t *testing.T) {
	ts := NewTargetSvg()
	ts.SetGraffleStyle(arrowStyle("HeadArrow"))
	require.Equal(t, "url(#Arrow1Lend_808080_1.000000px)", ts.Style()["marker-end"])
	require.True(t, ts.HasRequiredDef("Arrow1Lend_808080_1.000000px"))
	_, ok := ts.Style()["marker-start"]
	require.False(t, ok)
}

func TestArrowTailColor(t *testing.T) {
	ts := NewTargetSvg()
	ts.SetGraffleStyle(arrowStyle("TailArrow"))
	require.Equal(t, "url(#Arrow1Lstart_808080_1.000000px)", ts.Style()["marker-start"])
	require.True(t, ts.HasRequiredDef("Arrow1Lstart_808080_1.000000px"))
}

func TestArrowWidthAndNone(t *testing.T) {
	ts := NewTargetSvg()
	ts.SetGraffleStyle(dictOf("stroke", dictOf(
		"Width", Real("2.5"),
		"HeadArrow", String("0"),
		"TailArrow", String("Arrow"),
	)))
	require.Equal(t, "url(#Arrow1Lstart_000000_2.500000px)", ts.Style()["marker-start"])
	_, ok := ts.Style()["marker-end"]
	require.False(t, ok, `"0" means no arrow`)
	require.Equal(t, []string{"Arrow1Lstart_000000_2.500000px"}, ts.RequiredDefs())
}

func TestPresentationAttributes(t *testing.T) {
	ts := NewTargetSvg()
	ts.SetGraffleStyle(NewDict())
	require.Equal(t, map[string]string{
		"stroke":       "#000000",
		"stroke-width": "1",
		"fill":         "#ffffff",
	}, ts.Style())

	ts.SetGraffleStyle(dictOf(
		"stroke", dictOf("Draws", String("NO")),
		"fill", dictOf("Color", dictOf("w", Real("0.2"))),
	))
	require.Equal(t, map[string]string{
		"stroke": "none",
		"fill":   "#333333",
	}, ts.Style())

	ts.SetGraffleStyle(dictOf(
		"stroke", dictOf("Pattern", Integer("1"), "Width", Integer("2")),
		"fill", dictOf("Draws", String("NO"), "Color", dictOf("r", Real("1"), "g", Real("0"), "b", Real("0"))),
	))
	require.Equal(t, "4,4", dashArray(1, 1))
	require.Equal(t, "8,8", ts.Style()["stroke-dasharray"])
	require.Equal(t, "none", ts.Style()["fill"])
}

func TestRequiredDefsDeduplicate(t *testing.T) {
	ts := NewTargetSvg()
	for i := 0; i < 3; i++ {
		ts.SetGraffleStyle(arrowStyle("HeadArrow"))
		ts.AddPath([]Point{{0, 0}, {10, 10}}, NewDict(), "4")
	}
	ts.SetGraffleStyle(arrowStyle("TailArrow"))
	require.Len(t, ts.RequiredDefs(), 2)

	// a later style without arrows does not drop defs
	ts.SetGraffleStyle(NewDict())
	require.Len(t, ts.RequiredDefs(), 2)

	out, err := ts.Bytes()
	require.NoError(t, err)
	svg := string(out)
	require.Equal(t, 1, strings.Count(svg, `id="Arrow1Lend_808080_1.000000px"`))
	require.Equal(t, 1, strings.Count(svg, `id="Arrow1Lstart_808080_1.000000px"`))
	require.Equal(t, 2, strings.Count(svg, "<marker"))
	require.Contains(t, svg, "fill:#808080")
	require.Contains(t, svg, "rotate(180)")
	require.Equal(t, 3, strings.Count(svg, "marker-end:url(#Arrow1Lend_808080_1.000000px)"))
}

func TestAddElements(t *testing.T) {
	ts := NewTargetSvg()
	style := dictOf("stroke", dictOf("CornerRadius", Real("5")))
	ts.SetGraffleStyle(style)
	ts.AddRect(Rect{Point{10, 20}, Point{110, 70}}, style, "5")
	ts.AddText(Rect{Point{10, 20}, Point{110, 70}}, "Hello\nWorld & more", style, "5")
	ts.AddPath([]Point{{0, 0}, {756, 553}}, style, "6")
	ts.AddPath(nil, style, "7")

	require.Len(t, ts.currentLayer.elements, 3)
	rect := ts.currentLayer.elements[0].(Rectangle)
	require.Equal(t, "Graphic5", rect.ID)
	require.Equal(t, 100.0, rect.Width)
	require.Equal(t, 5.0, rect.Rx)

	text := ts.currentLayer.elements[1].(TextElement)
	require.Equal(t, "Graphic5-text", text.ID)
	require.Equal(t, 60.0, text.X)
	require.Len(t, text.Lines, 2)
	require.Equal(t, "1.2em", text.Lines[1].Dy)

	path := ts.currentLayer.elements[2].(PathElement)
	require.Equal(t, "M 0 0 L 756 553", path.D)
	require.Contains(t, path.Style, "fill:none")

	out, err := ts.Bytes()
	require.NoError(t, err)
	svg := string(out)
	require.Contains(t, svg, `<rect id="Graphic5"`)
	require.Contains(t, svg, `d="M 0 0 L 756 553"`)
	require.Contains(t, svg, "World &amp; more")
	require.Contains(t, svg, `width="756"`)
	require.Contains(t, svg, "</svg>")
}

func TestScaleAndViewBox(t *testing.T) {
	ts := NewTargetSvg(WithScale(2), WithFont("Courier", 10))
	ts.SetViewBox(Rect{Point{-1, -1}, Point{1, 1}})
	ts.SetGraffleStyle(NewDict())
	ts.AddRect(Rect{Point{1, 2}, Point{3, 4}}, NewDict(), "")
	ts.AddText(Rect{Point{1, 2}, Point{3, 4}}, "x", NewDict(), "")

	rect := ts.currentLayer.elements[0].(Rectangle)
	require.Equal(t, Rectangle{ID: "Graphic_1", X: 2, Y: 4, Width: 4, Height: 4, Style: rect.Style}, rect)
	text := ts.currentLayer.elements[1].(TextElement)
	require.Equal(t, "Graphic_2-text", text.ID)
	require.Contains(t, text.Style, "font-size:20px")
	require.Contains(t, text.Style, "font-family:Courier")

	out, err := ts.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(out), `viewBox="-2 -2 4 4"`)
}

func TestLayers(t *testing.T) {
	ts := NewTargetSvg()
	ts.NewLayer("First")
	ts.AddRect(Rect{Point{0, 0}, Point{1, 1}}, NewDict(), "1")
	ts.NewLayer("Second")
	ts.AddRect(Rect{Point{0, 0}, Point{1, 1}}, NewDict(), "2")
	ts.NewLayer("Empty")

	require.Len(t, ts.dom.layers, 3)
	out, err := ts.Bytes()
	require.NoError(t, err)
	svg := string(out)
	require.Contains(t, svg, `<g id="Layer1">`)
	require.Contains(t, svg, `<g id="Layer2">`)
	require.NotContains(t, svg, `Layer3`)
	require.Contains(t, svg, "First")
	require.Contains(t, svg, "Second")
	require.Contains(t, svg, `<rect id="Graphic1"`)
	require.Contains(t, svg, `<rect id="Layer2-Graphic2"`)
}

func TestMarkerID(t *testing.T) {
	m, err := parseMarkerID("Arrow1Lend_808080_1.000000px")
	require.NoError(t, err)
	require.Equal(t, marker{Direction: "end", Color: "808080", Width: 1}, m)
	require.Equal(t, "scale(0.8) rotate(180) translate(12.5,0)", m.transform())

	m, err = parseMarkerID(markerID("start", "ff0000", 2.5))
	require.NoError(t, err)
	require.Equal(t, marker{Direction: "start", Color: "ff0000", Width: 2.5}, m)
	require.Equal(t, "scale(2) translate(12.5,0)", m.transform())

	for _, bad := range []string{"Arrow1Lend_808080", "Arrow2Lend_808080_1px", "Arrow1Lup_808080_1px", "Arrow1Lend_808080_wide"} {
		_, err := parseMarkerID(bad)
		require.Error(t, err, bad)
	}
}
