package graffle2svg

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type TupleTest struct {
	Description string
	Input       string
	Bounds      bool
	Expected    Rect
	Err         bool
}

var tupleTests = []TupleTest{
	{"point", "{0, 0}", false, Rect{Min: Point{0, 0}}, false},
	{"point without spaces", "{12.5,-3}", false, Rect{Min: Point{12.5, -3}}, false},
	{"bounds", "{{0, 0}, {756, 553}}", true, Rect{Point{0, 0}, Point{756, 553}}, false},
	{"negative bounds", "{{-10.5, -20}, {21, 40}}", true, Rect{Point{-10.5, -20}, Point{10.5, 20}}, false},
	{"point with three numbers", "{1, 2, 3}", false, Rect{}, true},
	{"bounds with two numbers", "{1, 2}", true, Rect{}, true},
	{"empty", "", true, Rect{}, true},
	{"trailing garbage", "{1, 2; 99}", false, Rect{}, true},
	{"missing braces", "3 4", false, Rect{}, true},
	{"unbalanced braces", "{{0, 0}, {756, 553}", true, Rect{}, true},
	{"leading dot", "{.5, 1}", false, Rect{}, true},
	{"letters", "{a, b}", false, Rect{}, true},
	{"exponent", "{1e2, 2.5}", false, Rect{Min: Point{100, 2.5}}, false},
}

func TestParseTuples(t *testing.T) {
	for _, test := range tupleTests {
		if test.Bounds {
			r, err := ParseBounds(test.Input)
			if test.Err {
				require.Error(t, err, test.Description)
				continue
			}
			require.NoError(t, err, test.Description)
			require.Equal(t, test.Expected, r, test.Description)
			continue
		}

		p, err := ParsePoint(test.Input)
		if test.Err {
			require.Error(t, err, test.Description)
			continue
		}
		require.NoError(t, err, test.Description)
		require.Equal(t, test.Expected.Min, p, test.Description)
	}
}

func TestParsePoints(t *testing.T) {
	points, err := ParsePoints([]string{"{0, 0}", "{756, 553}"})
	require.NoError(t, err)
	require.Equal(t, []Point{{0, 0}, {756, 553}}, points)

	_, err = ParsePoints([]string{"{0, 0}", "{1}"})
	require.Error(t, err)
}

func TestOutOfBoundingBox(t *testing.T) {
	box := Rect{Point{-1, -1}, Point{1, 1}}
	data := []struct {
		description string
		geometry    Geometry
		out         bool
	}{
		{"inside", Geometry{{-0.5, -0.5}, {0.5, 0.5}}, false},
		{"covering the box", Geometry{{-10, -10}, {10, 10}}, false},
		{"partial overlap", Geometry{{0, 0}, {756, 553}}, false},
		{"touching edge", Geometry{{1, -1}, {5, 1}}, false},
		{"right of box", Geometry{{2, 0}, {3, 0.5}}, true},
		{"left of box", Geometry{{-5, 0}, {-2, 0.5}}, true},
		{"above box", Geometry{{0, -5}, {0.5, -1.5}}, true},
		{"below box", Geometry{{0, 1.5}, {0.5, 5}}, true},
		{"line crossing box", Geometry{{-5, 0}, {5, 0}}, false},
		{"line beside box", Geometry{{2, -5}, {2, 5}}, true},
		{"empty", Geometry{}, true},
	}
	for _, test := range data {
		require.Equal(t, test.out, OutOfBoundingBox(test.geometry, box), test.description)
	}
}

func TestRect(t *testing.T) {
	r := Rect{Point{10, 20}, Point{110, 70}}
	require.Equal(t, 100.0, r.Width())
	require.Equal(t, 50.0, r.Height())
	require.Equal(t, Point{60, 45}, r.Center())
	require.Equal(t, Geometry{{10, 20}, {110, 70}}, r.Geometry())

	ext, ok := Extent(Geometry{{5, 9}, {-1, 3}, {2, 12}})
	require.True(t, ok)
	require.Equal(t, Rect{Point{-1, 3}, Point{5, 12}}, ext)
}

func TestParseTuplesReleaseLexer(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 500; i++ {
		_, err := ParseBounds("{{0, 0}, {756, 553}}")
		require.NoError(t, err)
		_, err = ParsePoint("{1, 2, 3}")
		require.Error(t, err)
		_, err = ParsePoint("{a, b}")
		require.Error(t, err)
	}
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}
