package graffle2svg

import (
	"encoding/xml"
	"sort"
	"strings"
)

// Rectangle is an SVG rect element
type Rectangle struct {
	XMLName xml.Name `xml:"rect"`
	ID      string   `xml:"id,attr"`
	X       float64  `xml:"x,attr"`
	Y       float64  `xml:"y,attr"`
	Width   float64  `xml:"width,attr"`
	Height  float64  `xml:"height,attr"`
	Rx      float64  `xml:"rx,attr,omitempty"`
	Ry      float64  `xml:"ry,attr,omitempty"`
	Style   string   `xml:"style,attr,omitempty"`
}

// PathElement is an SVG path element
type PathElement struct {
	XMLName xml.Name `xml:"path"`
	ID      string   `xml:"id,attr"`
	D       string   `xml:"d,attr"`
	Style   string   `xml:"style,attr,omitempty"`
}

// TextElement is an SVG text element holding one tspan per line
type TextElement struct {
	XMLName xml.Name `xml:"text"`
	ID      string   `xml:"id,attr"`
	X       float64  `xml:"x,attr"`
	Y       float64  `xml:"y,attr"`
	Style   string   `xml:"style,attr,omitempty"`
	Lines   []TSpan  `xml:"tspan"`
}

// TSpan is one line of a TextElement
type TSpan struct {
	X     float64 `xml:"x,attr"`
	Dy    string  `xml:"dy,attr"`
	Value string  `xml:",chardata"`
}

// styleString joins presentation attributes into a style attribute value
// with keys in sorted order.
func styleString(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+attrs[k])
	}
	return strings.Join(parts, ";")
}
