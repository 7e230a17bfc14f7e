package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/vasalvit/graffle2svg"
)

func mainImpl() error {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}

	in := flag.String("i", "-", "Path to input .graffle file or bundle. If set to \"-\" (hyphen), stdin is used.")
	out := flag.String("o", "-", "Path to output SVG file. If set to \"-\" (hyphen), stdout is used.")
	box := flag.String("b", "", "Bounding box \"x1,y1,x2,y2\"; graphics entirely outside it are dropped.")
	scale := flag.Float64("s", 1, "Scale applied to every output coordinate.")
	strict := flag.Bool("strict", false, "Fail on malformed graphics instead of skipping them.")
	quiet := flag.Bool("q", false, "Do not log skipped graphics.")
	flag.Parse()

	opts := graffle2svg.Options{
		Scale:  *scale,
		Logger: log.New(os.Stderr, "graffle2svg: ", 0),
	}
	switch {
	case *strict:
		opts.ErrorMode = graffle2svg.StrictErrorMode
	case *quiet:
		opts.ErrorMode = graffle2svg.IgnoreErrorMode
	}
	if *box != "" {
		r, err := parseBox(*box)
		if err != nil {
			return err
		}
		opts.BoundingBox = &r
	}

	var (
		doc *graffle2svg.Dict
		err error
	)
	if *in == "-" {
		doc, err = graffle2svg.ParseDocument(os.Stdin)
	} else {
		doc, err = graffle2svg.ParseFile(*in)
	}
	if err != nil {
		return err
	}

	svg, err := graffle2svg.ConvertDocument(doc, opts)
	if err != nil {
		return err
	}
	if *out == "-" {
		_, err := os.Stdout.Write(svg)
		return err
	}
	return ioutil.WriteFile(*out, svg, 0666)
}

// parseBox parses "x1,y1,x2,y2" into a rectangle, in either corner order.
func parseBox(s string) (graffle2svg.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return graffle2svg.Rect{}, fmt.Errorf("invalid bounding box %q", s)
	}
	var n [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return graffle2svg.Rect{}, fmt.Errorf("invalid bounding box %q: %s", s, err)
		}
		n[i] = f
	}
	r, _ := graffle2svg.Extent(graffle2svg.Geometry{{X: n[0], Y: n[1]}, {X: n[2], Y: n[3]}})
	return r, nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "graffle2svg: %s\n", err)
		os.Exit(1)
	}
}
