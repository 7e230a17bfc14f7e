package graffle2svg

import (
	"fmt"
	"io"
	"log"
)

// Options configure Convert.
type Options struct {
	// BoundingBox, when set, drops graphics entirely outside it and
	// becomes the SVG view box.
	BoundingBox *Rect
	// Scale multiplies output coordinates; 0 means 1.
	Scale     float64
	ErrorMode ErrorMode
	// Logger receives warnings. Nil uses the Interpreter's default.
	Logger *log.Logger
}

// Convert reads a Graffle document from r and writes it to w as SVG.
// Nothing is written to w unless the whole conversion succeeds.
func Convert(r io.Reader, w io.Writer, opts Options) error {
	doc, err := ParseDocument(r)
	if err != nil {
		return err
	}
	b, err := ConvertDocument(doc, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ConvertDocument renders a parsed Graffle document to SVG. Documents with
// several sheets get one layer per sheet.
func ConvertDocument(doc *Dict, opts Options) ([]byte, error) {
	target := NewTargetSvg(WithScale(opts.Scale))
	target.Reset()
	if opts.BoundingBox != nil {
		target.SetViewBox(*opts.BoundingBox)
	}

	gi := NewInterpreter()
	gi.BoundingBox = opts.BoundingBox
	gi.ErrorMode = opts.ErrorMode
	if opts.Logger != nil {
		gi.Logger = opts.Logger
	}
	gi.SetTarget(target)

	if err := gi.InterpretDocument(doc); err != nil {
		return nil, err
	}
	return target.Bytes()
}

// InterpretDocument draws every sheet of doc. When the target implements
// Layerer each sheet starts a new layer.
func (gi *Interpreter) InterpretDocument(doc *Dict) error {
	sheets, ok := doc.Array("Sheets")
	if !ok {
		graphics, _ := doc.Array("GraphicsList")
		return gi.IterateGraphics(graphics)
	}

	layers, _ := gi.target.(Layerer)
	for i, v := range sheets {
		sheet, ok := v.(*Dict)
		if !ok {
			if err := gi.fail(fmt.Errorf("sheet %d is not a dict", i+1)); err != nil {
				return err
			}
			continue
		}
		if layers != nil {
			name, ok := sheet.Text("SheetTitle")
			if !ok {
				name = fmt.Sprintf("Sheet %d", i+1)
			}
			layers.NewLayer(name)
		}
		graphics, _ := sheet.Array("GraphicsList")
		if err := gi.IterateGraphics(graphics); err != nil {
			return fmt.Errorf("sheet %d: %w", i+1, err)
		}
	}
	return nil
}
