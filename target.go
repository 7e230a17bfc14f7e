package graffle2svg

// Target receives the drawing calls of an Interpreter. TargetSvg renders
// them to SVG; any other output format implements the same methods.
type Target interface {
	// Reset discards all state accumulated by earlier calls.
	Reset()
	// SetGraffleStyle sets the effective Graffle style used by the
	// following Add calls.
	SetGraffleStyle(style *Dict)
	AddRect(bounds Rect, style *Dict, id string)
	AddPath(points []Point, style *Dict, id string)
	AddText(bounds Rect, text string, style *Dict, id string)
}

// Layerer is implemented by targets that can group graphics into named
// layers. Graphics added after NewLayer belong to the new layer.
type Layerer interface {
	NewLayer(name string)
}

// InstructionType tells which Target method produced an Instruction.
type InstructionType int

// These are the calls a Recorder keeps.
const (
	StyleInstruction InstructionType = iota
	RectInstruction
	PathInstruction
	TextInstruction
	LayerInstruction
)

func (k InstructionType) String() string {
	switch k {
	case StyleInstruction:
		return "style"
	case RectInstruction:
		return "rect"
	case PathInstruction:
		return "path"
	case TextInstruction:
		return "text"
	case LayerInstruction:
		return "layer"
	}
	return "unknown"
}

// Instruction is one recorded Target call.
type Instruction struct {
	Kind   InstructionType
	Bounds Rect
	Points []Point
	// Text holds the text of a TextInstruction or the layer name of a
	// LayerInstruction.
	Text  string
	Style *Dict
	ID    string
}

// Recorder is a Target that keeps every call in order. It is useful for
// inspecting what an Interpreter does with a document.
type Recorder struct {
	Instructions []Instruction
}

// Reset implements Target.
func (r *Recorder) Reset() {
	r.Instructions = nil
}

// SetGraffleStyle implements Target.
func (r *Recorder) SetGraffleStyle(style *Dict) {
	r.Instructions = append(r.Instructions, Instruction{Kind: StyleInstruction, Style: style})
}

// AddRect implements Target.
func (r *Recorder) AddRect(bounds Rect, style *Dict, id string) {
	r.Instructions = append(r.Instructions, Instruction{Kind: RectInstruction, Bounds: bounds, Style: style, ID: id})
}

// AddPath implements Target.
func (r *Recorder) AddPath(points []Point, style *Dict, id string) {
	r.Instructions = append(r.Instructions, Instruction{Kind: PathInstruction, Points: points, Style: style, ID: id})
}

// AddText implements Target.
func (r *Recorder) AddText(bounds Rect, text string, style *Dict, id string) {
	r.Instructions = append(r.Instructions, Instruction{Kind: TextInstruction, Bounds: bounds, Text: text, Style: style, ID: id})
}

// NewLayer implements Layerer.
func (r *Recorder) NewLayer(name string) {
	r.Instructions = append(r.Instructions, Instruction{Kind: LayerInstruction, Text: name})
}

// Count returns how many recorded calls are of kind k.
func (r *Recorder) Count(k InstructionType) int {
	n := 0
	for _, in := range r.Instructions {
		if in.Kind == k {
			n++
		}
	}
	return n
}
