package graffle2svg

// Scope is a stack of Graffle style dictionaries implementing style
// inheritance. Every frame holds the full effective style at its depth, so
// lookups only consult the top.
type Scope struct {
	frames []*Dict
}

// NewScope returns a scope whose effective style is empty.
func NewScope() *Scope {
	return &Scope{}
}

// Push adds a frame equal to the current style overridden by overrides.
// When both hold a dictionary under the same key, such as "stroke", their
// entries are merged with the override winning. The previous frame is not
// modified. A nil overrides repeats the current style.
func (s *Scope) Push(overrides *Dict) {
	s.frames = append(s.frames, mergeStyle(s.Top(), overrides))
}

// Pop discards the most recent frame. It panics when nothing was pushed.
func (s *Scope) Pop() {
	if len(s.frames) == 0 {
		panic("graffle2svg: Pop on empty style scope")
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// Top returns the effective style. It is never nil.
func (s *Scope) Top() *Dict {
	if len(s.frames) == 0 {
		return NewDict()
	}
	return s.frames[len(s.frames)-1]
}

// Lookup returns the effective value of key.
func (s *Scope) Lookup(key string) (Value, bool) {
	return s.Top().Get(key)
}

// Depth returns the number of pushed frames.
func (s *Scope) Depth() int {
	return len(s.frames)
}

func mergeStyle(parent, overrides *Dict) *Dict {
	merged := parent.Clone()
	for _, k := range overrides.Keys() {
		v, _ := overrides.Get(k)
		sub, isDict := v.(*Dict)
		if prev, ok := merged.Dict(k); ok && isDict {
			inner := prev.Clone()
			for _, ik := range sub.Keys() {
				iv, _ := sub.Get(ik)
				inner.Set(ik, iv)
			}
			v = inner
		}
		merged.Set(k, v)
	}
	return merged
}
