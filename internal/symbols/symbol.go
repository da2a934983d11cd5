// Package symbols defines the normalized symbol record produced by every
// language extractor, and the kind taxonomy used to filter it.
package symbols

// Range is a half-open byte span [Start, End) into the source buffer.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Symbol is one named program construct and its location.
// Symbols are values; nothing mutates them after extraction.
type Symbol struct {
	Kind Kind
	Name string

	// 1-based, inclusive, spanning the whole declaring construct.
	StartLine int
	EndLine   int

	FullRange Range
	NameRange *Range // nil when no name node could be identified
	BodyRange *Range // nil when the construct has no body
}

// View projects the symbol into its public form, dropping byte ranges.
func (s Symbol) View() View {
	return View{
		Name:      s.Name,
		Kind:      s.Kind,
		StartLine: s.StartLine,
		EndLine:   s.EndLine,
	}
}

// View is the externally visible projection of a Symbol.
type View struct {
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Filter returns the symbols whose kind is in set, preserving order.
// A nil set returns the input unchanged.
func Filter(syms []Symbol, set KindSet) []Symbol {
	if set == nil {
		return syms
	}

	out := make([]Symbol, 0, len(syms))
	for _, s := range syms {
		if set.Contains(s.Kind) {
			out = append(out, s)
		}
	}
	return out
}

// FilterLines keeps symbols whose start line lies in the inclusive window
// [start, end]. Either bound may be nil.
func FilterLines(syms []Symbol, start, end *int) []Symbol {
	if start == nil && end == nil {
		return syms
	}

	out := make([]Symbol, 0, len(syms))
	for _, s := range syms {
		if start != nil && s.StartLine < *start {
			continue
		}
		if end != nil && s.StartLine > *end {
			continue
		}
		out = append(out, s)
	}
	return out
}
