package street

import (
	"io"
	"strings"
)

const (
	borderCorner     = "+"
	borderHorizontal = "-"
	borderVertical   = "|"
)

// Scene is an immutable, ordered street ready to be drawn.
type Scene struct {
	elements []Element
	width    int
	height   int
}

// NewScene builds a scene from elements in left-to-right order.
// The slice is copied.
func NewScene(elements []Element) *Scene {
	els := make([]Element, len(elements))
	copy(els, elements)
	return &Scene{
		elements: els,
		width:    TotalWidth(els),
		height:   MaxHeight(els),
	}
}

// ParseScene is shorthand for [Parse] followed by [NewScene].
func ParseScene(line string) (*Scene, error) {
	elements, err := Parse(line)
	if err != nil {
		return nil, err
	}
	return NewScene(elements), nil
}

// Elements returns a copy of the scene's elements.
func (s *Scene) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Width is the total width of the street, excluding borders.
func (s *Scene) Width() int { return s.width }

// Height is the scene's top height level. The scene draws Height+1 rows.
func (s *Scene) Height() int { return s.height }

// Descriptor returns the canonical descriptor line for the scene.
func (s *Scene) Descriptor() string { return Descriptor(s.elements) }

// Row composes level h: every element's rendering in order, between borders.
func (s *Scene) Row(h int) string {
	var b strings.Builder
	b.Grow(s.width + 2)
	b.WriteString(borderVertical)
	for _, e := range s.elements {
		b.WriteString(e.Render(h))
	}
	b.WriteString(borderVertical)
	return b.String()
}

// Rows returns the content rows from the top level down to the ground.
func (s *Scene) Rows() []string {
	rows := make([]string, 0, s.height+1)
	for h := s.height; h >= 0; h-- {
		rows = append(rows, s.Row(h))
	}
	return rows
}

// Frame returns the horizontal border drawn above and below the rows.
func (s *Scene) Frame() string {
	return borderCorner + strings.Repeat(borderHorizontal, s.width) + borderCorner
}

// Lines returns the full drawing: frame, rows, frame.
func (s *Scene) Lines() []string {
	frame := s.Frame()
	lines := make([]string, 0, s.height+3)
	lines = append(lines, frame)
	lines = append(lines, s.Rows()...)
	return append(lines, frame)
}

// String returns the drawing with a trailing newline after every line.
func (s *Scene) String() string {
	var b strings.Builder
	for _, l := range s.Lines() {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the drawing to w line by line.
func (s *Scene) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, l := range s.Lines() {
		m, err := io.WriteString(w, l+"\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
