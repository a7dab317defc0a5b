package street

import "strings"

const (
	trunk      = '|'
	blankCell  = '_'
	canopyBase = 5
)

func blank(width int) string {
	return strings.Repeat(" ", width)
}

// renderBuilding fills levels 0..Height-1 with the brick symbol.
func renderBuilding(e Element, h int) string {
	if h >= e.Height {
		return blank(e.Width)
	}
	return strings.Repeat(string(e.Symbol), e.Width)
}

// renderPark draws a trunk on levels 0-1 and a canopy of 5, 3 and 1 runes on
// levels 2-4.
func renderPark(e Element, h int) string {
	switch {
	case h == 0 || h == 1:
		return center(string(trunk), 1, e.Width)
	case h >= 2 && h <= 4:
		n := canopyBase - (h-2)*2
		return center(strings.Repeat(string(e.Symbol), n), n, e.Width)
	}
	return blank(e.Width)
}

// renderLot cycles through the pattern at ground level.
func renderLot(e Element, h int) string {
	if h != 0 {
		return blank(e.Width)
	}
	pattern := []rune(e.Pattern)
	if len(pattern) == 0 {
		return blank(e.Width)
	}
	var b strings.Builder
	b.Grow(e.Width)
	for i := 0; i < e.Width; i++ {
		r := pattern[i%len(pattern)]
		if r == blankCell {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// center places seg (n runes) in a field of width runes. The left pad is
// floor((width-n)/2) and the right pad takes what is left over. Segments
// wider than the field are cut to the field.
func center(seg string, n, width int) string {
	if n > width {
		seg = string([]rune(seg)[(n-width)/2:][:width])
		n = width
	}
	left := (width - n) / 2
	return blank(left) + seg + blank(width-n-left)
}
