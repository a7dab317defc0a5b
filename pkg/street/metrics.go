package street

// TotalWidth returns the sum of the element widths.
func TotalWidth(elements []Element) int {
	total := 0
	for _, e := range elements {
		total += e.Width
	}
	return total
}

// MaxHeight returns the highest level any element asks for: parks count as
// [ParkHeight], lots as [LotHeight] and buildings as their own height. The
// result is never below 0, so a scene always has at least the ground row.
func MaxHeight(elements []Element) int {
	h := 0
	for _, e := range elements {
		h = max(h, e.Levels())
	}
	return h
}
