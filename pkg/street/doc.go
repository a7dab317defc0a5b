// Package street turns street descriptors into framed text drawings.
//
// # Overview
//
// A street is an ordered row of adjacent elements. Each element occupies a
// fixed number of columns and knows how to draw itself at any height level:
//
//   - Building: a solid block of one symbol, Height rows tall
//   - Park: a tree with a trunk on rows 0-1 and a shrinking canopy on rows 2-4
//   - Lot: a ground-level pattern on row 0, blank above
//
// # Descriptors
//
// Streets are written as one line of whitespace-separated tokens:
//
//	b:<width>,<height>,<symbol>   building
//	p:<width>,<foliage>           park
//	e:<width>,<pattern>           empty lot ("_" in a pattern is a blank cell)
//
// For example "b:3,2,# p:5,* e:4,_X". [Parse] converts such a line to
// elements and rejects malformed tokens with a coded error from
// [github.com/matzehuels/skyline/pkg/errors].
//
// # Rendering
//
// A [Scene] composes the elements row by row, from its tallest level down to
// the ground, wrapping each row in "|" borders and the whole drawing in a
// "+---+" frame:
//
//	+---+
//	|   |
//	|###|
//	|###|
//	+---+
//
// Every call to [Element.Render] returns exactly Width runes, which is what
// lets the scene concatenate element output without measuring it. Elements
// and scenes are immutable and safe for concurrent use.
package street
