// Package sceneio reads and writes streets in their file formats and
// encodes rendered scenes for output.
//
// # Input formats
//
// A street can be stored three ways, chosen by file extension in
// [ImportFile]:
//
// Descriptor text (any extension other than the ones below). Blank lines and
// lines starting with "#" are ignored; the remaining lines are joined with
// spaces, so long streets may be wrapped:
//
//	# main street
//	b:4,7,# p:7,@
//	e:6,._.
//
// TOML (.toml), one [[element]] table per element:
//
//	[[element]]
//	type = "building"
//	width = 4
//	height = 7
//	symbol = "#"
//
//	[[element]]
//	type = "park"
//	width = 7
//	foliage = "@"
//
// YAML (.yaml, .yml), an "elements" list with the same fields:
//
//	elements:
//	  - {type: lot, width: 6, pattern: "._."}
//
// The type field accepts b/building, p/park and e/lot. Every element goes
// through the same validation as a descriptor token.
//
// # Output formats
//
// [WriteText] writes the framed drawing. [WriteJSON] writes
//
//	{"descriptor": "b:3,2,#", "width": 3, "height": 2, "elements": 1,
//	 "lines": ["+---+", "|   |", "|###|", "|###|", "+---+"]}
//
// [WriteDescriptor], [WriteTOML] and [WriteYAML] are the inverse of the
// readers and back the convert command.
package sceneio
