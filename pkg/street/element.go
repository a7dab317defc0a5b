package street

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/skyline/pkg/errors"
)

// Kind identifies the variant of an [Element].
type Kind int

const (
	KindBuilding Kind = iota
	KindPark
	KindLot
)

// Fixed conceptual heights of the non-building kinds.
const (
	// ParkHeight covers the tree (levels 0-4) plus one blank level above it.
	ParkHeight = 5
	// LotHeight covers the ground level.
	LotHeight = 1
)

// Descriptor type letters.
const (
	typeBuilding = "b"
	typePark     = "p"
	typeLot      = "e"
)

var kindNames = [...]string{
	KindBuilding: "building",
	KindPark:     "park",
	KindLot:      "lot",
}

// ParseKind maps a type name to a Kind. Both the descriptor letters
// (b, p, e) and the long names (building, park, lot) are accepted.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(name) {
	case typeBuilding, "building":
		return KindBuilding, true
	case typePark, "park":
		return KindPark, true
	case typeLot, "lot":
		return KindLot, true
	}
	return 0, false
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Element is one drawable unit of a street.
//
// Only the fields relevant to Kind are meaningful: Height for buildings,
// Symbol for buildings (brick) and parks (foliage), Pattern for lots.
// Use [NewBuilding], [NewPark] or [NewLot] to get a validated value.
type Element struct {
	Kind    Kind
	Width   int
	Height  int
	Symbol  rune
	Pattern string
}

// NewBuilding returns a building of the given width and height drawn with symbol.
func NewBuilding(width, height int, symbol rune) (Element, error) {
	if err := checkWidth(width); err != nil {
		return Element{}, err
	}
	if height < 0 {
		return Element{}, errors.New(errors.ErrCodeNegativeHeight, "building height must not be negative, got %d", height)
	}
	if err := checkSymbol(symbol, "building symbol"); err != nil {
		return Element{}, err
	}
	return Element{Kind: KindBuilding, Width: width, Height: height, Symbol: symbol}, nil
}

// NewPark returns a park of the given width whose canopy is drawn with foliage.
func NewPark(width int, foliage rune) (Element, error) {
	if err := checkWidth(width); err != nil {
		return Element{}, err
	}
	if err := checkSymbol(foliage, "park foliage"); err != nil {
		return Element{}, err
	}
	return Element{Kind: KindPark, Width: width, Symbol: foliage}, nil
}

// NewLot returns an empty lot of the given width showing pattern at ground level.
func NewLot(width int, pattern string) (Element, error) {
	if err := checkWidth(width); err != nil {
		return Element{}, err
	}
	if pattern == "" {
		return Element{}, errors.New(errors.ErrCodeEmptyPattern, "lot pattern must not be empty")
	}
	if !utf8.ValidString(pattern) {
		return Element{}, errors.New(errors.ErrCodeMalformedDescriptor, "lot pattern is not valid UTF-8")
	}
	// Patterns must survive a round trip through the descriptor grammar.
	if strings.ContainsFunc(pattern, isSeparator) {
		return Element{}, errors.New(errors.ErrCodeMalformedDescriptor, "lot pattern %q must not contain commas or spaces", pattern)
	}
	return Element{Kind: KindLot, Width: width, Pattern: pattern}, nil
}

// isSeparator reports whether r splits tokens or fields in a descriptor.
func isSeparator(r rune) bool { return r == ',' || unicode.IsSpace(r) }

// checkSymbol keeps single-rune fills writable as descriptor tokens.
func checkSymbol(r rune, field string) error {
	if isSeparator(r) {
		return errors.New(errors.ErrCodeMalformedDescriptor, "%s %q must not be a comma or space", field, r)
	}
	if !utf8.ValidRune(r) {
		return errors.New(errors.ErrCodeMalformedDescriptor, "%s is not a valid character", field)
	}
	return nil
}

func checkWidth(width int) error {
	if width <= 0 {
		return errors.New(errors.ErrCodeNonPositiveWidth, "width must be positive, got %d", width)
	}
	return nil
}

// Render draws the element at height level h. The result always has exactly
// Width runes, whatever h is.
func (e Element) Render(h int) string {
	switch e.Kind {
	case KindBuilding:
		return renderBuilding(e, h)
	case KindPark:
		return renderPark(e, h)
	case KindLot:
		return renderLot(e, h)
	}
	return blank(e.Width)
}

// Levels returns how many height levels the element asks the scene for.
func (e Element) Levels() int {
	switch e.Kind {
	case KindBuilding:
		return e.Height
	case KindPark:
		return ParkHeight
	case KindLot:
		return LotHeight
	}
	return 0
}

// String returns the descriptor token for the element, e.g. "b:3,2,#".
func (e Element) String() string {
	switch e.Kind {
	case KindBuilding:
		return fmt.Sprintf("%s:%d,%d,%c", typeBuilding, e.Width, e.Height, e.Symbol)
	case KindPark:
		return fmt.Sprintf("%s:%d,%c", typePark, e.Width, e.Symbol)
	case KindLot:
		return fmt.Sprintf("%s:%d,%s", typeLot, e.Width, e.Pattern)
	}
	return fmt.Sprintf("?:%d", e.Width)
}
