package street

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/skyline/pkg/errors"
)

// Parse converts a descriptor line into elements, preserving token order.
// A blank line yields no elements and no error.
//
// Any token that cannot be converted aborts the parse; the returned error
// carries the 1-based token position and one of the descriptor error codes.
func Parse(line string) ([]Element, error) {
	tokens := strings.Fields(line)
	elements := make([]Element, 0, len(tokens))
	for i, tok := range tokens {
		e, err := ParseToken(tok)
		if err != nil {
			return nil, annotate(err, i+1, tok)
		}
		elements = append(elements, e)
	}
	return elements, nil
}

// ParseToken converts a single "<type>:<params>" token into an element.
func ParseToken(tok string) (Element, error) {
	typ, params, ok := strings.Cut(tok, ":")
	if !ok {
		return Element{}, errors.New(errors.ErrCodeMalformedDescriptor, "missing ':' after element type")
	}
	fields := strings.Split(params, ",")

	switch typ {
	case typeBuilding:
		if err := expectFields(fields, 3, "b:<width>,<height>,<symbol>"); err != nil {
			return Element{}, err
		}
		width, err := parseInt(fields[0], "width")
		if err != nil {
			return Element{}, err
		}
		height, err := parseInt(fields[1], "height")
		if err != nil {
			return Element{}, err
		}
		symbol, err := ParseSymbol(fields[2], "symbol")
		if err != nil {
			return Element{}, err
		}
		return NewBuilding(width, height, symbol)

	case typePark:
		if err := expectFields(fields, 2, "p:<width>,<foliage>"); err != nil {
			return Element{}, err
		}
		width, err := parseInt(fields[0], "width")
		if err != nil {
			return Element{}, err
		}
		foliage, err := ParseSymbol(fields[1], "foliage")
		if err != nil {
			return Element{}, err
		}
		return NewPark(width, foliage)

	case typeLot:
		if err := expectFields(fields, 2, "e:<width>,<pattern>"); err != nil {
			return Element{}, err
		}
		width, err := parseInt(fields[0], "width")
		if err != nil {
			return Element{}, err
		}
		return NewLot(width, fields[1])
	}

	return Element{}, errors.New(errors.ErrCodeMalformedDescriptor, "unknown element type %q (want b, p or e)", typ)
}

func expectFields(fields []string, n int, form string) error {
	if len(fields) != n {
		return errors.New(errors.ErrCodeMalformedDescriptor, "expected %d fields (%s), got %d", n, form, len(fields))
	}
	return nil
}

func parseInt(s, field string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeMalformedDescriptor, "%s %q is not an integer", field, s)
	}
	return n, nil
}

// ParseSymbol returns the single rune in s. field names the value in the
// error message.
func ParseSymbol(s, field string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.New(errors.ErrCodeMalformedDescriptor, "%s must be a single character, got %q", field, s)
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return 0, errors.New(errors.ErrCodeMalformedDescriptor, "%s is not valid UTF-8", field)
	}
	return r, nil
}

// annotate prefixes a token error with its position, keeping the code.
func annotate(err error, pos int, tok string) error {
	code := errors.GetCodeOr(err, errors.ErrCodeMalformedDescriptor)
	return errors.New(code, "token %d (%q): %s", pos, tok, errors.UserMessage(err))
}

// Descriptor renders elements back into a descriptor line.
func Descriptor(elements []Element) string {
	tokens := make([]string, len(elements))
	for i, e := range elements {
		tokens[i] = e.String()
	}
	return strings.Join(tokens, " ")
}
