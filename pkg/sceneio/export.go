package sceneio

import (
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

// SceneJSON is the JSON shape of a rendered scene.
type SceneJSON struct {
	Descriptor string   `json:"descriptor"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Elements   int      `json:"elements"`
	Lines      []string `json:"lines"`
}

// NewSceneJSON captures s in its JSON form.
func NewSceneJSON(s *street.Scene) SceneJSON {
	return SceneJSON{
		Descriptor: s.Descriptor(),
		Width:      s.Width(),
		Height:     s.Height(),
		Elements:   len(s.Elements()),
		Lines:      s.Lines(),
	}
}

// WriteText writes the framed drawing of s.
func WriteText(w io.Writer, s *street.Scene) error {
	_, err := s.WriteTo(w)
	return err
}

// WriteJSON writes s as an indented SceneJSON document.
func WriteJSON(w io.Writer, s *street.Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSceneJSON(s))
}

// Write encodes elements in one of the file formats.
func Write(w io.Writer, elements []street.Element, format string) error {
	switch format {
	case FormatDescriptor:
		return WriteDescriptor(w, elements)
	case FormatTOML:
		return WriteTOML(w, elements)
	case FormatYAML:
		return WriteYAML(w, elements)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q (want descriptor, toml or yaml)", format)
}

// WriteDescriptor writes elements as one descriptor line.
func WriteDescriptor(w io.Writer, elements []street.Element) error {
	_, err := io.WriteString(w, street.Descriptor(elements)+"\n")
	return err
}

// WriteTOML writes elements as [[element]] tables.
func WriteTOML(w io.Writer, elements []street.Element) error {
	return toml.NewEncoder(w).Encode(newFileDoc(elements))
}

// WriteYAML writes elements as an "elements" list.
func WriteYAML(w io.Writer, elements []street.Element) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newFileDoc(elements)); err != nil {
		return err
	}
	return enc.Close()
}

func newFileDoc(elements []street.Element) fileDoc {
	doc := fileDoc{Elements: make([]fileElement, len(elements))}
	for i, e := range elements {
		fe := fileElement{Type: e.Kind.String(), Width: e.Width}
		switch e.Kind {
		case street.KindBuilding:
			fe.Height = e.Height
			fe.Symbol = string(e.Symbol)
		case street.KindPark:
			fe.Foliage = string(e.Symbol)
		case street.KindLot:
			fe.Pattern = e.Pattern
		}
		doc.Elements[i] = fe
	}
	return doc
}
