package sceneio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

// File formats understood by ImportFile and the writers.
const (
	FormatDescriptor = "descriptor"
	FormatTOML       = "toml"
	FormatYAML       = "yaml"
)

// fileDoc is the shared TOML/YAML document shape.
type fileDoc struct {
	Elements []fileElement `toml:"element" yaml:"elements"`
}

type fileElement struct {
	Type    string `toml:"type" yaml:"type"`
	Width   int    `toml:"width" yaml:"width"`
	Height  int    `toml:"height,omitempty" yaml:"height,omitempty"`
	Symbol  string `toml:"symbol,omitempty" yaml:"symbol,omitempty"`
	Foliage string `toml:"foliage,omitempty" yaml:"foliage,omitempty"`
	Pattern string `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// FormatForPath picks the file format from path's extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatDescriptor
}

// ImportFile loads the street stored at path.
func ImportFile(path string) ([]street.Element, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	els, err := Read(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return els, nil
}

// Read decodes a street in the given format from r.
func Read(r io.Reader, format string) ([]street.Element, error) {
	switch format {
	case FormatDescriptor:
		return ReadDescriptor(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
}

// ReadLine reads a single line from r and parses it. It is what the CLI
// uses for a street typed at the prompt.
func ReadLine(r io.Reader) ([]street.Element, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return street.Parse(line)
}

// ReadDescriptor parses descriptor text, skipping blank and "#" lines.
func ReadDescriptor(r io.Reader) ([]street.Element, error) {
	var parts []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return street.Parse(strings.Join(parts, " "))
}

// ReadTOML decodes a TOML street document.
func ReadTOML(r io.Reader) ([]street.Element, error) {
	var doc fileDoc
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDescriptor, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeMalformedDescriptor, "unknown TOML key %q", undecoded[0].String())
	}
	return doc.toElements()
}

// ReadYAML decodes a YAML street document.
func ReadYAML(r io.Reader) ([]street.Element, error) {
	var doc fileDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeMalformedDescriptor, err, "decode YAML")
	}
	return doc.toElements()
}

func (d fileDoc) toElements() ([]street.Element, error) {
	out := make([]street.Element, 0, len(d.Elements))
	for i, fe := range d.Elements {
		e, err := fe.toElement()
		if err != nil {
			return nil, errors.New(errors.GetCodeOr(err, errors.ErrCodeMalformedDescriptor),
				"element %d: %s", i+1, errors.UserMessage(err))
		}
		out = append(out, e)
	}
	return out, nil
}

func (fe fileElement) toElement() (street.Element, error) {
	kind, ok := street.ParseKind(fe.Type)
	if !ok {
		return street.Element{}, errors.New(errors.ErrCodeMalformedDescriptor, "unknown element type %q", fe.Type)
	}

	switch kind {
	case street.KindBuilding:
		sym, err := street.ParseSymbol(fe.Symbol, "symbol")
		if err != nil {
			return street.Element{}, err
		}
		return street.NewBuilding(fe.Width, fe.Height, sym)
	case street.KindPark:
		foliage, err := street.ParseSymbol(fe.Foliage, "foliage")
		if err != nil {
			return street.Element{}, err
		}
		return street.NewPark(fe.Width, foliage)
	default:
		return street.NewLot(fe.Width, fe.Pattern)
	}
}
