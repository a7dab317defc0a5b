package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/sceneio"
	"github.com/matzehuels/skyline/pkg/street"
)

// promptText is shown before reading a street typed at a terminal.
const promptText = "Street: "

// streetSource is where a command takes its street from: descriptor
// arguments, a scene file, or one line of stdin.
type streetSource struct {
	file string
}

func (s *streetSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "read the street from a scene file (.street, .toml, .yaml)")
	cmd.MarkFlagFilename("file", "street", "toml", "yaml", "yml")
}

// options turns the source into pipeline input. Arguments are joined with
// spaces so an unquoted street works too.
func (s *streetSource) options(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	switch {
	case len(args) > 0 && s.file != "":
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "give either a descriptor or --file, not both")
	case len(args) > 0:
		return pipeline.Options{Descriptor: strings.Join(args, " ")}, nil
	}

	elements, err := s.elementsFromInput(cmd)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Elements: elements}, nil
}

// elements resolves the source to parsed elements.
func (s *streetSource) elements(cmd *cobra.Command, args []string) ([]street.Element, error) {
	opts, err := s.options(cmd, args)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		return street.Parse(opts.Descriptor)
	}
	return opts.Elements, nil
}

func (s *streetSource) elementsFromInput(cmd *cobra.Command) ([]street.Element, error) {
	if s.file != "" {
		return sceneio.ImportFile(s.file)
	}
	in := cmd.InOrStdin()
	if isTerminal(in) {
		fmt.Fprint(cmd.ErrOrStderr(), promptText)
	}
	return sceneio.ReadLine(in)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openOutput returns path opened for writing, or w when path is empty.
func openOutput(w io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{w}, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
