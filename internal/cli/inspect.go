package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/street"
)

// inspectCommand creates the inspect command, which lists a street's
// elements and the scene dimensions they produce.
func (c *CLI) inspectCommand() *cobra.Command {
	var source streetSource

	cmd := &cobra.Command{
		Use:   "inspect [descriptor...]",
		Short: "Show the elements of a street and its dimensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := source.elements(cmd, args)
			if err != nil {
				return err
			}
			writeInspect(cmd.OutOrStdout(), street.NewScene(elements))
			return nil
		},
	}
	source.addFlags(cmd)
	return cmd
}

// writeInspect prints the element table followed by a summary.
func writeInspect(w io.Writer, scene *street.Scene) {
	elements := scene.Elements()
	fmt.Fprintln(w, elementTable(elements))
	printKeyValue(w, "Elements", strconv.Itoa(len(elements)))
	printKeyValue(w, "Width", strconv.Itoa(scene.Width()))
	printKeyValue(w, "Height", strconv.Itoa(scene.Height()))
	printKeyValue(w, "Descriptor", scene.Descriptor())
}

// elementTable renders one row per element: position, type, width, the
// height levels it asks for, and its fill.
func elementTable(elements []street.Element) string {
	rows := make([][]string, len(elements))
	for i, e := range elements {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.Kind.String(),
			strconv.Itoa(e.Width),
			strconv.Itoa(e.Levels()),
			fill(e),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numStyle := cellStyle.Foreground(colorCyan).Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Type", "Width", "Height", "Fill").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 2 || col == 3:
				return numStyle
			}
			return cellStyle
		}).
		Render()
}

func fill(e street.Element) string {
	if e.Kind == street.KindLot {
		return strconv.Quote(e.Pattern)
	}
	return strconv.QuoteRune(e.Symbol)
}
