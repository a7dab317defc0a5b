package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/sceneio"
	"github.com/matzehuels/skyline/pkg/street"
)

// viewCommand creates the view command, an interactive viewer for scenes
// wider or taller than the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var source streetSource

	cmd := &cobra.Command{
		Use:   "view [descriptor...]",
		Short: "Scroll through a scene in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := source.elements(cmd, args)
			if err != nil {
				return err
			}
			scene := street.NewScene(elements)

			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				loggerFromContext(cmd.Context()).Debug("stdout is not a terminal, printing the scene")
				return sceneio.WriteText(out, scene)
			}

			teaOpts := []tea.ProgramOption{
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(out),
			}
			// A street piped on stdin leaves keys to come from the terminal.
			if !isTerminal(cmd.InOrStdin()) {
				teaOpts = append(teaOpts, tea.WithInputTTY())
			}
			_, err = tea.NewProgram(NewSceneViewModel(scene), teaOpts...).Run()
			return err
		},
	}
	source.addFlags(cmd)
	return cmd
}
