package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/sceneio"
)

// convertCommand creates the convert command, which rewrites a street in
// another scene file format.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		source streetSource
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert [descriptor...]",
		Short: "Convert a street between descriptor, TOML and YAML",
		Example: `  skyline convert 'b:3,2,# p:5,*' --to toml
  skyline convert -f downtown.yaml --to descriptor -o downtown.street`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			elements, err := source.elements(cmd, args)
			if err != nil {
				return err
			}

			out, err := openOutput(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := out.Close(); err == nil {
					err = cerr
				}
			}()
			if err := sceneio.Write(out, elements, to); err != nil {
				return err
			}

			if output != "" {
				loggerFromContext(cmd.Context()).Infof("Converted %d elements to %s", len(elements), to)
				printFile(cmd.ErrOrStderr(), output)
			}
			return nil
		},
	}

	source.addFlags(cmd)
	cmd.Flags().StringVar(&to, "to", sceneio.FormatTOML, "target format: descriptor, toml, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.RegisterFlagCompletionFunc("to", cobra.FixedCompletions(
		[]string{sceneio.FormatDescriptor, sceneio.FormatTOML, sceneio.FormatYAML}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
