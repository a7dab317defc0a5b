package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source  streetSource
	format  string // output format: "text" or "json"
	output  string // output file; stdout when empty
	noCache bool   // skip the render cache entirely
	refresh bool   // re-render and overwrite the cached entry
}

// renderCommand creates the render command, which draws a street.
//
// The street comes from the arguments, from --file, or from one line of
// stdin (with a "Street: " prompt when stdin is a terminal).
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [descriptor...]",
		Short: "Draw a street as a framed ASCII scene",
		Example: `  skyline render 'b:3,2,# p:5,* e:4,_X'
  skyline render -f downtown.toml --format json -o downtown.json
  echo 'p:5,*' | skyline render`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.source.addFlags(cmd)
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: text, json (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached output and render again")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatText, pipeline.FormatJSON}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) (err error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	in, err := opts.source.options(cmd, args)
	if err != nil {
		return err
	}
	in.Format = opts.format
	in.Refresh = opts.refresh
	in = c.renderOptions(in)

	runner, store, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := runner.Execute(ctx, in)
	if err != nil {
		return err
	}
	scene := result.Scene

	out, err := openOutput(cmd.OutOrStdout(), opts.output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := out.Write(result.Output); err != nil {
		return err
	}

	if opts.output == "" {
		logger.Debug("rendered", "width", scene.Width(), "height", scene.Height(), "cached", result.CacheHit)
		return nil
	}
	prog.done("Rendered " + opts.output)
	errOut := cmd.ErrOrStderr()
	printFile(errOut, opts.output)
	printStats(errOut, scene.Width(), scene.Height(), len(scene.Elements()), result.CacheHit)
	return nil
}
