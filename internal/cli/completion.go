package cli

import (
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand creates the completion command. The generated scripts
// complete subcommands (render, inspect, convert, view, serve, cache) and
// the fixed flag values such as --format and --to.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionShells))
	for name := range completionShells {
		shells = append(shells, name)
	}
	sort.Strings(shells)

	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script for skyline",
		Long: `Print a shell completion script for skyline.

The script completes subcommands, scene file paths for --file, and the
known values of --format (text, json) and --to (descriptor, toml, yaml).

Try it in the current shell:
  source <(skyline completion bash)
  skyline completion fish | source
  skyline completion powershell | Out-String | Invoke-Expression

Install it for new shells:
  skyline completion bash > ~/.local/share/bash-completion/completions/skyline
  skyline completion zsh > "${fpath[1]}/_skyline"      # needs compinit
  skyline completion fish > ~/.config/fish/completions/skyline.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
