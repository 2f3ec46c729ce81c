package main

import (
	"github.com/spf13/cobra"
)

// NewCompletionCommand creates the 'completion' command, which generates
// shell completion scripts for fdf.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:

  $ source <(fdf completion bash)

  To load completions for all new sessions, run once:
  # Linux:
  $ fdf completion bash > /etc/bash_completion.d/fdf
  # macOS (using Homebrew):
  $ fdf completion bash > $(brew --prefix)/etc/bash_completion.d/fdf

Zsh:

  $ fdf completion zsh > "${fpath[1]}/_fdf"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ fdf completion fish | source

  To load completions for all new sessions, run once:
  $ fdf completion fish > ~/.config/fish/completions/fdf.fish

Powershell:

  PS> fdf completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
