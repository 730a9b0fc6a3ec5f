package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfriedel/cabinetry/pkg/errors"
)

// completionCommand creates the completion command for generating shell
// completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Generate a shell completion script for cabinetry.

Pipe or source the output from your shell profile to get completion for
every session, e.g.:

  bash:  source <(cabinetry completion bash)
  zsh:   cabinetry completion zsh > "${fpath[1]}/_cabinetry"
  fish:  cabinetry completion fish | source
  pwsh:  cabinetry completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], os.Stdout)
		},
	}
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return errors.New(errors.ErrCodeInvalidInput, "unsupported shell %q", shell)
}
