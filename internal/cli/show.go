package cli

import (
	"github.com/spf13/cobra"

	"prchain.dev/prchain/internal/actions"
	"prchain.dev/prchain/internal/cli/common"
	"prchain.dev/prchain/internal/runtime"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "show",
		Short:        "Show how the commits on this branch map onto remote branches",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, runtime.Options{}, actions.ShowAction)
		},
	}
}
