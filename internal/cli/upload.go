package cli

import (
	"github.com/spf13/cobra"

	"prchain.dev/prchain/internal/actions"
	"prchain.dev/prchain/internal/cli/common"
	"prchain.dev/prchain/internal/config"
	"prchain.dev/prchain/internal/runtime"
)

type uploadFlags struct {
	confirm bool
	draft   bool
	noPush  bool
	noPRs   bool
}

func newUploadCmd() *cobra.Command {
	f := &uploadFlags{}

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Push every branch in the chain and create or retarget its pull request",
		Long: `Force push the last commit of every branch in the chain, then make sure each
branch has exactly one open pull request whose base is the branch before it.

Pull requests are created when missing and retargeted when their base is wrong.
Running upload again without changes does nothing.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := runtime.Options{
				Config:    config.Options{Draft: f.draft},
				NeedPulls: !f.noPRs,
			}
			return common.Run(cmd, opts, func(ctx *runtime.Context) error {
				return actions.UploadAction(ctx, actions.UploadOptions{
					Confirm: f.confirm,
					NoPush:  f.noPush,
					NoPRs:   f.noPRs,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&f.confirm, "confirm", "c", false, "List the branches and ask for confirmation before uploading")
	cmd.Flags().BoolVar(&f.draft, "draft", false, "Open new pull requests as drafts")
	cmd.Flags().BoolVar(&f.noPush, "no-push", false, "Only create and retarget pull requests")
	cmd.Flags().BoolVar(&f.noPRs, "no-prs", false, "Only push branches")
	cmd.MarkFlagsMutuallyExclusive("no-push", "no-prs")

	return cmd
}
