// Package cli wires the git-pr-chain commands together with cobra.
package cli

import (
	"github.com/spf13/cobra"

	"prchain.dev/prchain/internal/cli/common"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-pr-chain",
		Short: "Manage a chain of dependent GitHub pull requests from a single branch",
		Long: `git-pr-chain manages a chain of dependent GitHub pull requests from one local branch.

Mark a commit with "git-pr-chain: <branch>" in its message and that commit, and
every unmarked commit after it, is pushed to <branch>. Each branch's pull request
targets the branch before it; the first targets the upstream branch.
"git-pr-chain: STOP" holds back a commit and everything after it.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(common.FlagDir, "C", "", "Run as if started in this directory")
	flags.BoolP(common.FlagVerbose, "v", false, "Print debug output and timing traces")
	flags.BoolP(common.FlagDryRun, "n", false, "Print what would be pushed and changed without doing it")
	flags.String(common.FlagLogFile, "", "Write the debug log to this file (default ~/.git-pr-chain/logs/git-pr-chain.log)")

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
