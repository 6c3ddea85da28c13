// Package common provides shared helper functions for CLI commands.
package common

import (
	"fmt"

	"github.com/spf13/cobra"

	"prchain.dev/prchain/internal/runtime"
	"prchain.dev/prchain/internal/tui"
)

// Global flag names, registered on the root command
const (
	FlagDir     = "directory"
	FlagVerbose = "verbose"
	FlagDryRun  = "dry-run"
	FlagLogFile = "log-file"
)

// Run builds a runtime context from the global flags and opts, then calls fn.
// The logger is closed when fn returns.
func Run(cmd *cobra.Command, opts runtime.Options, fn func(ctx *runtime.Context) error) error {
	flags := cmd.Flags()
	dir, _ := flags.GetString(FlagDir)
	verbose, _ := flags.GetBool(FlagVerbose)
	dryRun, _ := flags.GetBool(FlagDryRun)
	logFile, _ := flags.GetString(FlagLogFile)
	if logFile == "" {
		logFile = tui.GetLogFilePath()
	}

	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{
		Writer:      cmd.OutOrStdout(),
		Verbose:     verbose,
		LogFilePath: logFile,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = splog.Close() }()

	opts.Dir = dir
	opts.Config.Verbose = verbose
	opts.Config.DryRun = dryRun
	opts.Config.LogFile = logFile

	ctx, err := runtime.GetContext(cmd.Context(), splog, opts)
	if err != nil {
		return err
	}
	return fn(ctx)
}
