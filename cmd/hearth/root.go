package main

import (
	"context"

	"github.com/spf13/cobra"
)

// options holds the global flags.
type options struct {
	jsonOutput bool
}

func newRootCmd() (*cobra.Command, *options) {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "hearth",
		Short: "Hearth family project planner",
		Long: `Hearth keeps family projects, their tasks and the dependencies
between them. Dependencies are checked so a project never contains a cycle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newProjectCmd(opts))
	rootCmd.AddCommand(newTaskCmd(opts))
	rootCmd.AddCommand(newDepCmd(opts))
	return rootCmd, opts
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string) int {
	rootCmd, opts := newRootCmd()
	rootCmd.SetArgs(args)
	return execute(ctx, rootCmd, opts)
}

func execute(ctx context.Context, rootCmd *cobra.Command, opts *options) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(rootCmd.ErrOrStderr(), err, opts.jsonOutput)
		return mapErrorToExitCode(err)
	}
	return ExitSuccess
}
