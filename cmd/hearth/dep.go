package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hearthapp/hearth/internal/client"
)

func newDepCmd(opts *options) *cobra.Command {
	depCmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
		Long:  `Commands for managing dependencies between tasks.`,
	}

	var depType string
	addCmd := &cobra.Command{
		Use:   "add <dependent> <blocking>",
		Short: "Add a dependency",
		Long: `Add a dependency between two tasks of the same project.

The dependent task waits on the blocking task. The dependency is rejected
if it already exists or if it would close a cycle.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			edge, err := c.AddDependency(cmd.Context(), args[0], args[1], depType)
			if err != nil {
				return err
			}
			printEdge(cmd.OutOrStdout(), edge, opts.jsonOutput)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&depType, "type", "t", "", "Dependency type (FINISH_TO_START, START_TO_START, BLOCKING)")

	rmCmd := &cobra.Command{
		Use:   "rm <dependency-id>",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			if err := c.RemoveDependency(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Removed dependency %s", args[0]), opts.jsonOutput)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			deps, err := c.ListDependencies(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printDependencies(cmd.OutOrStdout(), deps, opts.jsonOutput)
			return nil
		},
	}

	var (
		action string
		member string
		since  time.Duration
		limit  int
	)
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the dependency audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := client.AuditQuery{Action: action, MemberID: member, Limit: limit}
			if since > 0 {
				q.Start = time.Now().Add(-since).UTC()
			}

			c, err := clientFactory()
			if err != nil {
				return err
			}
			entries, err := c.QueryAudit(cmd.Context(), q)
			if err != nil {
				return err
			}
			printAudit(cmd.OutOrStdout(), entries, opts.jsonOutput)
			return nil
		},
	}
	historyCmd.Flags().StringVar(&action, "action", "", "Filter by action")
	historyCmd.Flags().StringVar(&member, "member", "", "Filter by member")
	historyCmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this (e.g. 24h)")
	historyCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries")

	depCmd.AddCommand(addCmd, rmCmd, listCmd, historyCmd)
	return depCmd
}
