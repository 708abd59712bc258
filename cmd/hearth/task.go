package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthapp/hearth/internal/client"
)

func newTaskCmd(opts *options) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long:  `Commands for creating, listing, updating and deleting tasks.`,
	}

	var description string
	addCmd := &cobra.Command{
		Use:   "add <project-id> <name>",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			task, err := c.CreateTask(cmd.Context(), args[0], args[1], description)
			if err != nil {
				return err
			}
			printTask(cmd.OutOrStdout(), task, opts.jsonOutput)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&description, "description", "d", "", "Task description")

	listCmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List the tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTaskList(cmd.OutOrStdout(), tasks, opts.jsonOutput)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task and its dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			detail, err := c.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTaskDetail(cmd.OutOrStdout(), detail, opts.jsonOutput)
			return nil
		},
	}

	var (
		editName   string
		editDesc   string
		editStatus string
		editOrder  int
		editAssign string
		editDue    string
		editEst    float64
		editActual float64
	)
	editCmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			updates := client.TaskUpdates{
				Name:        optionalString(flags.Changed("name"), editName),
				Description: optionalString(flags.Changed("description"), editDesc),
				Status:      optionalString(flags.Changed("status"), editStatus),
			}
			if flags.Changed("sort-order") {
				updates.SortOrder = &editOrder
			}
			due, err := optionalDate(flags.Changed("due"), "due", editDue)
			if err != nil {
				return err
			}
			updates.DueDate = due
			updates.AssigneeID = optionalString(flags.Changed("assignee"), editAssign)
			updates.EstimatedHours = optionalFloat(flags.Changed("estimate"), editEst)
			updates.ActualHours = optionalFloat(flags.Changed("actual"), editActual)

			c, err := clientFactory()
			if err != nil {
				return err
			}
			task, err := c.UpdateTask(cmd.Context(), args[0], updates)
			if err != nil {
				return err
			}
			printTask(cmd.OutOrStdout(), task, opts.jsonOutput)
			return nil
		},
	}
	editCmd.Flags().StringVar(&editName, "name", "", "New name")
	editCmd.Flags().StringVarP(&editDesc, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editStatus, "status", "s", "", "New status (PENDING, IN_PROGRESS, COMPLETED, BLOCKED, CANCELLED)")
	editCmd.Flags().IntVar(&editOrder, "sort-order", 0, "New sort order")
	editCmd.Flags().StringVar(&editAssign, "assignee", "", "Member id the task is assigned to")
	editCmd.Flags().StringVar(&editDue, "due", "", "Due date (YYYY-MM-DD)")
	editCmd.Flags().Float64Var(&editEst, "estimate", 0, "Estimated hours")
	editCmd.Flags().Float64Var(&editActual, "actual", 0, "Actual hours spent")

	rmCmd := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task and its dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			if err := c.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted task %s", args[0]), opts.jsonOutput)
			return nil
		},
	}

	taskCmd.AddCommand(addCmd, listCmd, showCmd, editCmd, rmCmd)
	return taskCmd
}
