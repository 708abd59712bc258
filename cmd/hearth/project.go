package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthapp/hearth/internal/client"
)

func newProjectCmd(opts *options) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  `Commands for creating, editing, listing and checking family projects.`,
	}

	var (
		description string
		template    string
		startDate   string
		budget      float64
		notes       string
	)
	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a project, optionally from a template",
		Long: `Create a project. With --template the project is filled with the
template's tasks and dependencies; the name then defaults to the template's.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if template == "" && len(args) == 0 {
				return fmt.Errorf("a project name is required without --template")
			}

			c, err := clientFactory()
			if err != nil {
				return err
			}
			if template == "" {
				project, err := c.CreateProject(cmd.Context(), args[0], description)
				if err != nil {
					return err
				}
				printProject(cmd.OutOrStdout(), project, opts.jsonOutput)
				return nil
			}

			flags := cmd.Flags()
			start, err := optionalDate(flags.Changed("start"), "start", startDate)
			if err != nil {
				return err
			}
			custom := &client.TemplateCustomizations{
				Description: optionalString(flags.Changed("description"), description),
				StartDate:   start,
				Budget:      optionalFloat(flags.Changed("budget"), budget),
				Notes:       optionalString(flags.Changed("notes"), notes),
			}
			if len(args) == 1 {
				custom.Name = &args[0]
			}
			project, err := c.CreateProjectFromTemplate(cmd.Context(), template, custom)
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), project, opts.jsonOutput)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	createCmd.Flags().StringVarP(&template, "template", "t", "", "Template id (see 'project templates')")
	createCmd.Flags().StringVar(&startDate, "start", "", "Start date for a template project (YYYY-MM-DD)")
	createCmd.Flags().Float64Var(&budget, "budget", 0, "Budget for a template project")
	createCmd.Flags().StringVar(&notes, "notes", "", "Notes for a template project")

	var category string
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "List project templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			templates, err := c.ListTemplates(cmd.Context(), category)
			if err != nil {
				return err
			}
			printTemplateList(cmd.OutOrStdout(), templates, opts.jsonOutput)
			return nil
		},
	}
	templatesCmd.Flags().StringVarP(&category, "category", "c", "", "Only list one category (event, home, travel, personal)")

	var (
		editName   string
		editDesc   string
		editStatus string
		editStart  string
		editDue    string
		editBudget float64
		editNotes  string
	)
	editCmd := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			start, err := optionalDate(flags.Changed("start"), "start", editStart)
			if err != nil {
				return err
			}
			due, err := optionalDate(flags.Changed("due"), "due", editDue)
			if err != nil {
				return err
			}
			updates := client.ProjectUpdates{
				Name:        optionalString(flags.Changed("name"), editName),
				Description: optionalString(flags.Changed("description"), editDesc),
				Status:      optionalString(flags.Changed("status"), editStatus),
				StartDate:   start,
				DueDate:     due,
				Budget:      optionalFloat(flags.Changed("budget"), editBudget),
				Notes:       optionalString(flags.Changed("notes"), editNotes),
			}

			c, err := clientFactory()
			if err != nil {
				return err
			}
			project, err := c.UpdateProject(cmd.Context(), args[0], updates)
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), project, opts.jsonOutput)
			return nil
		},
	}
	editCmd.Flags().StringVar(&editName, "name", "", "New name")
	editCmd.Flags().StringVarP(&editDesc, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editStatus, "status", "s", "", "New status (ACTIVE, ON_HOLD, COMPLETED, CANCELLED)")
	editCmd.Flags().StringVar(&editStart, "start", "", "Start date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editDue, "due", "", "Due date (YYYY-MM-DD)")
	editCmd.Flags().Float64Var(&editBudget, "budget", 0, "Budget")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "Notes")

	rmCmd := &cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a project with its tasks and dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			if err := c.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted project %s", args[0]), opts.jsonOutput)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			projects, err := c.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			printProjectList(cmd.OutOrStdout(), projects, opts.jsonOutput)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			project, err := c.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), project, opts.jsonOutput)
			return nil
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <project-id>",
		Short: "Check that a project's dependency graph is acyclic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			report, err := c.VerifyProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report, opts.jsonOutput)
			return nil
		},
	}

	depsCmd := &cobra.Command{
		Use:   "deps <project-id>",
		Short: "List every dependency in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFactory()
			if err != nil {
				return err
			}
			edges, err := c.ListProjectDependencies(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printEdgeList(cmd.OutOrStdout(), edges, opts.jsonOutput)
			return nil
		},
	}

	projectCmd.AddCommand(createCmd, templatesCmd, listCmd, showCmd, editCmd, rmCmd, verifyCmd, depsCmd)
	return projectCmd
}
