package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/hearthapp/hearth/internal/client"
	"github.com/hearthapp/hearth/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

func printJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// printProject prints a single project to the writer
func printProject(w io.Writer, project *domain.Project, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, project)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", project.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", project.Name)
	fmt.Fprintf(tw, "Status:\t%s\n", project.Status)
	if project.Description != nil && *project.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", *project.Description)
	}
	if project.StartDate != nil {
		fmt.Fprintf(tw, "Start:\t%s\n", project.StartDate.Format(dateLayout))
	}
	if project.DueDate != nil {
		fmt.Fprintf(tw, "Due:\t%s\n", project.DueDate.Format(dateLayout))
	}
	if project.Budget != nil {
		fmt.Fprintf(tw, "Budget:\t%.2f\n", *project.Budget)
	}
	if project.Notes != nil && *project.Notes != "" {
		fmt.Fprintf(tw, "Notes:\t%s\n", *project.Notes)
	}
	fmt.Fprintf(tw, "Created By:\t%s\n", project.CreatedByID)
	fmt.Fprintf(tw, "Created:\t%s\n", project.CreatedAt.Format(timeLayout))
	tw.Flush()

	if len(project.Tasks) > 0 {
		fmt.Fprintln(w)
		printTaskList(w, project.Tasks, false)
	}
}

// printProjectList prints projects as a table
func printProjectList(w io.Writer, projects []*domain.Project, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, projects)
		return
	}

	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tSTATUS\n")
	fmt.Fprintf(tw, "--\t----\t------\n")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, truncate(p.Name, 40), p.Status)
	}
	tw.Flush()
}

// printTemplateList prints project templates as a table
func printTemplateList(w io.Writer, templates []domain.ProjectTemplate, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, templates)
		return
	}

	if len(templates) == 0 {
		fmt.Fprintln(w, "No templates found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tCATEGORY\tDAYS\tTASKS\tBUDGET\n")
	fmt.Fprintf(tw, "--\t----\t--------\t----\t-----\t------\n")
	for _, t := range templates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.0f\n",
			t.ID, truncate(t.Name, 30), t.Category, t.EstimatedDays, len(t.Tasks), t.SuggestedBudget)
	}
	tw.Flush()
}

// printReport prints the result of a project graph check
func printReport(w io.Writer, report *domain.GraphReport, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, report)
		return
	}

	verdict := "acyclic"
	if !report.Acyclic {
		verdict = "CYCLE DETECTED"
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Project:\t%s\n", report.ProjectID)
	fmt.Fprintf(tw, "Tasks:\t%d\n", report.TaskCount)
	fmt.Fprintf(tw, "Dependencies:\t%d\n", report.EdgeCount)
	fmt.Fprintf(tw, "Graph:\t%s\n", verdict)
	tw.Flush()
}

// printTask prints a single task to the writer
func printTask(w io.Writer, task *domain.Task, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, task)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeTaskFields(tw, task)
	tw.Flush()
}

func writeTaskFields(tw *tabwriter.Writer, task *domain.Task) {
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "Project:\t%s\n", task.ProjectID)
	fmt.Fprintf(tw, "Name:\t%s\n", task.Name)
	fmt.Fprintf(tw, "Status:\t%s\n", task.Status)
	if task.Description != nil && *task.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", *task.Description)
	}
	if task.AssigneeID != nil {
		fmt.Fprintf(tw, "Assignee:\t%s\n", *task.AssigneeID)
	}
	if task.DueDate != nil {
		fmt.Fprintf(tw, "Due:\t%s\n", task.DueDate.Format(dateLayout))
	}
	if task.EstimatedHours != nil || task.ActualHours != nil {
		fmt.Fprintf(tw, "Hours:\t%s estimated, %s actual\n", hours(task.EstimatedHours), hours(task.ActualHours))
	}
	fmt.Fprintf(tw, "Created:\t%s\n", task.CreatedAt.Format(timeLayout))
	fmt.Fprintf(tw, "Updated:\t%s\n", task.UpdatedAt.Format(timeLayout))
}

// printTaskDetail prints a task followed by its dependencies
func printTaskDetail(w io.Writer, detail *domain.TaskDetail, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, detail)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeTaskFields(tw, detail.Task)
	tw.Flush()

	fmt.Fprintln(w)
	printDependencies(w, &domain.TaskDependencies{
		TaskID:    detail.ID,
		BlockedBy: detail.BlockedBy,
		Blocks:    detail.Blocks,
	}, false)
}

// printTaskList prints tasks as a table
func printTaskList(w io.Writer, tasks []*domain.Task, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, tasks)
		return
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tSTATUS\n")
	fmt.Fprintf(tw, "--\t----\t------\n")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, truncate(t.Name, 40), t.Status)
	}
	tw.Flush()
}

// printEdge prints a single dependency edge
func printEdge(w io.Writer, edge *domain.DependencyEdge, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, edge)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", edge.ID)
	fmt.Fprintf(tw, "Dependent:\t%s\n", edge.DependentTaskID)
	fmt.Fprintf(tw, "Blocking:\t%s\n", edge.BlockingTaskID)
	fmt.Fprintf(tw, "Type:\t%s\n", edge.DependencyType)
	tw.Flush()
}

// printEdgeList prints the dependency edges of a project
func printEdgeList(w io.Writer, edges []*domain.DependencyEdge, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, edges)
		return
	}

	if len(edges) == 0 {
		fmt.Fprintln(w, "No dependencies found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tDEPENDENT\tBLOCKING\tTYPE\n")
	fmt.Fprintf(tw, "--\t---------\t--------\t----\n")
	for _, e := range edges {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.DependentTaskID, e.BlockingTaskID, e.DependencyType)
	}
	tw.Flush()
}

// printDependencies prints both directions of a task's dependencies
func printDependencies(w io.Writer, deps *domain.TaskDependencies, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, deps)
		return
	}

	if len(deps.BlockedBy) == 0 && len(deps.Blocks) == 0 {
		fmt.Fprintln(w, "No dependencies")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DIRECTION\tEDGE\tTASK\tNAME\tSTATUS\tTYPE\n")
	for _, b := range deps.BlockedBy {
		fmt.Fprintf(tw, "blocked by\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.BlockingTask.ID, truncate(b.BlockingTask.Name, 30), b.BlockingTask.Status, b.DependencyType)
	}
	for _, b := range deps.Blocks {
		fmt.Fprintf(tw, "blocks\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.DependentTask.ID, truncate(b.DependentTask.Name, 30), b.DependentTask.Status, b.DependencyType)
	}
	tw.Flush()
}

// printAudit prints audit entries as a table
func printAudit(w io.Writer, entries []*domain.AuditEntry, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, entries)
		return
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No audit entries found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "TIME\tMEMBER\tACTION\tRESULT\n")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Format(timeLayout), e.MemberID, e.Action, e.Result)
	}
	tw.Flush()
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	details := client.Details(err)
	if jsonOutput {
		body := map[string]interface{}{"message": err.Error()}
		if de, ok := domain.AsDomainError(err); ok {
			body["code"] = de.Code
		}
		if len(details) > 0 {
			body["details"] = details
		}
		printJSON(w, map[string]interface{}{"error": body})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
	for _, d := range details {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, map[string]interface{}{"message": message})
		return
	}

	fmt.Fprintln(w, message)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func hours(h *float64) string {
	if h == nil {
		return "-"
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}
