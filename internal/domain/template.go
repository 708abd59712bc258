package domain

// TemplateCategory groups project templates.
type TemplateCategory string

const (
	TemplateEvent    TemplateCategory = "event"
	TemplateHome     TemplateCategory = "home"
	TemplateTravel   TemplateCategory = "travel"
	TemplatePersonal TemplateCategory = "personal"
)

// ProjectTemplate is a reusable project plan.
type ProjectTemplate struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Category        TemplateCategory `json:"category"`
	EstimatedDays   int              `json:"estimated_days"`
	SuggestedBudget float64          `json:"suggested_budget"`
	Tasks           []TemplateTask   `json:"tasks"`
}

// TemplateTask is one task of a ProjectTemplate. DependsOn names other
// tasks of the same template that must finish first.
type TemplateTask struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimated_hours"`
	DaysFromStart  *int     `json:"days_from_start,omitempty"`
	DependsOn      []string `json:"depends_on,omitempty"`
}

// EdgeCount returns the number of dependency edges the template declares.
func (t *ProjectTemplate) EdgeCount() int {
	n := 0
	for _, task := range t.Tasks {
		n += len(task.DependsOn)
	}
	return n
}
