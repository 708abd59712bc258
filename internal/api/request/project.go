package request

import "time"

// CreateProjectRequest represents a request to create a project.
type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,notblank,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE ON_HOLD COMPLETED CANCELLED"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// UpdateProjectRequest represents a request to update a project.
type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE ON_HOLD COMPLETED CANCELLED"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// TemplateCustomizations overrides the defaults a template carries.
type TemplateCustomizations struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// CreateFromTemplateRequest represents a request to instantiate a project template.
type CreateFromTemplateRequest struct {
	TemplateID     string                  `json:"template_id"`
	Customizations *TemplateCustomizations `json:"customizations,omitempty"`
}
