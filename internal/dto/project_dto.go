package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest represents the request to create a new project
// @Description Request body for creating a new QA project
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,min=2,max=100" example:"Mobile App v2.4 Release"`
	Description string     `json:"description" binding:"max=500" example:"Regression pass for the 2.4 release"`
	Version     string     `json:"version" binding:"max=50" example:"2.4.0"`
	Platform    string     `json:"platform" binding:"max=100" example:"iOS"`
	Status      string     `json:"status" binding:"omitempty,oneof=DRAFT IN_PROGRESS COMPLETED" example:"DRAFT"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=HIGH MEDIUM LOW" example:"HIGH"`
	DueDate     *time.Time `json:"dueDate,omitempty" example:"2026-09-30T23:59:59Z"`
}

// UpdateProjectRequest represents the request to update a project.
// All fields are optional.
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	Version     *string    `json:"version" binding:"omitempty,max=50"`
	Platform    *string    `json:"platform" binding:"omitempty,max=100"`
	Status      *string    `json:"status" binding:"omitempty,oneof=DRAFT IN_PROGRESS COMPLETED"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=HIGH MEDIUM LOW"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// ProjectResponse represents the project response
type ProjectResponse struct {
	ID          uuid.UUID        `json:"projectId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name        string           `json:"name" example:"Mobile App v2.4 Release"`
	Description string           `json:"description"`
	Version     string           `json:"version"`
	Platform    string           `json:"platform"`
	Status      string           `json:"status" example:"IN_PROGRESS"`
	Priority    string           `json:"priority" example:"HIGH"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	CreatedBy   uuid.UUID        `json:"createdBy"`
	ArchivedAt  *time.Time       `json:"archivedAt,omitempty"`
	Testers     []TesterResponse `json:"testers,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// AssignTestersRequest represents the request to assign testers to a project
type AssignTestersRequest struct {
	TesterIDs []uuid.UUID `json:"testerIds" binding:"required,min=1,dive,uuid"`
}

// AssignTesterResult reports the outcome for a single tester in an
// assignment request
type AssignTesterResult struct {
	TesterID uuid.UUID `json:"testerId"`
	Success  bool      `json:"success"`
	Skipped  bool      `json:"skipped"`
	Error    string    `json:"error,omitempty"`
}

// AssignTestersResponse represents the aggregate result of a tester
// assignment request
type AssignTestersResponse struct {
	TotalRequested int                  `json:"totalRequested"`
	TotalAssigned  int                  `json:"totalAssigned"`
	TotalSkipped   int                  `json:"totalSkipped"`
	Results        []AssignTesterResult `json:"results"`
}
