package dto

import (
	"time"

	"github.com/google/uuid"
)

// AttachModuleRequest represents the request to attach a module to a
// project's checklist. Position is optional; omitted means "append".
type AttachModuleRequest struct {
	ProjectID uuid.UUID `json:"projectId" binding:"required"`
	ModuleID  uuid.UUID `json:"moduleId" binding:"required"`
	Position  *int      `json:"position,omitempty" binding:"omitempty,min=0"`
}

// AddCustomTestCaseRequest represents the request to add a custom test case
// to one checklist module instance
type AddCustomTestCaseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Priority    string `json:"priority" binding:"omitempty,oneof=HIGH MEDIUM LOW"`
}

// UpdateResultRequest represents the request to update a checklist result.
// All fields are optional; at least one must be provided.
type UpdateResultRequest struct {
	Status   *string    `json:"status" binding:"omitempty,oneof=PASS FAIL PENDING"`
	Notes    *string    `json:"notes" binding:"omitempty,max=4000"`
	TesterID *uuid.UUID `json:"testerId,omitempty"`
}

// ResultResponse represents a single checklist result row
type ResultResponse struct {
	ID                uuid.UUID  `json:"resultId"`
	ChecklistModuleID uuid.UUID  `json:"checklistModuleId"`
	TestCaseID        *uuid.UUID `json:"testCaseId,omitempty"`
	CustomTestCaseID  *uuid.UUID `json:"customTestCaseId,omitempty"`
	TesterID          uuid.UUID  `json:"testerId"`
	TesterName        string     `json:"testerName,omitempty"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// ChecklistCustomTestCaseResponse represents a custom test case on a
// checklist module instance
type ChecklistCustomTestCaseResponse struct {
	ID          uuid.UUID `json:"customTestCaseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ChecklistModuleResponse represents one module instance on a project's
// checklist, with its cases and results
type ChecklistModuleResponse struct {
	ID              uuid.UUID                         `json:"checklistModuleId"`
	ProjectID       uuid.UUID                         `json:"projectId"`
	ModuleID        uuid.UUID                         `json:"moduleId"`
	ModuleName      string                            `json:"moduleName"`
	DisplayOrder    int                               `json:"displayOrder"`
	TestCases       []TestCaseResponse                `json:"testCases"`
	CustomTestCases []ChecklistCustomTestCaseResponse `json:"customTestCases"`
	Results         []ResultResponse                  `json:"results"`
	CreatedAt       time.Time                         `json:"createdAt"`
}

// ChecklistResponse is the full checklist for a project
type ChecklistResponse struct {
	ProjectID uuid.UUID                 `json:"projectId"`
	Modules   []ChecklistModuleResponse `json:"modules"`
}

// ProgressCounts holds pass/fail/pending counts for one aggregation scope
type ProgressCounts struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Pending int `json:"pending"`
	Total   int `json:"total"`
	// Percent is (passed+failed)/total*100 rounded half away from zero,
	// 0 when total is 0.
	Percent int `json:"percent"`
}

// ModuleProgressResponse is the progress of one checklist module instance
type ModuleProgressResponse struct {
	ChecklistModuleID uuid.UUID `json:"checklistModuleId"`
	ModuleName        string    `json:"moduleName"`
	ProgressCounts
}

// ProgressResponse is the aggregate progress for a project's checklist
type ProgressResponse struct {
	ProjectID uuid.UUID                `json:"projectId"`
	Overall   ProgressCounts           `json:"overall"`
	Modules   []ModuleProgressResponse `json:"modules"`
}
