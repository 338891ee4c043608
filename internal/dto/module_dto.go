package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateModuleRequest represents the request to create a reusable module
type CreateModuleRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=100" example:"Login & Session"`
	Description  string   `json:"description" binding:"max=500"`
	ThumbnailKey *string  `json:"thumbnailKey,omitempty"`
	Tags         []string `json:"tags,omitempty" binding:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateModuleRequest represents the request to update a module.
// All fields are optional.
type UpdateModuleRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Description  *string   `json:"description" binding:"omitempty,max=500"`
	ThumbnailKey *string   `json:"thumbnailKey,omitempty"`
	Tags         *[]string `json:"tags,omitempty" binding:"omitempty,max=20,dive,min=1,max=50"`
}

// ModuleResponse represents the module response
type ModuleResponse struct {
	ID           uuid.UUID          `json:"moduleId"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	ThumbnailKey *string            `json:"thumbnailKey,omitempty"`
	Tags         []string           `json:"tags"`
	CreatedBy    uuid.UUID          `json:"createdBy"`
	DisplayOrder int                `json:"displayOrder"`
	TestCases    []TestCaseResponse `json:"testCases"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// CreateTestCaseRequest represents the request to add a test case to a module
type CreateTestCaseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255" example:"Login with valid credentials"`
	Description string `json:"description" binding:"max=2000"`
	Priority    string `json:"priority" binding:"omitempty,oneof=HIGH MEDIUM LOW"`
}

// UpdateTestCaseRequest represents the request to update a test case
type UpdateTestCaseRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=HIGH MEDIUM LOW"`
}

// TestCaseResponse represents the test case response
type TestCaseResponse struct {
	ID           uuid.UUID `json:"testCaseId"`
	ModuleID     uuid.UUID `json:"moduleId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Priority     string    `json:"priority"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReorderRequest carries the caller's full desired order for an ordered
// sibling scope. Position in the slice becomes the stored display order.
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,dive,uuid"`
}
