package domain

import "github.com/google/uuid"

// ResultStatus is the three-valued outcome of a checklist test.
// Any status may be set from any other; there are no forbidden transitions.
type ResultStatus string

const (
	ResultStatusPass    ResultStatus = "PASS"
	ResultStatusFail    ResultStatus = "FAIL"
	ResultStatusPending ResultStatus = "PENDING"
)

// IsValidResultStatus reports whether s is one of the known result statuses
func IsValidResultStatus(s ResultStatus) bool {
	switch s {
	case ResultStatusPass, ResultStatusFail, ResultStatusPending:
		return true
	}
	return false
}

// ChecklistModule is one attachment of a Module to a Project. The same
// module may be attached to the same project more than once; each row is an
// independent instance with its own results. Deleting it cascades to its
// results and custom test cases.
type ChecklistModule struct {
	BaseModel
	ProjectID       uuid.UUID         `gorm:"type:uuid;not null;index:idx_checklist_modules_project_id" json:"projectId"`
	ModuleID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_checklist_modules_module_id" json:"moduleId"`
	DisplayOrder    int               `gorm:"type:int;not null;default:0;index:idx_checklist_modules_display_order" json:"displayOrder"`
	Module          Module            `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"module,omitempty"`
	Results         []ChecklistResult `gorm:"foreignKey:ChecklistModuleID;constraint:OnDelete:CASCADE" json:"results,omitempty"`
	CustomTestCases []CustomTestCase  `gorm:"foreignKey:ChecklistModuleID;constraint:OnDelete:CASCADE" json:"customTestCases,omitempty"`
}

// CustomTestCase is a test case added directly to one checklist module
// instance. It is not part of the reusable module library.
type CustomTestCase struct {
	BaseModel
	ChecklistModuleID uuid.UUID `gorm:"type:uuid;not null;index:idx_custom_test_cases_checklist_module_id" json:"checklistModuleId"`
	Title             string    `gorm:"type:varchar(255);not null" json:"title"`
	Description       string    `gorm:"type:text" json:"description"`
	Priority          Priority  `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
}

// ChecklistResult is one row per (checklist module instance, test case,
// tester) tuple. Exactly one of TestCaseID and CustomTestCaseID is set.
type ChecklistResult struct {
	BaseModel
	ChecklistModuleID uuid.UUID    `gorm:"type:uuid;not null;index:idx_checklist_results_checklist_module_id" json:"checklistModuleId"`
	TestCaseID        *uuid.UUID   `gorm:"type:uuid;index:idx_checklist_results_test_case_id" json:"testCaseId,omitempty"`
	CustomTestCaseID  *uuid.UUID   `gorm:"type:uuid;index:idx_checklist_results_custom_test_case_id" json:"customTestCaseId,omitempty"`
	TesterID          uuid.UUID    `gorm:"type:uuid;not null;index:idx_checklist_results_tester_id" json:"testerId"`
	Status            ResultStatus `gorm:"type:varchar(10);not null;default:'PENDING';index:idx_checklist_results_status" json:"status"`
	Notes             string       `gorm:"type:text" json:"notes"`
	Tester            Tester       `gorm:"foreignKey:TesterID;constraint:OnDelete:CASCADE" json:"tester,omitempty"`
}

// TableName specifies the table name for ChecklistModule
func (ChecklistModule) TableName() string {
	return "checklist_modules"
}

// TableName specifies the table name for CustomTestCase
func (CustomTestCase) TableName() string {
	return "custom_test_cases"
}

// TableName specifies the table name for ChecklistResult
func (ChecklistResult) TableName() string {
	return "checklist_results"
}
