package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Module is a reusable named group of test cases, independent of any
// project until attached to one as a checklist module instance.
type Module struct {
	BaseModel
	Name         string         `gorm:"type:varchar(255);not null;index:idx_modules_name" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	ThumbnailKey *string        `gorm:"type:text" json:"thumbnailKey,omitempty"`
	Tags         datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid;not null;index:idx_modules_created_by" json:"createdBy"`
	DisplayOrder int            `gorm:"type:int;not null;default:0;index:idx_modules_display_order" json:"displayOrder"`
	TestCases    []TestCase     `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"testCases,omitempty"`
}

// TestCase belongs to exactly one module and is deleted with it.
// DisplayOrder is its zero-based position within the module.
type TestCase struct {
	BaseModel
	ModuleID     uuid.UUID `gorm:"type:uuid;not null;index:idx_test_cases_module_id" json:"moduleId"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Priority     Priority  `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
	DisplayOrder int       `gorm:"type:int;not null;default:0;index:idx_test_cases_display_order" json:"displayOrder"`
}

// TableName specifies the table name for Module
func (Module) TableName() string {
	return "modules"
}

// TableName specifies the table name for TestCase
func (TestCase) TableName() string {
	return "test_cases"
}
