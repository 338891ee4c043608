package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus represents the workflow status of a project
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "DRAFT"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
)

// IsValidProjectStatus reports whether s is one of the known status values
func IsValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project represents a QA project tracked with a checklist.
// ArchivedAt drives the active → archived → permanently-deleted lifecycle:
// nil means active, non-nil means archived. Permanent deletion is a hard
// delete and is only reachable from the archived state.
type Project struct {
	BaseModel
	Name             string            `gorm:"type:varchar(255);not null;index:idx_projects_name" json:"name"`
	Description      string            `gorm:"type:text" json:"description"`
	Version          string            `gorm:"type:varchar(50)" json:"version"`
	Platform         string            `gorm:"type:varchar(100)" json:"platform"`
	Status           ProjectStatus     `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_projects_status" json:"status"`
	Priority         Priority          `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
	DueDate          *time.Time        `gorm:"type:timestamp" json:"dueDate,omitempty"`
	CreatedBy        uuid.UUID         `gorm:"type:uuid;not null;index:idx_projects_created_by" json:"createdBy"`
	ArchivedAt       *time.Time        `gorm:"type:timestamp;index:idx_projects_archived_at" json:"archivedAt,omitempty"`
	ChecklistModules []ChecklistModule `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"checklistModules,omitempty"`
	Testers          []ProjectTester   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"testers,omitempty"`
}

// IsArchived returns true if the project has been archived
func (p *Project) IsArchived() bool {
	return p.ArchivedAt != nil
}

// ProjectTester links a tester to a project. Unassigning removes only this
// row; recorded results keep their tester reference.
type ProjectTester struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index:idx_project_testers_project_id;uniqueIndex:uq_project_testers_project_tester" json:"projectId"`
	TesterID   uuid.UUID `gorm:"type:uuid;not null;index:idx_project_testers_tester_id;uniqueIndex:uq_project_testers_project_tester" json:"testerId"`
	AssignedAt time.Time `gorm:"type:timestamp;not null;default:now()" json:"assignedAt"`
	Tester     Tester    `gorm:"foreignKey:TesterID;constraint:OnDelete:CASCADE" json:"tester,omitempty"`
}

// BeforeCreate assigns an ID when the database does not (sqlite in tests)
func (pt *ProjectTester) BeforeCreate(tx *gorm.DB) error {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	if pt.AssignedAt.IsZero() {
		pt.AssignedAt = time.Now().UTC()
	}
	return nil
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// TableName specifies the table name for ProjectTester
func (ProjectTester) TableName() string {
	return "project_testers"
}
