package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
)

// ProjectRepository defines the interface for project data access,
// including the tester assignment join table.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindActive(ctx context.Context) ([]*domain.Project, error)
	FindArchived(ctx context.Context) ([]*domain.Project, error)
	FindActiveByName(ctx context.Context, name string) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	SetArchived(ctx context.Context, id uuid.UUID, archivedAt *time.Time) error
	PermanentDelete(ctx context.Context, id uuid.UUID) error

	AssignTester(ctx context.Context, assignment *domain.ProjectTester) error
	FindAssignment(ctx context.Context, projectID, testerID uuid.UUID) (*domain.ProjectTester, error)
	FindAssignmentsByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectTester, error)
	UnassignTester(ctx context.Context, projectID, testerID uuid.UUID) error
}

// projectRepositoryImpl is the GORM implementation of ProjectRepository
type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

// Create creates a new project
func (r *projectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a project by ID regardless of its archive state
func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindActive finds all non-archived projects, newest first
func (r *projectRepositoryImpl) FindActive(ctx context.Context) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).
		Where("archived_at IS NULL").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// FindArchived finds all archived projects, most recently archived first
func (r *projectRepositoryImpl) FindArchived(ctx context.Context) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).
		Where("archived_at IS NOT NULL").
		Order("archived_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// FindActiveByName finds a non-archived project with the given name.
// Returns (nil, nil) when no such project exists.
func (r *projectRepositoryImpl) FindActiveByName(ctx context.Context, name string) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Where("name = ? AND archived_at IS NULL", name).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *projectRepositoryImpl) Update(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return err
	}
	return nil
}

// SetArchived sets or clears the archive timestamp of a project
func (r *projectRepositoryImpl) SetArchived(ctx context.Context, id uuid.UUID, archivedAt *time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Update("archived_at", archivedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PermanentDelete hard deletes a project. Checklist modules, results and
// tester assignments go with it in one transaction; the archived-state
// guard lives in the service layer.
func (r *projectRepositoryImpl) PermanentDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var instanceIDs []uuid.UUID
		if err := tx.Model(&domain.ChecklistModule{}).
			Where("project_id = ?", id).
			Pluck("id", &instanceIDs).Error; err != nil {
			return err
		}

		if len(instanceIDs) > 0 {
			if err := tx.Unscoped().
				Where("checklist_module_id IN ?", instanceIDs).
				Delete(&domain.ChecklistResult{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().
				Where("checklist_module_id IN ?", instanceIDs).
				Delete(&domain.CustomTestCase{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().
				Where("project_id = ?", id).
				Delete(&domain.ChecklistModule{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).
			Delete(&domain.ProjectTester{}).Error; err != nil {
			return err
		}

		result := tx.Unscoped().Where("id = ?", id).Delete(&domain.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AssignTester creates a project-tester join row
func (r *projectRepositoryImpl) AssignTester(ctx context.Context, assignment *domain.ProjectTester) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return err
	}
	return nil
}

// FindAssignment finds the join row for a project and tester
func (r *projectRepositoryImpl) FindAssignment(ctx context.Context, projectID, testerID uuid.UUID) (*domain.ProjectTester, error) {
	var assignment domain.ProjectTester
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND tester_id = ?", projectID, testerID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindAssignmentsByProjectID finds all tester assignments for a project
// with the tester record preloaded
func (r *projectRepositoryImpl) FindAssignmentsByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectTester, error) {
	var assignments []*domain.ProjectTester
	if err := r.db.WithContext(ctx).
		Preload("Tester").
		Where("project_id = ?", projectID).
		Order("assigned_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// UnassignTester removes the join row only. Deleting a row that does not
// exist is not an error.
func (r *projectRepositoryImpl) UnassignTester(ctx context.Context, projectID, testerID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND tester_id = ?", projectID, testerID).
		Delete(&domain.ProjectTester{}).Error; err != nil {
		return err
	}
	return nil
}
