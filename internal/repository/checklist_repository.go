package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
)

// ChecklistRepository defines the interface for checklist data access:
// module instances, their results and their custom test cases.
type ChecklistRepository interface {
	CreateInstance(ctx context.Context, instance *domain.ChecklistModule) error
	FindInstanceByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistModule, error)
	FindInstancesByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ChecklistModule, error)
	PluckInstanceIDsByProjectID(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
	CountInstances(ctx context.Context, projectID uuid.UUID) (int64, error)
	ShiftInstancesFrom(ctx context.Context, projectID uuid.UUID, position int) error
	DeleteInstance(ctx context.Context, id uuid.UUID) error
	ReorderInstances(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error
	ResequenceInstances(ctx context.Context, projectID uuid.UUID) error

	CreateResults(ctx context.Context, results []*domain.ChecklistResult) error
	FindResultByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistResult, error)
	UpdateResult(ctx context.Context, result *domain.ChecklistResult) error

	CreateCustomTestCase(ctx context.Context, testCase *domain.CustomTestCase) error
}

// checklistRepositoryImpl is the GORM implementation of ChecklistRepository
type checklistRepositoryImpl struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new instance of ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &checklistRepositoryImpl{db: db}
}

// CreateInstance creates a new checklist module instance
func (r *checklistRepositoryImpl) CreateInstance(ctx context.Context, instance *domain.ChecklistModule) error {
	if err := r.db.WithContext(ctx).Create(instance).Error; err != nil {
		return err
	}
	return nil
}

// FindInstanceByID finds a checklist module instance with its module, test
// cases, custom test cases and results preloaded
func (r *checklistRepositoryImpl) FindInstanceByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistModule, error) {
	var instance domain.ChecklistModule
	if err := r.db.WithContext(ctx).
		Preload("Module").
		Preload("Module.TestCases", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("CustomTestCases").
		Preload("Results").
		Preload("Results.Tester").
		Where("id = ?", id).
		First(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// FindInstancesByProjectID finds all checklist module instances of a
// project in display order, fully preloaded
func (r *checklistRepositoryImpl) FindInstancesByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ChecklistModule, error) {
	var instances []*domain.ChecklistModule
	if err := r.db.WithContext(ctx).
		Preload("Module").
		Preload("Module.TestCases", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("CustomTestCases").
		Preload("Results").
		Preload("Results.Tester").
		Where("project_id = ?", projectID).
		Order("display_order ASC").
		Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// PluckInstanceIDsByProjectID returns only the instance IDs of a project,
// used for reorder ownership validation
func (r *checklistRepositoryImpl) PluckInstanceIDsByProjectID(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.ChecklistModule{}).
		Where("project_id = ?", projectID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CountInstances counts the checklist module instances of a project
func (r *checklistRepositoryImpl) CountInstances(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ChecklistModule{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ShiftInstancesFrom makes room at position by incrementing the display
// order of every instance at or after it
func (r *checklistRepositoryImpl) ShiftInstancesFrom(ctx context.Context, projectID uuid.UUID, position int) error {
	return r.db.WithContext(ctx).
		Model(&domain.ChecklistModule{}).
		Where("project_id = ? AND display_order >= ?", projectID, position).
		Update("display_order", gorm.Expr("display_order + 1")).Error
}

// DeleteInstance deletes a checklist module instance, cascading its
// results and custom test cases in one transaction
func (r *checklistRepositoryImpl) DeleteInstance(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("checklist_module_id = ?", id).
			Delete(&domain.ChecklistResult{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("checklist_module_id = ?", id).
			Delete(&domain.CustomTestCase{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Where("id = ?", id).Delete(&domain.ChecklistModule{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ReorderInstances assigns each instance of the project a display order
// equal to its position in ids. The project scope is part of the update
// predicate, so an instance belonging to another project rolls back the
// whole operation.
func (r *checklistRepositoryImpl) ReorderInstances(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			result := tx.Model(&domain.ChecklistModule{}).
				Where("id = ? AND project_id = ?", id, projectID).
				Update("display_order", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// ResequenceInstances closes display-order gaps left by a detach so
// positions stay contiguous from zero
func (r *checklistRepositoryImpl) ResequenceInstances(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&domain.ChecklistModule{}).
			Where("project_id = ?", projectID).
			Order("display_order ASC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		for position, id := range ids {
			if err := tx.Model(&domain.ChecklistModule{}).
				Where("id = ?", id).
				Update("display_order", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateResults creates result rows in a single batch
func (r *checklistRepositoryImpl) CreateResults(ctx context.Context, results []*domain.ChecklistResult) error {
	if len(results) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&results).Error; err != nil {
		return err
	}
	return nil
}

// FindResultByID finds a checklist result by ID
func (r *checklistRepositoryImpl) FindResultByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistResult, error) {
	var result domain.ChecklistResult
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateResult updates a checklist result
func (r *checklistRepositoryImpl) UpdateResult(ctx context.Context, result *domain.ChecklistResult) error {
	if err := r.db.WithContext(ctx).Save(result).Error; err != nil {
		return err
	}
	return nil
}

// CreateCustomTestCase creates a custom test case on a checklist module
// instance
func (r *checklistRepositoryImpl) CreateCustomTestCase(ctx context.Context, testCase *domain.CustomTestCase) error {
	if err := r.db.WithContext(ctx).Create(testCase).Error; err != nil {
		return err
	}
	return nil
}
