package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
)

// ModuleRepository defines the interface for module and test case data
// access. Modules and their test cases share a repository because a test
// case never exists outside its module.
type ModuleRepository interface {
	Create(ctx context.Context, module *domain.Module) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Module, error)
	FindAll(ctx context.Context) ([]*domain.Module, error)
	FindByName(ctx context.Context, name string) (*domain.Module, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Module, error)
	Update(ctx context.Context, module *domain.Module) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountModules(ctx context.Context) (int64, error)
	Reorder(ctx context.Context, ids []uuid.UUID) error
	ResequenceModules(ctx context.Context) error
	ResequenceTestCases(ctx context.Context, moduleID uuid.UUID) error

	CreateTestCase(ctx context.Context, testCase *domain.TestCase) error
	FindTestCaseByID(ctx context.Context, id uuid.UUID) (*domain.TestCase, error)
	FindTestCasesByModuleID(ctx context.Context, moduleID uuid.UUID) ([]*domain.TestCase, error)
	UpdateTestCase(ctx context.Context, testCase *domain.TestCase) error
	DeleteTestCase(ctx context.Context, id uuid.UUID) error
	CountTestCases(ctx context.Context, moduleID uuid.UUID) (int64, error)
	ReorderTestCases(ctx context.Context, moduleID uuid.UUID, ids []uuid.UUID) error
}

// moduleRepositoryImpl is the GORM implementation of ModuleRepository
type moduleRepositoryImpl struct {
	db *gorm.DB
}

// NewModuleRepository creates a new instance of ModuleRepository
func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepositoryImpl{db: db}
}

// Create creates a new module
func (r *moduleRepositoryImpl) Create(ctx context.Context, module *domain.Module) error {
	if err := r.db.WithContext(ctx).Create(module).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a module by ID with its test cases in display order
func (r *moduleRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Module, error) {
	var module domain.Module
	if err := r.db.WithContext(ctx).
		Preload("TestCases", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("id = ?", id).
		First(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

// FindAll finds all modules in library display order with their test cases
func (r *moduleRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Module, error) {
	var modules []*domain.Module
	if err := r.db.WithContext(ctx).
		Preload("TestCases", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Order("display_order ASC").
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// FindByName finds a module by name. Returns (nil, nil) when absent.
func (r *moduleRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Module, error) {
	var module domain.Module
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &module, nil
}

// FindByIDs finds modules by their IDs in a single query
func (r *moduleRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Module, error) {
	if len(ids) == 0 {
		return []*domain.Module{}, nil
	}
	var modules []*domain.Module
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// Update updates a module
func (r *moduleRepositoryImpl) Update(ctx context.Context, module *domain.Module) error {
	if err := r.db.WithContext(ctx).Save(module).Error; err != nil {
		return err
	}
	return nil
}

// Delete deletes a module and its test cases in one transaction
func (r *moduleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("module_id = ?", id).
			Delete(&domain.TestCase{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Where("id = ?", id).Delete(&domain.Module{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountModules counts all modules in the library
func (r *moduleRepositoryImpl) CountModules(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Module{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Reorder assigns each module a display order equal to its position in ids.
// Runs in one transaction; an unknown ID rolls back the whole operation.
func (r *moduleRepositoryImpl) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			result := tx.Model(&domain.Module{}).
				Where("id = ?", id).
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

// ResequenceModules closes display-order gaps left by a module deletion so
// positions stay contiguous from zero.
func (r *moduleRepositoryImpl) ResequenceModules(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&domain.Module{}).
			Order("display_order ASC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		for position, id := range ids {
			if err := tx.Model(&domain.Module{}).
				Where("id = ?", id).
				Update("display_order", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ResequenceTestCases closes display-order gaps within a module
func (r *moduleRepositoryImpl) ResequenceTestCases(ctx context.Context, moduleID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&domain.TestCase{}).
			Where("module_id = ?", moduleID).
			Order("display_order ASC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		for position, id := range ids {
			if err := tx.Model(&domain.TestCase{}).
				Where("id = ?", id).
				Update("display_order", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateTestCase creates a new test case
func (r *moduleRepositoryImpl) CreateTestCase(ctx context.Context, testCase *domain.TestCase) error {
	if err := r.db.WithContext(ctx).Create(testCase).Error; err != nil {
		return err
	}
	return nil
}

// FindTestCaseByID finds a test case by ID
func (r *moduleRepositoryImpl) FindTestCaseByID(ctx context.Context, id uuid.UUID) (*domain.TestCase, error) {
	var testCase domain.TestCase
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&testCase).Error; err != nil {
		return nil, err
	}
	return &testCase, nil
}

// FindTestCasesByModuleID finds all test cases of a module in display order
func (r *moduleRepositoryImpl) FindTestCasesByModuleID(ctx context.Context, moduleID uuid.UUID) ([]*domain.TestCase, error) {
	var testCases []*domain.TestCase
	if err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("display_order ASC").
		Find(&testCases).Error; err != nil {
		return nil, err
	}
	return testCases, nil
}

// UpdateTestCase updates a test case
func (r *moduleRepositoryImpl) UpdateTestCase(ctx context.Context, testCase *domain.TestCase) error {
	if err := r.db.WithContext(ctx).Save(testCase).Error; err != nil {
		return err
	}
	return nil
}

// DeleteTestCase deletes a test case
func (r *moduleRepositoryImpl) DeleteTestCase(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().
		Where("id = ?", id).
		Delete(&domain.TestCase{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountTestCases counts the test cases of a module
func (r *moduleRepositoryImpl) CountTestCases(ctx context.Context, moduleID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.TestCase{}).
		Where("module_id = ?", moduleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReorderTestCases assigns each test case of the module a display order
// equal to its position in ids. The module scope is part of the predicate
// so a test case from another module fails the whole operation.
func (r *moduleRepositoryImpl) ReorderTestCases(ctx context.Context, moduleID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			result := tx.Model(&domain.TestCase{}).
				Where("id = ? AND module_id = ?", id, moduleID).
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
