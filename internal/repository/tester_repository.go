package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
)

// TesterRepository defines the interface for tester data access
type TesterRepository interface {
	Create(ctx context.Context, tester *domain.Tester) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tester, error)
	FindAll(ctx context.Context) ([]*domain.Tester, error)
	FindByEmail(ctx context.Context, email string) (*domain.Tester, error)
	Update(ctx context.Context, tester *domain.Tester) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// testerRepositoryImpl is the GORM implementation of TesterRepository
type testerRepositoryImpl struct {
	db *gorm.DB
}

// NewTesterRepository creates a new instance of TesterRepository
func NewTesterRepository(db *gorm.DB) TesterRepository {
	return &testerRepositoryImpl{db: db}
}

// Create creates a new tester
func (r *testerRepositoryImpl) Create(ctx context.Context, tester *domain.Tester) error {
	if err := r.db.WithContext(ctx).Create(tester).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a tester by ID
func (r *testerRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tester, error) {
	var tester domain.Tester
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tester).Error; err != nil {
		return nil, err
	}
	return &tester, nil
}

// FindAll finds all testers ordered by name
func (r *testerRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Tester, error) {
	var testers []*domain.Tester
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&testers).Error; err != nil {
		return nil, err
	}
	return testers, nil
}

// FindByEmail finds a tester by email. Returns (nil, nil) when absent.
func (r *testerRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Tester, error) {
	var tester domain.Tester
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&tester).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tester, nil
}

// Update updates a tester
func (r *testerRepositoryImpl) Update(ctx context.Context, tester *domain.Tester) error {
	if err := r.db.WithContext(ctx).Save(tester).Error; err != nil {
		return err
	}
	return nil
}

// Delete deletes a tester and their project assignments
func (r *testerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tester_id = ?", id).
			Delete(&domain.ProjectTester{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Where("id = ?", id).Delete(&domain.Tester{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
