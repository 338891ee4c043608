package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
)

// AttachmentRepository defines the interface for result attachment data access
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.ResultAttachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ResultAttachment, error)
	FindByResultID(ctx context.Context, resultID uuid.UUID) ([]*domain.ResultAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
	FindOrphaned(ctx context.Context) ([]*domain.ResultAttachment, error)
}

// attachmentRepositoryImpl is the GORM implementation of AttachmentRepository
type attachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

// Create creates a new attachment record
func (r *attachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.ResultAttachment) error {
	if err := r.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an attachment by its ID
func (r *attachmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ResultAttachment, error) {
	var attachment domain.ResultAttachment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// FindByResultID finds all attachments of a result, newest first
func (r *attachmentRepositoryImpl) FindByResultID(ctx context.Context, resultID uuid.UUID) ([]*domain.ResultAttachment, error) {
	var attachments []*domain.ResultAttachment
	if err := r.db.WithContext(ctx).
		Where("result_id = ?", resultID).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Delete deletes an attachment record
func (r *attachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().
		Where("id = ?", id).
		Delete(&domain.ResultAttachment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBatch deletes attachment records by ID in a single statement
func (r *attachmentRepositoryImpl) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Unscoped().
		Where("id IN ?", ids).
		Delete(&domain.ResultAttachment{}).Error; err != nil {
		return err
	}
	return nil
}

// FindOrphaned finds attachment records whose parent result no longer
// exists. The cleanup job removes these together with their stored objects.
func (r *attachmentRepositoryImpl) FindOrphaned(ctx context.Context) ([]*domain.ResultAttachment, error) {
	var attachments []*domain.ResultAttachment
	if err := r.db.WithContext(ctx).
		Where("result_id NOT IN (?)",
			r.db.Model(&domain.ChecklistResult{}).Select("id")).
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}
