package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"qa-checklist-api/internal/client"
	"qa-checklist-api/internal/domain"
	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/repository"
	"qa-checklist-api/internal/response"
)

// AttachmentService defines the interface for result attachment logic:
// validated image uploads, listing and deletion.
type AttachmentService interface {
	UploadAttachment(ctx context.Context, resultID uuid.UUID, upload *dto.AttachmentUpload, userID uuid.UUID) (*dto.AttachmentResponse, error)
	GetAttachments(ctx context.Context, resultID uuid.UUID) ([]*dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error
}

// attachmentServiceImpl is the implementation of AttachmentService
type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepository
	checklistRepo  repository.ChecklistRepository
	s3Client       client.S3ClientInterface
	logger         *zap.Logger
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(attachmentRepo repository.AttachmentRepository, checklistRepo repository.ChecklistRepository, s3Client client.S3ClientInterface, logger *zap.Logger) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		checklistRepo:  checklistRepo,
		s3Client:       s3Client,
		logger:         logger,
	}
}

// UploadAttachment validates and stores one image attachment for a result.
// The file content is written to object storage first; the metadata row is
// only created after the upload succeeds.
func (s *attachmentServiceImpl) UploadAttachment(ctx context.Context, resultID uuid.UUID, upload *dto.AttachmentUpload, userID uuid.UUID) (*dto.AttachmentResponse, error) {
	if err := domain.ValidateUpload(upload.ContentType, upload.Size); err != nil {
		return nil, response.NewValidationError("Invalid attachment", err.Error())
	}

	if _, err := s.checklistRepo.FindResultByID(ctx, resultID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Result not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch result", err.Error())
	}

	fileKey := s.s3Client.GenerateFileKey(resultID, upload.FileName)
	if err := s.s3Client.UploadFile(ctx, fileKey, upload.Content, upload.ContentType); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store attachment", err.Error())
	}

	attachment := &domain.ResultAttachment{
		ResultID:    resultID,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		FileSize:    upload.Size,
		FileKey:     fileKey,
		UploadedBy:  userID,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// best effort, the cleanup job catches anything left behind
		if delErr := s.s3Client.DeleteFile(ctx, fileKey); delErr != nil {
			s.logger.Warn("Failed to remove stored file after metadata failure",
				zap.String("file_key", fileKey),
				zap.Error(delErr))
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save attachment metadata", err.Error())
	}

	return s.toAttachmentResponse(attachment), nil
}

// GetAttachments lists the attachments of a result with download URLs
func (s *attachmentServiceImpl) GetAttachments(ctx context.Context, resultID uuid.UUID) ([]*dto.AttachmentResponse, error) {
	if _, err := s.checklistRepo.FindResultByID(ctx, resultID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Result not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch result", err.Error())
	}

	attachments, err := s.attachmentRepo.FindByResultID(ctx, resultID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch attachments", err.Error())
	}

	responses := make([]*dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		responses = append(responses, s.toAttachmentResponse(attachment))
	}
	return responses, nil
}

// DeleteAttachment removes an attachment's metadata and its stored file
func (s *attachmentServiceImpl) DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Attachment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch attachment", err.Error())
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment", err.Error())
	}

	if err := s.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
		s.logger.Warn("Failed to delete stored file for removed attachment",
			zap.String("file_key", attachment.FileKey),
			zap.Error(err))
	}
	return nil
}

// toAttachmentResponse converts domain.ResultAttachment to its response form
func (s *attachmentServiceImpl) toAttachmentResponse(attachment *domain.ResultAttachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:          attachment.ID,
		ResultID:    attachment.ResultID,
		FileName:    attachment.FileName,
		FileURL:     s.s3Client.GetFileURL(attachment.FileKey),
		FileSize:    attachment.FileSize,
		ContentType: attachment.ContentType,
		UploadedBy:  attachment.UploadedBy,
		UploadedAt:  attachment.CreatedAt,
	}
}
