package job

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"qa-checklist-api/internal/client"
	"qa-checklist-api/internal/domain"
)

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.ResultAttachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ResultAttachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByResultID(ctx context.Context, resultID uuid.UUID) ([]*domain.ResultAttachment, error) {
	args := m.Called(ctx, resultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ResultAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttachmentRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindOrphaned(ctx context.Context) ([]*domain.ResultAttachment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ResultAttachment), args.Error(1)
}

func orphanedAttachment(key string) *domain.ResultAttachment {
	return &domain.ResultAttachment{
		BaseModel: domain.BaseModel{
			ID: uuid.New(),
		},
		ResultID:    uuid.New(),
		FileName:    "screenshot.png",
		ContentType: "image/png",
		FileSize:    1024,
		FileKey:     key,
		UploadedBy:  uuid.New(),
	}
}

func TestCleanupJob_Run_OrphanedFilesDeleted(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	logger := zap.NewNop()

	job := NewCleanupJob(mockRepo, mockS3, logger)

	attachment1 := orphanedAttachment("qa/results/r1/2026/08/file1.png")
	attachment2 := orphanedAttachment("qa/results/r2/2026/08/file2.jpg")
	orphaned := []*domain.ResultAttachment{attachment1, attachment2}

	mockRepo.On("FindOrphaned", mock.Anything).Return(orphaned, nil)
	mockRepo.On("DeleteBatch", mock.Anything, []uuid.UUID{attachment1.ID, attachment2.ID}).Return(nil)

	job.Run()

	mockRepo.AssertExpectations(t)
	if len(mockS3.Deleted) != 2 {
		t.Fatalf("expected 2 deleted objects, got %d", len(mockS3.Deleted))
	}
}

func TestCleanupJob_Run_NoOrphanedFiles(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	logger := zap.NewNop()

	job := NewCleanupJob(mockRepo, mockS3, logger)

	mockRepo.On("FindOrphaned", mock.Anything).Return([]*domain.ResultAttachment{}, nil)

	job.Run()

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "DeleteBatch")
	if len(mockS3.Deleted) != 0 {
		t.Fatalf("expected no deleted objects, got %d", len(mockS3.Deleted))
	}
}

func TestCleanupJob_Run_StorageDeleteFailure(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	logger := zap.NewNop()

	job := NewCleanupJob(mockRepo, mockS3, logger)

	attachment1 := orphanedAttachment("qa/results/r1/2026/08/file1.png")
	attachment2 := orphanedAttachment("qa/results/r2/2026/08/file2.jpg")
	orphaned := []*domain.ResultAttachment{attachment1, attachment2}

	mockS3.DeleteFileFunc = func(ctx context.Context, key string) error {
		if key == attachment1.FileKey {
			return errors.New("storage error")
		}
		return nil
	}

	mockRepo.On("FindOrphaned", mock.Anything).Return(orphaned, nil)

	// Only the attachment whose object was removed gets deleted from the database
	mockRepo.On("DeleteBatch", mock.Anything, []uuid.UUID{attachment2.ID}).Return(nil)

	job.Run()

	mockRepo.AssertExpectations(t)
}

func TestCleanupJob_Run_RepositoryFindError(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	logger := zap.NewNop()

	job := NewCleanupJob(mockRepo, mockS3, logger)

	mockRepo.On("FindOrphaned", mock.Anything).Return(nil, errors.New("database error"))

	job.Run()

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "DeleteBatch")
	if len(mockS3.Deleted) != 0 {
		t.Fatalf("expected no deleted objects, got %d", len(mockS3.Deleted))
	}
}

func TestCleanupJob_Run_DatabaseDeleteError(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	logger := zap.NewNop()

	job := NewCleanupJob(mockRepo, mockS3, logger)

	attachment := orphanedAttachment("qa/results/r1/2026/08/file.png")
	orphaned := []*domain.ResultAttachment{attachment}

	mockRepo.On("FindOrphaned", mock.Anything).Return(orphaned, nil)
	mockRepo.On("DeleteBatch", mock.Anything, []uuid.UUID{attachment.ID}).Return(errors.New("database error"))

	// The job logs the failure and completes without panicking
	job.Run()

	mockRepo.AssertExpectations(t)
}
