// Package job contains scheduled background jobs.
package job

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"qa-checklist-api/internal/client"
	"qa-checklist-api/internal/repository"
)

// CleanupJob removes orphaned result attachments. Detaching a module or
// permanently deleting a project removes checklist results in bulk, which
// can leave attachment rows and stored objects behind.
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	logger         *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		logger:         logger,
	}
}

// Run executes the cleanup job. It finds attachments whose parent result
// no longer exists and deletes them from both object storage and the database.
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting cleanup job for orphaned attachments")

	orphaned, err := j.attachmentRepo.FindOrphaned(ctx)
	if err != nil {
		j.logger.Error("Failed to find orphaned attachments",
			zap.Error(err),
		)
		return
	}

	if len(orphaned) == 0 {
		j.logger.Info("No orphaned attachments found")
		return
	}

	j.logger.Info("Found orphaned attachments",
		zap.Int("count", len(orphaned)),
	)

	var deletedIDs []uuid.UUID
	successCount := 0
	failCount := 0

	for _, attachment := range orphaned {
		if err := j.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
			j.logger.Error("Failed to delete file from storage",
				zap.String("attachment_id", attachment.ID.String()),
				zap.String("file_key", attachment.FileKey),
				zap.Error(err),
			)
			failCount++
			continue
		}

		deletedIDs = append(deletedIDs, attachment.ID)
		successCount++

		j.logger.Debug("Deleted file from storage",
			zap.String("attachment_id", attachment.ID.String()),
			zap.String("file_key", attachment.FileKey),
		)
	}

	if len(deletedIDs) > 0 {
		if err := j.attachmentRepo.DeleteBatch(ctx, deletedIDs); err != nil {
			j.logger.Error("Failed to delete attachment records",
				zap.Int("count", len(deletedIDs)),
				zap.Error(err),
			)
		} else {
			j.logger.Info("Deleted attachment records",
				zap.Int("count", len(deletedIDs)),
			)
		}
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_orphaned", len(orphaned)),
		zap.Int("success", successCount),
		zap.Int("failed", failCount),
	)
}
